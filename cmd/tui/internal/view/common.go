package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroomhq/stockroom/internal/folder"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// FolderSelectedMsg is emitted when the user picks a folder to work in.
type FolderSelectedMsg struct {
	Folder *folder.Folder
}
