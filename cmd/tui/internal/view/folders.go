package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/folder"
)

// folderItem wraps a folder to implement list.Item.
type folderItem struct {
	f *folder.Folder
}

func (i folderItem) Title() string {
	return i.f.Name
}

func (i folderItem) Description() string {
	return fmt.Sprintf("%d members | %s", len(i.f.Members), i.f.Currency)
}

func (i folderItem) FilterValue() string {
	return i.f.Name
}

type FoldersModel struct {
	CommonModel
	folderService *folder.Service
	userID        uuid.UUID

	list    list.Model
	folders []*folder.Folder
	loading bool
	err     error
}

func NewFoldersModel(folderSvc *folder.Service, userID uuid.UUID) FoldersModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Folders"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return FoldersModel{
		folderService: folderSvc,
		userID:        userID,
		list:          l,
		loading:       true,
	}
}

func (m FoldersModel) Title() string     { return "Folders" }
func (m FoldersModel) ShortHelp() string { return "Enter: open | /: filter | q: quit" }

func (m FoldersModel) Init() tea.Cmd {
	return m.loadFoldersCmd()
}

func (m FoldersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadFoldersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.folders = msg.folders

		items := make([]list.Item, 0, len(m.folders))
		for _, f := range m.folders {
			items = append(items, folderItem{f: f})
		}

		m.list.SetItems(items)

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.list.SettingFilter() {
			if sel, ok := m.list.SelectedItem().(folderItem); ok {
				return m, func() tea.Msg {
					return FolderSelectedMsg{Folder: sel.f}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m FoldersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading folders...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(m.list.View())
}

type loadFoldersMsg struct {
	folders []*folder.Folder
	err     error
}

func (m FoldersModel) loadFoldersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		folders, err := m.folderService.List(ctx, m.userID)

		return loadFoldersMsg{folders: folders, err: err}
	}
}
