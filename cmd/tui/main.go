package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/stockroomhq/stockroom/cmd/tui/internal/view"
	"github.com/stockroomhq/stockroom/internal/config"
	"github.com/stockroomhq/stockroom/internal/database"
	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/folder"
	folderStore "github.com/stockroomhq/stockroom/internal/folder/store"
	"github.com/stockroomhq/stockroom/internal/history"
	historyStore "github.com/stockroomhq/stockroom/internal/history/store"
	"github.com/stockroomhq/stockroom/internal/item"
	itemStore "github.com/stockroomhq/stockroom/internal/item/store"
	"github.com/stockroomhq/stockroom/internal/tagging"
	taggingStore "github.com/stockroomhq/stockroom/internal/tagging/store"
)

type model struct {
	folderService  *folder.Service
	itemService    *item.Service
	historyService *history.Service
	exportService  *export.Service

	userID uuid.UUID
	folder *folder.Folder

	currentView View

	foldersView view.FoldersModel
	itemsView   view.ItemsModel
	historyView view.HistoryModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewFolders View = 1
	ViewItems   View = 2
	ViewHistory View = 3
	ViewExport  View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The TUI runs against the database directly; it identifies the operator
	// through the environment instead of a bearer token.
	userID, err := uuid.Parse(os.Getenv("STOCKROOM_USER_ID"))
	if err != nil {
		slog.Error("STOCKROOM_USER_ID must be set to a valid user id")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	items := itemStore.New(db)

	folderSvc := folder.NewService(folderStore.New(db))
	taggingSvc := tagging.NewService(taggingStore.New(db))
	itemSvc := item.NewService(items, taggingSvc)
	historySvc := history.NewService(historyStore.New(db), items)
	exportSvc := export.NewService(historySvc, folderSvc)

	return model{
		folderService:  folderSvc,
		itemService:    itemSvc,
		historyService: historySvc,
		exportService:  exportSvc,
		userID:         userID,
		currentView:    ViewFolders,
		foldersView:    view.NewFoldersModel(folderSvc, userID),
	}
}

func (m model) Init() tea.Cmd {
	return m.foldersView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewItems
				m.itemsView = view.NewItemsModel(m.itemService, m.folderService, m.folder, m.userID)

				return m, m.itemsView.Init()
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.historyService, m.folderService, m.folder, m.userID)

				return m, m.historyView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.folder)

				return m, m.exportView.Init()
			case "f":
				m.currentView = ViewFolders
				m.foldersView = view.NewFoldersModel(m.folderService, m.userID)

				return m, m.foldersView.Init()
			}
		}

		if m.currentView == ViewFolders && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.FolderSelectedMsg:
		m.folder = msg.Folder
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewFolders:
		var newModel tea.Model
		newModel, cmd = m.foldersView.Update(msg)
		m.foldersView = newModel.(view.FoldersModel)
	case ViewItems:
		var newModel tea.Model
		newModel, cmd = m.itemsView.Update(msg)
		m.itemsView = newModel.(view.ItemsModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		name := ""
		if m.folder != nil {
			name = m.folder.Name
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Stockroom TUI | Folder: " + name + "\n\n" +
				"1. Browse Items\n" +
				"2. Browse History\n" +
				"3. Export History\n\n" +
				"f. Switch Folder\n" +
				"q. Quit",
		)
	case ViewFolders:
		return m.foldersView.View()
	case ViewItems:
		return m.itemsView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
