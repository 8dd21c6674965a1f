package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/item"
)

type itemsState int

const (
	itemsStateBrowse itemsState = iota
	itemsStateEdit
)

type ItemsModel struct {
	CommonModel
	itemService   *item.Service
	folderService *folder.Service

	folder  *folder.Folder
	actorID uuid.UUID

	state itemsState
	table table.Model
	items []*item.Item
	form  *huh.Form

	lowStockOnly bool
	loading      bool
	err          error
	status       string

	// Form bindings
	formName     string
	formNote     string
	formPrice    string
	formQuantity string
	formTag      string
}

func NewItemsModel(itemSvc *item.Service, folderSvc *folder.Service, f *folder.Folder, actorID uuid.UUID) ItemsModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Amount", Width: 10},
		{Title: "Min", Width: 6},
		{Title: "Price", Width: 12},
		{Title: "Tag", Width: 15},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ItemsModel{
		itemService:   itemSvc,
		folderService: folderSvc,
		folder:        f,
		actorID:       actorID,
		table:         t,
		loading:       true,
	}
}

func (m ItemsModel) Title() string { return "Items" }
func (m ItemsModel) ShortHelp() string {
	if m.state == itemsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | c: clone | x: delete | l: low stock | r: refresh"
}

func (m ItemsModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m ItemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadItemsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.refreshTable()

		return m, nil

	case itemSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = itemsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadItemsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case itemsStateBrowse:
		return m.updateBrowse(msg)
	case itemsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ItemsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadItemsCmd()
		case "l":
			m.lowStockOnly = !m.lowStockOnly
			m.loading = true

			return m, m.loadItemsCmd()
		case "e":
			return m.enterEditMode()
		case "c":
			if it := m.selectedItem(); it != nil {
				return m, m.cloneCmd(it.ID)
			}
		case "x":
			if it := m.selectedItem(); it != nil {
				return m, m.deleteCmd(it.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ItemsModel) selectedItem() *item.Item {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m ItemsModel) enterEditMode() (tea.Model, tea.Cmd) {
	it := m.selectedItem()
	if it == nil {
		return m, nil
	}

	m.formName = it.Name
	m.formNote = it.Note
	m.formPrice = it.Price.StringFixed(2)
	m.formQuantity = strconv.FormatInt(it.Quantity, 10)
	m.formTag = it.Tag

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&m.formNote),

			huh.NewInput().
				Key("price").
				Title("Price").
				Value(&m.formPrice).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(s); err != nil {
						return fmt.Errorf("invalid price")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(s, 10, 64); err != nil {
						return fmt.Errorf("invalid amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("tag").
				Title("Tag").
				Value(&m.formTag),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = itemsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ItemsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ItemsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading items...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	mode := "All Items"
	if m.lowStockOnly {
		mode = "Low Stock"
	}

	header := fmt.Sprintf("%s | [l] Showing: %s", m.folder.Name, activeStyle(mode))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == itemsStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Item\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ItemsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, table.Row{
			it.Name,
			strconv.FormatInt(it.Quantity, 10),
			strconv.FormatInt(it.MinQuantity, 10),
			FormatPrice(it.Price, m.folder.Currency),
			it.Tag,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadItemsMsg struct {
	items []*item.Item
	err   error
}

func (m ItemsModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			items []*item.Item
			err   error
		)

		if m.lowStockOnly {
			items, err = m.itemService.LowStock(ctx, m.folder.ID)
		} else {
			items, err = m.itemService.ListByFolder(ctx, m.folder.ID)
		}

		return loadItemsMsg{items: items, err: err}
	}
}

type itemSaveMsg struct {
	err error
}

func (m ItemsModel) saveCmd() tea.Cmd {
	it := m.selectedItem()
	if it == nil {
		return nil
	}

	name := m.formName
	note := m.formNote
	tag := m.formTag
	price, _ := decimal.NewFromString(m.formPrice)
	quantity, _ := strconv.ParseInt(m.formQuantity, 10, 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		roles, err := m.folderService.RolesFor(ctx, m.folder.ID, m.actorID)
		if err != nil {
			return itemSaveMsg{err: err}
		}

		_, err = m.itemService.Update(ctx, it.ID, m.actorID, roles, item.UpdateParams{
			Name:     &name,
			Note:     &note,
			Price:    &price,
			Quantity: &quantity,
			Tag:      &tag,
		})

		return itemSaveMsg{err: err}
	}
}

func (m ItemsModel) cloneCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		roles, err := m.folderService.RolesFor(ctx, m.folder.ID, m.actorID)
		if err != nil {
			return itemSaveMsg{err: err}
		}

		_, err = m.itemService.Clone(ctx, id, m.actorID, roles)

		return itemSaveMsg{err: err}
	}
}

func (m ItemsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		roles, err := m.folderService.RolesFor(ctx, m.folder.ID, m.actorID)
		if err != nil {
			return itemSaveMsg{err: err}
		}

		return itemSaveMsg{err: m.itemService.Delete(ctx, id, m.actorID, roles)}
	}
}
