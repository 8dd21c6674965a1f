package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/history"
)

type historyState int

const (
	historyStateTimeframe historyState = iota
	historyStateList
	historyStateDetail
	historyStateRevert
)

var sortKeys = []history.SortKey{
	history.SortLastUpdated,
	history.SortItemName,
	history.SortMemberName,
}

// entryItem wraps a history entry to implement list.Item.
type entryItem struct {
	entry *history.Entry
	names history.MemberNames
}

func (i entryItem) Title() string {
	action := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.entry.Action()))
	return fmt.Sprintf("%s  %s  %s", FormatDate(i.entry.OccurredAt), action, i.entry.ItemName())
}

func (i entryItem) Description() string {
	name := i.names[i.entry.UserID]
	if name == "" {
		return ""
	}

	return "by " + name
}

func (i entryItem) FilterValue() string {
	return i.entry.ItemName() + " " + i.names[i.entry.UserID]
}

type HistoryModel struct {
	CommonModel
	historyService *history.Service
	folderService  *folder.Service

	folder  *folder.Folder
	actorID uuid.UUID

	state           historyState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form

	entries  []*history.Entry
	names    history.MemberNames
	selected *history.Entry

	window     history.Window
	sortIdx    int
	ascending  bool
	confirming bool

	loading bool
	err     error
	status  string
}

func NewHistoryModel(historySvc *history.Service, folderSvc *folder.Service, f *folder.Folder, actorID uuid.UUID) HistoryModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "History"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return HistoryModel{
		historyService:  historySvc,
		folderService:   folderSvc,
		folder:          f,
		actorID:         actorID,
		state:           historyStateTimeframe,
		timeframePicker: NewTimeframePicker(),
		list:            l,
	}
}

func (m HistoryModel) Title() string { return "History" }

func (m HistoryModel) ShortHelp() string {
	switch m.state {
	case historyStateTimeframe:
		return "Esc: back | Enter: select"
	case historyStateList:
		return "Esc: back | Enter: details | s: sort | o: order | /: filter"
	case historyStateDetail:
		return "Esc: back | v: revert"
	case historyStateRevert:
		return "Confirm revert"
	}

	return ""
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case WindowSelectedMsg:
		m.window = msg.Window
		m.state = historyStateList
		m.loading = true

		return m, m.loadEntriesCmd()

	case loadEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.names = msg.names
		m.refreshList()

		return m, nil

	case revertDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Revert failed: %v", msg.err)
		} else {
			m.status = "Reverted."
		}

		m.state = historyStateList
		m.form = nil
		m.loading = true

		return m, m.loadEntriesCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	}

	switch m.state {
	case historyStateTimeframe:
		return m.updateTimeframe(msg)
	case historyStateList:
		return m.updateList(msg)
	case historyStateDetail:
		return m.updateDetail(msg)
	case historyStateRevert:
		return m.updateRevert(msg)
	}

	return m, nil
}

func (m HistoryModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m HistoryModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "esc":
			m.state = historyStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortKeys)
			m.refreshList()

			return m, nil
		case "o":
			m.ascending = !m.ascending
			m.refreshList()

			return m, nil
		case "enter":
			if sel, ok := m.list.SelectedItem().(entryItem); ok {
				m.selected = sel.entry
				m.state = historyStateDetail
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m HistoryModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = historyStateList
			m.selected = nil

			return m, nil
		case "v":
			m.confirming = false
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Key("confirm").
						Title("Revert this change?").
						Description("The item goes back to its previous state.").
						Value(&m.confirming),
				),
			).WithWidth(45).WithShowHelp(false)
			m.state = historyStateRevert

			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m HistoryModel) updateRevert(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = historyStateDetail
			m.form = nil

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

	if !m.confirming {
		m.state = historyStateDetail
		m.form = nil

		return m, nil
	}

	return m, m.revertCmd(m.selected.ID)
}

func (m HistoryModel) View() string {
	switch m.state {
	case historyStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case historyStateList:
		return m.viewList()

	case historyStateDetail:
		return m.viewDetail()

	case historyStateRevert:
		return lipgloss.NewStyle().Padding(1).Render(m.viewDetail() + "\n" + m.form.View())
	}

	return ""
}

func (m HistoryModel) viewList() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading history...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	order := "desc"
	if m.ascending {
		order = "asc"
	}

	header := fmt.Sprintf("[s] Sort: %s | [o] Order: %s",
		activeStyle(string(sortKeys[m.sortIdx])),
		activeStyle(order),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		m.list.View(),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m HistoryModel) viewDetail() string {
	e := m.selected
	if e == nil {
		return ""
	}

	member := m.names[e.UserID]
	if member == "" {
		member = "unknown"
	}

	lines := []string{
		fmt.Sprintf("%s by %s on %s", e.Action(), member, FormatDate(e.OccurredAt)),
		"",
		"Item: " + e.ItemName(),
		"",
	}

	diff := history.Diff(e.PrevItem, e.ChangedItem)
	if len(diff) == 0 {
		lines = append(lines, "No field changes recorded.")
	} else {
		fields := make([]string, 0, len(diff))
		for name := range diff {
			fields = append(fields, name)
		}

		sort.Strings(fields)

		for _, name := range fields {
			c := diff[name]
			lines = append(lines, fmt.Sprintf("%-12s %v -> %v", name+":", c.Prev, c.New))
		}
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(lines, "\n"))
}

func (m *HistoryModel) refreshList() {
	shown := history.ApplySettings(m.entries, m.names, history.Settings{
		SortBy:    sortKeys[m.sortIdx],
		Ascending: m.ascending,
	})

	items := make([]list.Item, 0, len(shown))
	for _, e := range shown {
		items = append(items, entryItem{entry: e, names: m.names})
	}

	m.list.SetItems(items)
}

// Messages

type loadEntriesMsg struct {
	entries []*history.Entry
	names   history.MemberNames
	err     error
}

func (m HistoryModel) loadEntriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.historyService.List(ctx, m.folder.ID)
		if err != nil {
			return loadEntriesMsg{err: err}
		}

		names, err := m.folderService.MemberNames(ctx, m.folder.ID)
		if err != nil {
			return loadEntriesMsg{err: err}
		}

		return loadEntriesMsg{entries: history.FilterByWindow(entries, m.window), names: names}
	}
}

type revertDoneMsg struct {
	err error
}

func (m HistoryModel) revertCmd(entryID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		roles, err := m.folderService.RolesFor(ctx, m.folder.ID, m.actorID)
		if err != nil {
			return revertDoneMsg{err: err}
		}

		return revertDoneMsg{err: m.historyService.Revert(ctx, entryID, m.actorID, roles)}
	}
}
