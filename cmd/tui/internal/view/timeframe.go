package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockroomhq/stockroom/internal/history"
)

var timeframes = []history.Range{
	history.RangeToday,
	history.RangeWeek,
	history.RangeTwoWeeks,
	history.RangeMonth,
	history.RangeAll,
	history.RangeCustom,
}

func timeframeLabel(r history.Range) string {
	switch r {
	case history.RangeToday:
		return "Today"
	case history.RangeWeek:
		return "Last Week"
	case history.RangeTwoWeeks:
		return "Last 2 Weeks"
	case history.RangeMonth:
		return "Last Month"
	case history.RangeAll:
		return "All Time"
	case history.RangeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// WindowSelectedMsg is emitted when the user has picked a valid time window.
type WindowSelectedMsg struct {
	Window history.Window
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a history time window.
type TimeframePicker struct {
	state    timeframeState
	selected int

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker() TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return TimeframePicker{
		state:      timeframeStateSelect,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(timeframes)-1 {
			m.selected++
		}
	case tea.KeyEnter:
		rng := timeframes[m.selected]
		if rng == history.RangeCustom {
			m.state = timeframeStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		window := history.WindowFor(rng, time.Now(), nil, nil)

		return m, func() tea.Msg {
			return WindowSelectedMsg{Window: window}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.Parse("2006-01-02", m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.Parse("2006-01-02", m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		m.err = nil

		// The end bound covers the whole selected day.
		end = end.AddDate(0, 0, 1).Add(-time.Second)
		window := history.WindowFor(history.RangeCustom, time.Now(), &start, &end)

		return m, func() tea.Msg {
			return WindowSelectedMsg{Window: window}
		}

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m, nil
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Timeframe:\n\n"

	for i, rng := range timeframes {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, timeframeLabel(rng))
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = 0
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
