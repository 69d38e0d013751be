package view

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/performance"
)

// windowChoices are the picker rows; the empty timeframe is the custom range.
var windowChoices = []performance.Timeframe{performance.Daily, performance.Weekly, performance.Monthly, ""}

func choiceLabel(tf performance.Timeframe) string {
	switch tf {
	case performance.Daily:
		return "Daily (since yesterday)"
	case performance.Weekly:
		return "Weekly (last 7 days)"
	case performance.Monthly:
		return "Monthly (since the 1st)"
	}

	return "Custom Range"
}

// TimeframeSelectedMsg is emitted when the user has picked a window. Timeframe
// is empty for a custom range.
type TimeframeSelectedMsg struct {
	Timeframe performance.Timeframe
	Start     time.Time
	End       time.Time
}

// TimeframePicker asks for a canonical window ending today, or for an explicit
// (start, end] range.
type TimeframePicker struct {
	form   *huh.Form
	custom bool
	err    error
}

func NewTimeframePicker() TimeframePicker {
	return TimeframePicker{form: windowForm()}
}

func windowForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(windowChoices))
	for _, tf := range windowChoices {
		opts = append(opts, huh.NewOption(choiceLabel(tf), string(tf)))
	}

	selected := string(performance.Weekly)

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Key("window").
			Title("Select Window").
			Options(opts...).
			Value(&selected),
	)).WithShowHelp(false)
}

func rangeForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Key("start").Title("Start date (exclusive)").Placeholder("YYYY-MM-DD").CharLimit(10).Validate(validDay),
		huh.NewInput().Key("end").Title("End date").Placeholder("YYYY-MM-DD").CharLimit(10).Validate(validDay),
	)).WithShowHelp(false)
}

func validDay(s string) error {
	if _, err := calendar.Parse(s); err != nil {
		return errors.New("expected YYYY-MM-DD")
	}

	return nil
}

func (m TimeframePicker) Init() tea.Cmd {
	return m.form.Init()
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.custom {
		cmd := m.Reset()
		return m, cmd
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.custom {
		tf := performance.Timeframe(m.form.GetString("window"))
		if tf == "" {
			m.custom = true
			m.form = rangeForm()

			return m, m.form.Init()
		}

		end := calendar.Today()
		sel := TimeframeSelectedMsg{Timeframe: tf, Start: tf.Start(end), End: end}

		return m, func() tea.Msg { return sel }
	}

	// Both fields passed validation, so parsing cannot fail here.
	start, _ := calendar.Parse(m.form.GetString("start"))
	end, _ := calendar.Parse(m.form.GetString("end"))

	if !start.Before(end) {
		m.err = errors.New("start date must be before end date")
		m.form = rangeForm()

		return m, m.form.Init()
	}

	m.err = nil
	sel := TimeframeSelectedMsg{Start: start, End: end}

	return m, func() tea.Msg { return sel }
}

func (m TimeframePicker) View() string {
	v := m.form.View()

	if m.custom {
		v += faintStyle.Render("\n(Enter to confirm, Esc to back)")
	}

	if m.err != nil {
		v += errorStyle.Render("\n\nError: " + m.err.Error())
	}

	return v
}

// IsSelecting reports whether the picker shows the window list rather than
// the custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset returns the picker to the window list.
func (m *TimeframePicker) Reset() tea.Cmd {
	m.custom = false
	m.err = nil
	m.form = windowForm()

	return m.form.Init()
}
