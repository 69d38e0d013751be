package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/folio/internal/money"
	"github.com/MrJamesThe3rd/folio/internal/performance"
)

type gainState int

const (
	gainStateTimeframe gainState = iota
	gainStateLoading
	gainStateResult
)

type GainModel struct {
	CommonModel
	session     Session
	performance *performance.Service

	state  gainState
	picker TimeframePicker
	gain   *performance.Gain
	err    error
}

func NewGainModel(session Session, svc *performance.Service) GainModel {
	return GainModel{
		session:     session,
		performance: svc,
		picker:      NewTimeframePicker(),
	}
}

func (m GainModel) Title() string { return "Performance" }

func (m GainModel) ShortHelp() string {
	if m.state == gainStateResult {
		return "Esc: pick another window"
	}
	return "Esc: back | Enter: select"
}

func (m GainModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m GainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = gainStateLoading
		return m, m.gainCmd(msg)

	case gainResultMsg:
		m.state = gainStateResult
		m.gain = msg.gain
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			switch {
			case m.state == gainStateResult:
				m.state = gainStateTimeframe

				return m, m.picker.Reset()
			case m.state == gainStateTimeframe && m.picker.IsSelecting():
				return m, Back
			}
		}
	}

	if m.state != gainStateTimeframe {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m GainModel) View() string {
	switch m.state {
	case gainStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	case gainStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Valuing portfolio...")
	case gainStateResult:
		return m.viewResult()
	}

	return ""
}

func (m GainModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	g := m.gain

	title := fmt.Sprintf("%s → %s", FormatDate(g.Start), FormatDate(g.End))
	if g.Timeframe != "" {
		title = fmt.Sprintf("%s (%s)", title, g.Timeframe)
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")
	fmt.Fprintf(&b, "Start value:    %s\n", m.session.NullMoney(g.ValuationStart.Total))
	fmt.Fprintf(&b, "End value:      %s\n", m.session.NullMoney(g.ValuationEnd.Total))
	fmt.Fprintf(&b, "Net cash flow:  %s\n", m.session.Signed(g.NetCashFlow))

	if g.Amount.Valid {
		fmt.Fprintf(&b, "Gain:           %s  (%s)\n", m.session.Signed(g.Amount.Decimal), money.Percent(g.Percent))
	} else {
		b.WriteString("Gain:           n/a\n")
	}

	if len(g.Unvalued) > 0 {
		b.WriteString("\n" + errorStyle.Render("No close available for:") + "\n")

		for _, u := range g.Unvalued {
			fmt.Fprintf(&b, "  %s on %s\n", u.Instrument, FormatDate(u.Date))
		}
	}

	if positions := g.ValuationEnd.Positions; len(positions) > 0 {
		b.WriteString("\nPositions at end:\n")

		for _, p := range positions {
			price := "n/a"
			if p.Price.Valid {
				price = fmt.Sprintf("%s (%s)", m.session.Money(p.Price.Decimal), FormatDate(p.PriceDate))
			}

			fmt.Fprintf(&b, "  %-12s %8d @ %-24s %s\n", p.Instrument, p.Quantity, price, m.session.NullMoney(p.Value))
		}
	}

	fmt.Fprintf(&b, "\nCash at end:    %s\n", m.session.Money(g.ValuationEnd.Cash))
	b.WriteString("\n(Esc to go back)")

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type gainResultMsg struct {
	gain *performance.Gain
	err  error
}

func (m GainModel) gainCmd(sel TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if sel.Timeframe != "" {
			g, err := m.performance.WindowedGain(ctx, m.session.UserID, sel.Timeframe, sel.End)
			return gainResultMsg{gain: g, err: err}
		}

		g, err := m.performance.Gain(ctx, m.session.UserID, sel.Start, sel.End)

		return gainResultMsg{gain: g, err: err}
	}
}
