package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/performance"
)

type cashState int

const (
	cashStateBrowse cashState = iota
	cashStateFlow
)

type CashModel struct {
	CommonModel
	session     Session
	ledger      *ledger.Service
	performance *performance.Service

	state   cashState
	table   table.Model
	lines   []ledger.Line
	summary *performance.CashSummary
	form    *huh.Form
	flow    ledger.Type

	loading bool
	status  string
}

func NewCashModel(session Session, ledgerSvc *ledger.Service, performanceSvc *performance.Service) CashModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 13},
		{Title: "Amount", Width: 16},
		{Title: "Balance", Width: 16},
		{Title: "Note", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return CashModel{
		session:     session,
		ledger:      ledgerSvc,
		performance: performanceSvc,
		table:       t,
		loading:     true,
	}
}

func (m CashModel) Title() string { return "Cash" }

func (m CashModel) ShortHelp() string {
	if m.state == cashStateFlow {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | d: deposit | w: withdraw | x: delete flow | r: refresh"
}

func (m CashModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCashMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.lines = msg.lines
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case cashActionMsg:
		m.state = cashStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Rejected: %v", msg.err))
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case cashStateBrowse:
		return m.updateBrowse(msg)
	case cashStateFlow:
		return m.updateFlow(msg)
	}

	return m, nil
}

func (m CashModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			return m.startFlow(ledger.TypeDeposit)
		case "w":
			return m.startFlow(ledger.TypeWithdrawal)
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CashModel) startFlow(typ ledger.Type) (tea.Model, tea.Cmd) {
	// The first capital a user brings in is their initial deposit.
	if typ == ledger.TypeDeposit && m.summary != nil && m.summary.NetDeposited.IsZero() && len(m.lines) == 0 {
		typ = ledger.TypeInitDeposit
	}

	m.flow = typ

	amount := ""
	date := calendar.Format(calendar.Today())
	note := ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return fmt.Errorf("amount must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&date).
				Validate(func(s string) error {
					if _, err := calendar.Parse(s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&note),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = cashStateFlow
	m.table.Blur()

	return m, m.form.Init()
}

func (m CashModel) updateFlow(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = cashStateBrowse
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

	amount, _ := decimal.NewFromString(strings.TrimSpace(m.form.GetString("amount")))
	date, _ := calendar.Parse(m.form.GetString("date"))

	return m, m.recordCmd(ledger.FlowParams{
		UserID: m.session.UserID,
		Type:   m.flow,
		Amount: amount,
		Date:   date,
		Note:   m.form.GetString("note"),
	})
}

func (m CashModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	content := m.summaryView() + "\n" + lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == cashStateFlow && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Record %s\n\n%s", m.flow, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CashModel) summaryView() string {
	if m.summary == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Available: %s  |  Net Deposited: %s  |  Deployed: %s  |  Realized: %s",
			m.session.Money(m.summary.Balance),
			m.session.Money(m.summary.NetDeposited),
			m.session.Money(m.summary.Deployed),
			m.session.Signed(m.summary.Realized),
		))
}

func (m *CashModel) refreshTable() {
	rows := make([]table.Row, len(m.lines))

	// Newest first.
	for i, l := range m.lines {
		rows[len(m.lines)-1-i] = table.Row{
			FormatDate(l.Entry.Date),
			string(l.Entry.Type),
			m.session.Money(l.Entry.Amount),
			m.session.Money(l.Balance),
			l.Entry.Note,
		}
	}

	m.table.SetRows(rows)
}

// selectedLine maps the table cursor back to the ledger line.
func (m CashModel) selectedLine() (ledger.Line, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.lines) {
		return ledger.Line{}, false
	}

	return m.lines[len(m.lines)-1-idx], true
}

// Messages

type loadCashMsg struct {
	lines   []ledger.Line
	summary *performance.CashSummary
	err     error
}

func (m CashModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		lines, err := m.ledger.Statement(ctx, m.session.UserID, calendar.AddDays(calendar.Today(), -365), calendar.Today())
		if err != nil {
			return loadCashMsg{err: err}
		}

		summary, err := m.performance.CashSummary(ctx, m.session.UserID, calendar.Today())

		return loadCashMsg{lines: lines, summary: summary, err: err}
	}
}

type cashActionMsg struct {
	status string
	err    error
}

func (m CashModel) recordCmd(params ledger.FlowParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.ledger.RecordExternalFlow(ctx, params)
		if err != nil {
			return cashActionMsg{err: err}
		}

		return cashActionMsg{status: fmt.Sprintf("Recorded %s of %s.", e.Type, m.session.Money(e.Amount.Abs()))}
	}
}

func (m CashModel) deleteCmd() tea.Cmd {
	line, ok := m.selectedLine()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.ledger.DeleteExternalFlow(ctx, m.session.UserID, line.Entry.ID); err != nil {
			return cashActionMsg{err: err}
		}

		return cashActionMsg{status: "Flow deleted."}
	}
}
