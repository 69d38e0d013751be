package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateCreate
)

// holdingRow is a holding with its current derived state.
type holdingRow struct {
	holding *holding.Holding
	summary *portfolio.Summary
}

// OpenHoldingMsg asks the root model to show the holding's transactions.
type OpenHoldingMsg struct {
	Holding *holding.Holding
}

type HoldingsModel struct {
	CommonModel
	session   Session
	holdings  *holding.Service
	portfolio *portfolio.Service

	state listState
	table table.Model
	rows  []holdingRow
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formSymbol   string
	formName     string
	formExchange string
}

func NewHoldingsModel(session Session, holdings *holding.Service, portfolio *portfolio.Service) HoldingsModel {
	columns := []table.Column{
		{Title: "Symbol", Width: 12},
		{Title: "Exchange", Width: 8},
		{Title: "Open Qty", Width: 10},
		{Title: "Avg Cost", Width: 14},
		{Title: "Cost Basis", Width: 16},
		{Title: "Realized", Width: 16},
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

	return HoldingsModel{
		session:   session,
		holdings:  holdings,
		portfolio: portfolio,
		table:     t,
		loading:   true,
	}
}

func (m HoldingsModel) Title() string { return "Holdings" }
func (m HoldingsModel) ShortHelp() string {
	if m.state == listStateCreate {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: transactions | n: new holding | x: recompute | r: refresh"
}

func (m HoldingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HoldingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHoldingsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.rows
		m.refreshTable()
		return m, nil

	case holdingActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m HoldingsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "x":
			return m, m.recomputeCmd()
		case "enter":
			if row, ok := m.selected(); ok {
				return m, func() tea.Msg { return OpenHoldingMsg{Holding: row.holding} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m HoldingsModel) selected() (holdingRow, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return holdingRow{}, false
	}

	return m.rows[idx], true
}

func (m HoldingsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formSymbol = ""
	m.formName = ""
	m.formExchange = "NSE"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("symbol").
				Title("Symbol").
				Value(&m.formSymbol).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("symbol cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("name").
				Title("Name (optional)").
				Value(&m.formName),

			huh.NewSelect[string]().
				Key("exchange").
				Title("Exchange").
				Options(huh.NewOptions("NSE", "BSE")...).
				Value(&m.formExchange),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m HoldingsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
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

	return m, m.createCmd()
}

func (m HoldingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading holdings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == listStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Holding\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *HoldingsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{
			r.holding.Symbol,
			r.holding.Exchange,
			strconv.FormatInt(r.summary.OpenQuantity, 10),
			m.session.Money(r.summary.AverageCost),
			m.session.Money(r.summary.CostBasis),
			m.session.Signed(r.summary.Realized),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadHoldingsMsg struct {
	rows []holdingRow
	err  error
}

func (m HoldingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		hs, err := m.holdings.List(ctx, m.session.UserID)
		if err != nil {
			return loadHoldingsMsg{err: err}
		}

		rows := make([]holdingRow, 0, len(hs))
		for _, h := range hs {
			sum, err := m.portfolio.Summary(ctx, m.session.UserID, h.ID)
			if err != nil {
				return loadHoldingsMsg{err: fmt.Errorf("%s: %w", h.Symbol, err)}
			}

			rows = append(rows, holdingRow{holding: h, summary: sum})
		}

		return loadHoldingsMsg{rows: rows}
	}
}

type holdingActionMsg struct {
	status string
	err    error
}

func (m HoldingsModel) createCmd() tea.Cmd {
	params := holding.CreateParams{
		UserID:   m.session.UserID,
		Symbol:   m.form.GetString("symbol"),
		Name:     m.form.GetString("name"),
		Exchange: m.form.GetString("exchange"),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		h, err := m.holdings.Create(ctx, params)
		if err != nil {
			return holdingActionMsg{err: err}
		}

		return holdingActionMsg{status: fmt.Sprintf("Added %s.", h.Symbol)}
	}
}

func (m HoldingsModel) recomputeCmd() tea.Cmd {
	row, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.portfolio.Recompute(ctx, row.holding.ID); err != nil {
			return holdingActionMsg{err: err}
		}

		return holdingActionMsg{status: fmt.Sprintf("Recomputed %s.", row.holding.Symbol)}
	}
}
