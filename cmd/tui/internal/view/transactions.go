package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

type txState int

const (
	txStateList txState = iota
	txStateEditing
	txStateDeleting
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx      *transaction.Transaction
	session Session
}

func (i txItem) Title() string {
	side := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(string(i.tx.Type))
	if i.tx.Type == transaction.TypeSell {
		side = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render(string(i.tx.Type))
	}

	return fmt.Sprintf("%s  %-4s  %6d @ %s  = %s",
		FormatDate(i.tx.Date), side, i.tx.Quantity, i.session.Money(i.tx.Price), i.session.Money(i.tx.Value()))
}

func (i txItem) Description() string {
	return i.tx.Notes
}

func (i txItem) FilterValue() string {
	return FormatDate(i.tx.Date) + " " + string(i.tx.Type) + " " + i.tx.Notes
}

type TransactionsModel struct {
	CommonModel
	session      Session
	transactions *transaction.Service
	portfolio    *portfolio.Service

	holding    *holding.Holding
	state      txState
	list       list.Model
	form       *huh.Form
	txs        []*transaction.Transaction
	selectedTx *transaction.Transaction
	summary    *portfolio.Summary

	loading bool
	status  string

	// Form field bindings
	formType     string
	formQuantity string
	formPrice    string
	formDate     string
	formNotes    string
	formConfirm  bool
}

func NewTransactionsModel(session Session, h *holding.Holding, txSvc *transaction.Service, portfolioSvc *portfolio.Service) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = h.Symbol + " transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		session:      session,
		transactions: txSvc,
		portfolio:    portfolioSvc,
		holding:      h,
		list:         l,
		loading:      true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions: " + m.holding.Symbol }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateList:
		return "Esc: back | a: add | e: edit | d: delete | /: filter"
	case txStateEditing, txStateDeleting:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.summary = msg.summary
		m.refreshListItems()

		if len(msg.txs) == 0 {
			m.status = "No transactions yet. Press a to add one."
		}

		return m, nil

	case applyTxResultMsg:
		m.state = txStateList
		m.form = nil

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Rejected: %v", msg.err))
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-12)
		return m, nil
	}

	switch m.state {
	case txStateList:
		return m.updateList(msg)
	case txStateEditing, txStateDeleting:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			m.selectedTx = nil
			return m.startEditing()
		case "e":
			selected, ok := m.list.SelectedItem().(txItem)
			if !ok {
				return m, nil
			}

			m.selectedTx = selected.tx
			return m.startEditing()
		case "d":
			selected, ok := m.list.SelectedItem().(txItem)
			if !ok {
				return m, nil
			}

			m.selectedTx = selected.tx
			return m.startDeleting()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	m.formType = string(transaction.TypeBuy)
	m.formQuantity = ""
	m.formPrice = ""
	m.formDate = calendar.Format(calendar.Today())
	m.formNotes = ""

	if tx := m.selectedTx; tx != nil {
		m.formType = string(tx.Type)
		m.formQuantity = strconv.FormatInt(tx.Quantity, 10)
		m.formPrice = tx.Price.String()
		m.formDate = calendar.Format(tx.Date)
		m.formNotes = tx.Notes
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Side").
				Options(huh.NewOptions(string(transaction.TypeBuy), string(transaction.TypeSell))...).
				Value(&m.formType),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("quantity must be a positive whole number")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Price").
				Value(&m.formPrice).
				Validate(func(s string) error {
					p, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !p.IsPositive() {
						return fmt.Errorf("price must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Trade Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := calendar.Parse(s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("notes").
				Title("Notes (optional)").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) startDeleting() (tea.Model, tea.Cmd) {
	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete this transaction?").
				Description("Later sells that relied on it will be rejected.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateDeleting

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
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

	if m.state == txStateDeleting {
		if !m.form.GetBool("confirm") {
			m.state = txStateList
			m.form = nil

			return m, nil
		}

		return m, m.applyCmd(portfolio.Change{
			Op:          portfolio.OpDelete,
			UserID:      m.session.UserID,
			Transaction: &transaction.Transaction{ID: m.selectedTx.ID},
		})
	}

	return m, m.applyCmd(m.changeFromForm())
}

// changeFromForm builds the change for the completed form. The form
// validators have already checked every field.
func (m TransactionsModel) changeFromForm() portfolio.Change {
	qty, _ := strconv.ParseInt(strings.TrimSpace(m.form.GetString("quantity")), 10, 64)
	price, _ := decimal.NewFromString(strings.TrimSpace(m.form.GetString("price")))
	date, _ := calendar.Parse(m.form.GetString("date"))

	tx := &transaction.Transaction{
		HoldingID: m.holding.ID,
		Type:      transaction.Type(m.form.GetString("type")),
		Quantity:  qty,
		Price:     price,
		Date:      date,
		Notes:     m.form.GetString("notes"),
	}

	ch := portfolio.Change{Op: portfolio.OpCreate, UserID: m.session.UserID, Transaction: tx}

	if m.selectedTx != nil {
		tx.ID = m.selectedTx.ID
		ch.Op = portfolio.OpUpdate
	}

	return ch
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	switch m.state {
	case txStateList:
		statusLine := ""
		if m.status != "" {
			statusLine = faintStyle.Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(m.summaryView() + "\n" + statusLine + m.list.View())

	case txStateEditing, txStateDeleting:
		if m.form == nil {
			return ""
		}

		title := "New trade"
		if m.selectedTx != nil {
			title = fmt.Sprintf("%s %d on %s", m.selectedTx.Type, m.selectedTx.Quantity, FormatDate(m.selectedTx.Date))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + m.form.View(),
		)
	}

	return ""
}

func (m TransactionsModel) summaryView() string {
	if m.summary == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Open: %d  |  Avg Cost: %s  |  Cost Basis: %s  |  Realized: %s",
			m.summary.OpenQuantity,
			m.session.Money(m.summary.AverageCost),
			m.session.Money(m.summary.CostBasis),
			m.session.Signed(m.summary.Realized),
		))
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx, session: m.session}
	}

	m.list.SetItems(items)
}

// Messages

type loadTxsMsg struct {
	txs     []*transaction.Transaction
	summary *portfolio.Summary
	err     error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.transactions.ListByHolding(ctx, m.holding.ID)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		sum, err := m.portfolio.Summary(ctx, m.session.UserID, m.holding.ID)

		return loadTxsMsg{txs: txs, summary: sum, err: err}
	}
}

type applyTxResultMsg struct {
	err error
}

func (m TransactionsModel) applyCmd(ch portfolio.Change) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.portfolio.ApplyTransaction(ctx, ch)

		return applyTxResultMsg{err: err}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", faintStyle.Render(desc))
}
