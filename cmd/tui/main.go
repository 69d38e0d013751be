package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/folio/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/folio/internal/config"
	"github.com/MrJamesThe3rd/folio/internal/database"
	"github.com/MrJamesThe3rd/folio/internal/export"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	holdingStore "github.com/MrJamesThe3rd/folio/internal/holding/store"
	"github.com/MrJamesThe3rd/folio/internal/importer"
	"github.com/MrJamesThe3rd/folio/internal/importer/tradebook"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/folio/internal/ledger/store"
	"github.com/MrJamesThe3rd/folio/internal/logger"
	"github.com/MrJamesThe3rd/folio/internal/performance"
	performanceStore "github.com/MrJamesThe3rd/folio/internal/performance/store"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	portfolioStore "github.com/MrJamesThe3rd/folio/internal/portfolio/store"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	pricingStore "github.com/MrJamesThe3rd/folio/internal/pricing/store"
	"github.com/MrJamesThe3rd/folio/internal/symbolmap"
	symbolStore "github.com/MrJamesThe3rd/folio/internal/symbolmap/store"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
	txStore "github.com/MrJamesThe3rd/folio/internal/transaction/store"
)

type model struct {
	session  view.Session
	logLevel string

	txService          *transaction.Service
	holdingService     *holding.Service
	portfolioService   *portfolio.Service
	ledgerService      *ledger.Service
	performanceService *performance.Service
	importService      *importer.Service
	symbolService      *symbolmap.Service
	exportService      *export.Service

	currentView View

	holdingsView     view.HoldingsModel
	transactionsView view.TransactionsModel
	cashView         view.CashModel
	gainView         view.GainModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewHoldings     View = 1
	ViewCash         View = 2
	ViewGain         View = 3
	ViewImport       View = 4
	ViewExport       View = 5
	ViewTransactions View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.New(os.Stderr, cfg.Log.Level)

	userID, err := cfg.OwnerID()
	if err != nil {
		slog.Error("failed to resolve portfolio owner", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	holdingSvc := holding.NewService(holdingStore.New(db))
	portfolioSvc := portfolio.NewService(portfolioStore.New(db))
	ledgerSvc := ledger.NewService(ledgerStore.New(db))
	priceSvc := pricing.NewCachedService(pricing.NewService(pricingStore.New(db)), cfg.Prices.CacheTTL, cfg.Prices.ProvisionalTTL)
	perfSvc := performance.NewService(performanceStore.New(db), priceSvc)
	symbolSvc := symbolmap.NewService(symbolStore.New(db))
	impSvc := importer.NewService(tradebook.NewParser(), holdingSvc, symbolSvc, txSvc, portfolioSvc)
	expSvc := export.NewService(holdingSvc, txSvc, priceSvc)

	session := view.Session{UserID: userID, Currency: cfg.App.Currency}

	return model{
		session:            session,
		logLevel:           cfg.Log.Level,
		txService:          txSvc,
		holdingService:     holdingSvc,
		portfolioService:   portfolioSvc,
		ledgerService:      ledgerSvc,
		performanceService: perfSvc,
		importService:      impSvc,
		symbolService:      symbolSvc,
		exportService:      expSvc,
		currentView:        ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewHoldings
				m.holdingsView = view.NewHoldingsModel(m.session, m.holdingService, m.portfolioService)

				return m, m.holdingsView.Init()
			case "2":
				m.currentView = ViewCash
				m.cashView = view.NewCashModel(m.session, m.ledgerService, m.performanceService)

				return m, m.cashView.Init()
			case "3":
				m.currentView = ViewGain
				m.gainView = view.NewGainModel(m.session, m.performanceService)

				return m, m.gainView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.session, m.importService, m.symbolService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.session, m.exportService)

				return m, m.exportView.Init()
			}
		}

	case view.OpenHoldingMsg:
		m.currentView = ViewTransactions
		m.transactionsView = view.NewTransactionsModel(m.session, msg.Holding, m.txService, m.portfolioService)

		return m, m.transactionsView.Init()

	case view.BackMsg:
		if m.currentView == ViewTransactions {
			m.currentView = ViewHoldings
			return m, m.holdingsView.Init()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewHoldings:
		var newModel tea.Model
		newModel, cmd = m.holdingsView.Update(msg)
		m.holdingsView = newModel.(view.HoldingsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewCash:
		var newModel tea.Model
		newModel, cmd = m.cashView.Update(msg)
		m.cashView = newModel.(view.CashModel)
	case ViewGain:
		var newModel tea.Model
		newModel, cmd = m.gainView.Update(msg)
		m.gainView = newModel.(view.GainModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
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
		return lipgloss.NewStyle().Padding(2).Render(
			"Folio\n\n" +
				"1. Holdings\n" +
				"2. Cash\n" +
				"3. Performance\n" +
				"4. Import Tradebook\n" +
				"5. Export Lots\n\n" +
				"q. Quit",
		)
	case ViewHoldings:
		return m.withHelp(m.holdingsView)
	case ViewTransactions:
		return m.withHelp(m.transactionsView)
	case ViewCash:
		return m.withHelp(m.cashView)
	case ViewGain:
		return m.withHelp(m.gainView)
	case ViewImport:
		return m.withHelp(m.importView)
	case ViewExport:
		return m.withHelp(m.exportView)
	}

	return "Unknown View"
}

func (m model) withHelp(v view.View) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	m := initialModel()

	// The terminal belongs to the UI from here on.
	logger.New(io.Discard, m.logLevel)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
		os.Exit(1)
	}
}
