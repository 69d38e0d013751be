package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/folio/internal/importer"
	"github.com/MrJamesThe3rd/folio/internal/symbolmap"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStatePreviewing
	importStateReview
	importStateRemap
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	session  Session
	importer *importer.Service
	symbols  *symbolmap.Service

	state      importState
	filePicker filepicker.Model
	path       string

	preview   *importer.Result
	lineList  list.Model
	remapForm *huh.Form
	remapRaw  string

	status string
	err    error
}

func NewImportModel(session Session, impSvc *importer.Service, symbolSvc *symbolmap.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		session:    session,
		importer:   impSvc,
		symbols:    symbolSvc,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Tradebook" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateReview:
		return "m: map symbol | Enter: import new trades | Esc: cancel"
	case importStateRemap:
		return "Enter: save mapping | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateReview:
			return m.updateReview(msg)
		case importStateRemap:
			return m.updateRemap(msg)
		}

	case previewResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.preview = msg.result
		m.state = importStateReview

		items := make([]list.Item, len(msg.result.Lines))
		for i, l := range msg.result.Lines {
			items[i] = lineItem{line: l, session: m.session}
		}

		m.lineList = list.New(items, lineDelegate{}, 90, 20)
		m.lineList.Title = fmt.Sprintf("%d trades: %d new, %d already imported",
			len(msg.result.Lines), msg.result.Count(importer.StatusNew), msg.result.Count(importer.StatusDuplicate))
		m.lineList.SetShowStatusBar(false)
		m.lineList.SetFilteringEnabled(false)
		m.lineList.SetShowHelp(false)

		return m, nil

	case remapResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			m.state = importStateReview

			return m, nil
		}

		m.state = importStatePreviewing

		return m, m.previewCmd()

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = summarizeImport(msg.result)

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.path = path
			m.state = importStatePreviewing

			return m, m.previewCmd()
		}

		return m, cmd

	case importStateRemap:
		return m.updateRemap(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateReview, importStateResult:
		m.state = importStateFilePick
		m.preview = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	case importStateRemap:
		m.state = importStateReview
		m.remapForm = nil

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		item, ok := m.lineList.SelectedItem().(lineItem)
		if !ok {
			return m, nil
		}

		m.remapRaw = item.line.Trade.Instrument
		symbol := item.line.Symbol

		m.remapForm = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("symbol").
					Title(fmt.Sprintf("Symbol for %q", m.remapRaw)).
					Value(&symbol).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("symbol cannot be empty")
						}
						return nil
					}),
			),
		).WithWidth(50).WithShowHelp(false)
		m.state = importStateRemap

		return m, m.remapForm.Init()

	case "enter":
		if m.preview.Count(importer.StatusNew) == 0 {
			m.state = importStateResult
			m.status = "Nothing new to import."

			return m, nil
		}

		m.state = importStateImporting

		return m, m.importCmd()
	}

	var cmd tea.Cmd
	m.lineList, cmd = m.lineList.Update(msg)

	return m, cmd
}

func (m ImportModel) updateRemap(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.remapForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.remapForm = f
	}

	if m.remapForm.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.learnCmd(m.remapRaw, m.remapForm.GetString("symbol"))
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select tradebook CSV to import:\n\n%s", m.filePicker.View()),
		)
	case importStatePreviewing:
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Reading %s...", m.path))
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render("Applying trades...")
	case importStateReview:
		status := ""
		if m.status != "" {
			status = m.status + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(status + m.lineList.View())
	case importStateRemap:
		return lipgloss.NewStyle().Padding(1).Render(m.remapForm.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
}

func summarizeImport(res *importer.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Imported %d trades, skipped %d duplicates.",
		res.Count(importer.StatusImported), res.Count(importer.StatusDuplicate))

	if n := res.Count(importer.StatusFailed); n > 0 {
		fmt.Fprintf(&b, "\n\n%d rejected:", n)

		for _, l := range res.Lines {
			if l.Status == importer.StatusFailed {
				fmt.Fprintf(&b, "\n  row %d %s: %v", l.Trade.Row, l.Symbol, l.Err)
			}
		}
	}

	return b.String()
}

// Messages

type previewResultMsg struct {
	result *importer.Result
	err    error
}

type importResultMsg struct {
	result *importer.Result
	err    error
}

type remapResultMsg struct {
	err error
}

func (m ImportModel) previewCmd() tea.Cmd {
	path := m.path

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importer.Preview(ctx, m.session.UserID, f)

		return previewResultMsg{result: res, err: err}
	}
}

func (m ImportModel) importCmd() tea.Cmd {
	path := m.path

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importer.Import(ctx, m.session.UserID, f)

		return importResultMsg{result: res, err: err}
	}
}

func (m ImportModel) learnCmd(raw, symbol string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return remapResultMsg{err: m.symbols.Learn(ctx, raw, symbol)}
	}
}

// Tradebook line item

type lineItem struct {
	line    importer.Line
	session Session
}

func (i lineItem) Title() string       { return "" }
func (i lineItem) Description() string { return "" }
func (i lineItem) FilterValue() string { return i.line.Trade.Instrument }

type lineDelegate struct{}

func (d lineDelegate) Height() int                             { return 2 }
func (d lineDelegate) Spacing() int                            { return 0 }
func (d lineDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d lineDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(lineItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	mark := "[new]"
	if item.line.Status == importer.StatusDuplicate {
		mark = faintStyle.Render("[dup]")
	}

	t := item.line.Trade

	line1 := fmt.Sprintf("%s%s %s  %-4s %6d @ %s  %s",
		cursor, mark,
		FormatDate(t.Date),
		t.Type,
		t.Quantity,
		item.session.Money(t.Price),
		item.line.Symbol,
	)

	line2 := faintStyle.Render(fmt.Sprintf("      row %d  %s  %s", t.Row, t.Instrument, t.Ref))

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
