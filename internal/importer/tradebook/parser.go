// Package tradebook parses broker tradebook exports into trades.
package tradebook

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/folio/internal/encoding"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var ErrUnknownFormat = errors.New("unknown tradebook format")

// Trade is one executed fill read from a tradebook.
type Trade struct {
	Row        int
	Instrument string
	Exchange   string
	Type       transaction.Type
	Quantity   int64
	Price      decimal.Decimal
	Date       time.Time
	// ExecutedAt orders fills within a day; it equals Date when the export
	// has no time.
	ExecutedAt time.Time
	Ref        string
}

// RowError is a data row that looked like a trade but could not be read.
type RowError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %s", e.Row, e.Column, e.Value, e.Reason)
}

// Parser reads tradebook CSV exports. It detects the broker by matching the
// header row against known profiles, and the delimiter by trying ',' then ';'.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the executed trades in chronological order.
func (p *Parser) Parse(r io.Reader) ([]Trade, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var readErr error

	for _, comma := range []rune{',', ';'} {
		rows, err := readRows(data, comma)
		if err != nil {
			readErr = err
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		trades, err := parseRows(profile, cols, rows[headerIdx+1:])
		if err != nil {
			return nil, err
		}

		slices.SortStableFunc(trades, func(a, b Trade) int {
			return a.ExecutedAt.Compare(b.ExecutedAt)
		})

		return trades, nil
	}

	if readErr != nil {
		return nil, fmt.Errorf("read csv: %w", readErr)
	}

	return nil, fmt.Errorf("%w: expected zerodha, groww or folio columns", ErrUnknownFormat)
}

// record is a CSV row with the file line it started on.
type record struct {
	line  int
	cells []string
}

func readRows(data []byte, comma rune) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, record{line: line, cells: cells})
	}
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func (c colIndex) of(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

func detectProfile(rows []record) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row.cells {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a readable date (footers, totals) and rows of
// unfilled orders; any other unreadable cell fails the whole file.
func parseRows(p *Profile, cols colIndex, rows []record) ([]Trade, error) {
	var trades []Trade

	for _, rec := range rows {
		row, rowNum := rec.cells, rec.line

		executedAt, ok := parseDate(p, cellValue(row, cols.of(p.DateCol)), cellValue(row, cols.of(p.TimeCol)))
		if !ok {
			continue
		}

		if p.StatusCol != "" && !strings.EqualFold(cellValue(row, cols.of(p.StatusCol)), p.Executed) {
			continue
		}

		t, err := parseTrade(p, cols, row, rowNum)
		if err != nil {
			return nil, err
		}

		t.ExecutedAt = executedAt
		t.Date = time.Date(executedAt.Year(), executedAt.Month(), executedAt.Day(), 0, 0, 0, 0, time.UTC)
		trades = append(trades, t)
	}

	return trades, nil
}

func parseTrade(p *Profile, cols colIndex, row []string, rowNum int) (Trade, error) {
	t := Trade{
		Row:        rowNum,
		Instrument: cellValue(row, cols.of(p.SymbolCol)),
		Exchange:   strings.ToUpper(cellValue(row, cols.of(p.ExchangeCol))),
		Ref:        cellValue(row, cols.of(p.RefCol)),
	}

	if t.Instrument == "" {
		return t, &RowError{Row: rowNum, Column: p.SymbolCol, Reason: "missing instrument"}
	}

	rawType := cellValue(row, cols.of(p.TypeCol))

	t.Type = transaction.Type(strings.ToUpper(rawType))
	if !t.Type.Valid() {
		return t, &RowError{Row: rowNum, Column: p.TypeCol, Value: rawType, Reason: "expected buy or sell"}
	}

	rawQty := cellValue(row, cols.of(p.QuantityCol))

	qty, err := parseNumber(rawQty)
	if err != nil || !qty.IsInteger() || !qty.IsPositive() {
		return t, &RowError{Row: rowNum, Column: p.QuantityCol, Value: rawQty, Reason: "expected a positive whole number"}
	}

	t.Quantity = qty.IntPart()

	switch p.PriceMode {
	case priceColumn:
		raw := cellValue(row, cols.of(p.PriceCol))

		price, err := parseNumber(raw)
		if err != nil || price.IsNegative() {
			return t, &RowError{Row: rowNum, Column: p.PriceCol, Value: raw, Reason: "expected a non-negative price"}
		}

		t.Price = price

	case valueColumn:
		raw := cellValue(row, cols.of(p.ValueCol))

		value, err := parseNumber(raw)
		if err != nil || value.IsNegative() {
			return t, &RowError{Row: rowNum, Column: p.ValueCol, Value: raw, Reason: "expected a non-negative value"}
		}

		t.Price = value.DivRound(qty, 6)
	}

	return t, nil
}

// parseDate reads the date cell, with the time cell appended when the
// profile has one.
func parseDate(p *Profile, date, clock string) (time.Time, bool) {
	if date == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}

		if clock != "" {
			if c, err := parseClock(clock); err == nil {
				t = t.Add(c)
			}
		}

		return t, true
	}

	return time.Time{}, false
}

// parseClock accepts "15:04:05" or a full "2006-01-02T15:04:05" timestamp and
// returns the offset into the day.
func parseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}

	return 0, fmt.Errorf("unrecognized time %q", s)
}

// parseNumber accepts plain decimals with optional thousands separators and
// currency marks.
func parseNumber(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "₹", "", "Rs.", "", " ", "").Replace(s)
	return decimal.NewFromString(clean)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
