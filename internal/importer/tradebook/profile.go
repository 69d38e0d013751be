package tradebook

// priceMode determines how the per-share price is extracted from a row.
type priceMode int

const (
	// priceColumn means the row carries the price per share.
	priceColumn priceMode = iota
	// valueColumn means the row carries the total trade value; price is
	// value / quantity.
	valueColumn
)

// Profile describes the column layout of one broker's tradebook export.
type Profile struct {
	Name        string
	SymbolCol   string
	TypeCol     string
	QuantityCol string
	PriceMode   priceMode
	PriceCol    string // priceColumn
	ValueCol    string // valueColumn
	DateCol     string
	DateLayouts []string

	// Optional columns; empty when the broker does not export them.
	TimeCol     string
	RefCol      string
	ExchangeCol string
	StatusCol   string
	// Executed is the StatusCol value of filled orders.
	Executed string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.SymbolCol, p.TypeCol, p.QuantityCol, p.DateCol}

	switch p.PriceMode {
	case priceColumn:
		cols = append(cols, p.PriceCol)
	case valueColumn:
		cols = append(cols, p.ValueCol)
	}

	if p.StatusCol != "" {
		cols = append(cols, p.StatusCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "zerodha",
		SymbolCol:   "symbol",
		TypeCol:     "trade_type",
		QuantityCol: "quantity",
		PriceMode:   priceColumn,
		PriceCol:    "price",
		DateCol:     "trade_date",
		DateLayouts: []string{"2006-01-02", "02-01-2006"},
		TimeCol:     "order_execution_time",
		RefCol:      "trade_id",
		ExchangeCol: "exchange",
	},
	{
		Name:        "groww",
		SymbolCol:   "Symbol",
		TypeCol:     "Type",
		QuantityCol: "Quantity",
		PriceMode:   valueColumn,
		ValueCol:    "Value",
		DateCol:     "Execution date and time",
		DateLayouts: []string{"02-01-2006 03:04 PM", "02-01-2006 15:04", "2006-01-02 15:04:05"},
		RefCol:      "Exchange Order Id",
		ExchangeCol: "Exchange",
		StatusCol:   "Order status",
		Executed:    "Executed",
	},
	{
		Name:        "folio",
		SymbolCol:   "Symbol",
		TypeCol:     "Type",
		QuantityCol: "Quantity",
		PriceMode:   priceColumn,
		PriceCol:    "Price",
		DateCol:     "Date",
		DateLayouts: []string{"2006-01-02", "02/01/2006"},
		RefCol:      "Reference",
	},
}
