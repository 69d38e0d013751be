package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/sanitize"
)

var csvHeader = []string{
	"Date (Buy)", "Stock", "Quantity (Buy)", "Buy Price",
	"Date (Sell)", "Quantity (Sell)", "Sell Price", "Realized", "Last Price",
}

// WriteCSV writes rows in the reconciliation layout; open lots leave the sell
// columns empty.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		rec := []string{
			calendar.Format(r.BuyDate),
			sanitize.Cell(r.Symbol),
			strconv.FormatInt(r.BuyQuantity, 10),
			r.BuyPrice.String(),
			"", "", "", "",
			"",
		}

		if !r.Open() {
			rec[4] = calendar.Format(r.SellDate)
			rec[5] = strconv.FormatInt(r.SellQuantity, 10)
			rec[6] = r.SellPrice.String()
			rec[7] = r.Realized.StringFixed(2)
		}

		if r.LastPrice.Valid {
			rec[8] = r.LastPrice.Decimal.String()
		}

		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}
