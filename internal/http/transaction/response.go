package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

type transactionResponse struct {
	ID        uuid.UUID        `json:"id"`
	HoldingID uuid.UUID        `json:"holding_id"`
	Type      transaction.Type `json:"type"`
	Quantity  int64            `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Value     decimal.Decimal  `json:"value"`
	Date      string           `json:"date"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

type holdingStateResponse struct {
	HoldingID    uuid.UUID       `json:"holding_id"`
	OpenQuantity int64           `json:"open_quantity"`
	CostBasis    decimal.Decimal `json:"cost_basis"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	Realized     decimal.Decimal `json:"realized"`
}

type changeResponse struct {
	Transaction transactionResponse  `json:"transaction"`
	Holding     holdingStateResponse `json:"holding"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		HoldingID: tx.HoldingID,
		Type:      tx.Type,
		Quantity:  tx.Quantity,
		Price:     tx.Price,
		Value:     tx.Value(),
		Date:      calendar.Format(tx.Date),
		Notes:     tx.Notes,
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toChangeResponse(tx *transaction.Transaction, sum *portfolio.Summary) changeResponse {
	return changeResponse{
		Transaction: toResponse(tx),
		Holding: holdingStateResponse{
			HoldingID:    sum.HoldingID,
			OpenQuantity: sum.OpenQuantity,
			CostBasis:    sum.CostBasis,
			AverageCost:  sum.AverageCost.Round(6),
			Realized:     sum.Realized,
		},
	}
}
