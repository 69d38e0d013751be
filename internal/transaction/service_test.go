package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

func TestService_Get(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{ID: id}, nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := transaction.NewService(repo).Get(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		filter    transaction.ListFilter
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			filter: transaction.ListFilter{},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return([]*transaction.Transaction{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
			},
			wantLen: 2,
		},
		{
			name:   "Error",
			filter: transaction.ListFilter{},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := transaction.NewService(repo).List(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_ListByHolding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holdingID := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{HoldingID: &holdingID}).
		Return([]*transaction.Transaction{{HoldingID: holdingID}}, nil)

	got, err := transaction.NewService(repo).ListByHolding(context.Background(), holdingID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestValidate(t *testing.T) {
	valid := func() *transaction.Transaction {
		return &transaction.Transaction{
			HoldingID: uuid.New(),
			Type:      transaction.TypeBuy,
			Quantity:  10,
			Price:     decimal.NewFromInt(100),
			Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name      string
		mutate    func(tx *transaction.Transaction)
		wantField string
	}{
		{name: "Valid", mutate: func(*transaction.Transaction) {}},
		{name: "ZeroPriceAllowed", mutate: func(tx *transaction.Transaction) { tx.Price = decimal.Zero }},
		{name: "MissingHolding", mutate: func(tx *transaction.Transaction) { tx.HoldingID = uuid.Nil }, wantField: "holding_id"},
		{name: "UnknownType", mutate: func(tx *transaction.Transaction) { tx.Type = "DIVIDEND" }, wantField: "type"},
		{name: "ZeroQuantity", mutate: func(tx *transaction.Transaction) { tx.Quantity = 0 }, wantField: "quantity"},
		{name: "NegativeQuantity", mutate: func(tx *transaction.Transaction) { tx.Quantity = -5 }, wantField: "quantity"},
		{name: "NegativePrice", mutate: func(tx *transaction.Transaction) { tx.Price = decimal.NewFromInt(-1) }, wantField: "price"},
		{name: "MissingDate", mutate: func(tx *transaction.Transaction) { tx.Date = time.Time{} }, wantField: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(tx)

			err := transaction.Validate(tx)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, transaction.ErrInvalid)

			var verr *transaction.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestTransaction_Before(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a := &transaction.Transaction{Date: day, Seq: 1}
	b := &transaction.Transaction{Date: day, Seq: 2}
	c := &transaction.Transaction{Date: day.AddDate(0, 0, -1), Seq: 3}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, c.Before(a))
}

func TestTransaction_Value(t *testing.T) {
	tx := &transaction.Transaction{Quantity: 3, Price: decimal.RequireFromString("10.25")}
	assert.True(t, decimal.RequireFromString("30.75").Equal(tx.Value()))
}
