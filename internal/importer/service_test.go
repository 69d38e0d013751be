package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/importer"
	"github.com/MrJamesThe3rd/folio/internal/importer/tradebook"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

const book = `Date,Symbol,Type,Quantity,Price,Reference
2024-07-01,infy-eq,BUY,10,1500,T1
2024-07-02,INFY-EQ,SELL,20,1600,T2
2024-07-03,TCS,BUY,1,4000,T3
`

type mocks struct {
	holdings     *importer.MockHoldings
	symbols      *importer.MockSymbols
	transactions *importer.MockTransactions
	applier      *importer.MockApplier
}

func newService(t *testing.T) (*importer.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		holdings:     importer.NewMockHoldings(ctrl),
		symbols:      importer.NewMockSymbols(ctrl),
		transactions: importer.NewMockTransactions(ctrl),
		applier:      importer.NewMockApplier(ctrl),
	}

	svc := importer.NewService(tradebook.NewParser(), m.holdings, m.symbols, m.transactions, m.applier)

	return svc, m
}

func expectSymbols(m mocks) {
	m.symbols.EXPECT().Suggest(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, raw string) (string, error) {
		return strings.TrimSuffix(strings.ToUpper(raw), "-EQ"), nil
	}).AnyTimes()
}

func TestService_Preview(t *testing.T) {
	userID := uuid.New()
	svc, m := newService(t)
	expectSymbols(m)

	m.transactions.EXPECT().List(gomock.Any(), transaction.ListFilter{UserID: &userID}).Return([]*transaction.Transaction{
		{Notes: "broker ref T3"},
		{Notes: "manual"},
	}, nil)

	res, err := svc.Preview(context.Background(), userID, strings.NewReader(book))
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)

	assert.Equal(t, "INFY", res.Lines[0].Symbol)
	assert.Equal(t, importer.StatusNew, res.Lines[0].Status)
	assert.Equal(t, importer.StatusDuplicate, res.Lines[2].Status)
	assert.Equal(t, 2, res.Count(importer.StatusNew))
}

func TestService_Import(t *testing.T) {
	userID := uuid.New()
	infy := &holding.Holding{ID: uuid.New(), UserID: userID, Symbol: "INFY"}
	tcs := &holding.Holding{ID: uuid.New(), UserID: userID, Symbol: "TCS"}

	svc, m := newService(t)
	expectSymbols(m)

	m.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.holdings.EXPECT().Ensure(gomock.Any(), userID, "INFY").Return(infy, nil).Times(2)
	m.holdings.EXPECT().Ensure(gomock.Any(), userID, "TCS").Return(tcs, nil)

	var applied []*transaction.Transaction

	m.applier.EXPECT().ApplyTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ch portfolio.Change) (*portfolio.Summary, error) {
		assert.Equal(t, portfolio.OpCreate, ch.Op)
		assert.Equal(t, userID, ch.UserID)

		if ch.Transaction.Type == transaction.TypeSell {
			return nil, &lot.OversellError{HoldingID: infy.ID, Requested: 20, Available: 10}
		}

		applied = append(applied, ch.Transaction)

		return &portfolio.Summary{HoldingID: ch.Transaction.HoldingID}, nil
	}).Times(3)

	res, err := svc.Import(context.Background(), userID, strings.NewReader(book))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count(importer.StatusImported))
	assert.Equal(t, 1, res.Count(importer.StatusFailed))

	failed := res.Lines[1]
	assert.Equal(t, importer.StatusFailed, failed.Status)
	assert.ErrorIs(t, failed.Err, lot.ErrOversell)

	require.Len(t, applied, 2)
	assert.Equal(t, infy.ID, applied[0].HoldingID)
	assert.Equal(t, "broker ref T1", applied[0].Notes)
	assert.Equal(t, tcs.ID, applied[1].HoldingID)
	assert.Same(t, applied[1], res.Lines[2].Transaction)
}

func TestService_ImportParseError(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Import(context.Background(), uuid.New(), strings.NewReader("x,y\n1,2\n"))
	assert.ErrorIs(t, err, tradebook.ErrUnknownFormat)
}

func TestService_ImportHoldingError(t *testing.T) {
	userID := uuid.New()
	svc, m := newService(t)
	expectSymbols(m)

	m.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.holdings.EXPECT().Ensure(gomock.Any(), userID, "TCS").Return(nil, errors.New("db down"))

	res, err := svc.Import(context.Background(), userID, strings.NewReader("Date,Symbol,Type,Quantity,Price\n2024-07-03,TCS,BUY,1,4000\n"))
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, importer.StatusFailed, res.Lines[0].Status)
	assert.ErrorContains(t, res.Lines[0].Err, "db down")
}
