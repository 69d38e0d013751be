package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

func TestService_RecordExternalFlow(t *testing.T) {
	type testCase struct {
		name       string
		existing   []*ledger.Entry
		params     ledger.FlowParams
		wantAmount string
		wantErr    error
		wantEntry  int64
	}

	tests := []testCase{
		{
			name:       "Deposit",
			params:     ledger.FlowParams{UserID: userID, Type: ledger.TypeDeposit, Amount: dec("1000"), Date: day(1)},
			wantAmount: "1000",
		},
		{
			name:     "WithdrawalBeyondBalance",
			existing: []*ledger.Entry{entry(1, ledger.TypeDeposit, "1000", day(1))},
			params:   ledger.FlowParams{UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("1500"), Date: day(2)},
			wantErr:  ledger.ErrInsufficientBalance,
		},
		{
			name:       "WithdrawalWithinBalance",
			existing:   []*ledger.Entry{entry(1, ledger.TypeDeposit, "1000", day(1))},
			params:     ledger.FlowParams{UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("1000"), Date: day(2)},
			wantAmount: "-1000",
		},
		{
			name: "BackdatedWithdrawalBreaksLaterBalance",
			existing: []*ledger.Entry{
				entry(1, ledger.TypeDeposit, "1000", day(1)),
				entry(2, ledger.TypeWithdrawal, "-800", day(5)),
			},
			params:    ledger.FlowParams{UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("500"), Date: day(3)},
			wantErr:   ledger.ErrInsufficientBalance,
			wantEntry: 2,
		},
		{
			name: "LaterBalanceAlreadyNegativeFromTrade",
			existing: []*ledger.Entry{
				entry(1, ledger.TypeDeposit, "100", day(1)),
				entry(2, ledger.TypeBuyDebit, "-500", day(5)),
			},
			params:     ledger.FlowParams{UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("50"), Date: day(2)},
			wantAmount: "-50",
		},
		{
			name:       "DepositSmallerThanTradeShortfall",
			existing:   []*ledger.Entry{entry(1, ledger.TypeBuyDebit, "-1000", day(1))},
			params:     ledger.FlowParams{UserID: userID, Type: ledger.TypeDeposit, Amount: dec("500"), Date: day(2)},
			wantAmount: "500",
		},
		{
			name:       "OpeningCapitalDatedAfterFirstBuy",
			existing:   []*ledger.Entry{entry(1, ledger.TypeBuyDebit, "-1000", day(1))},
			params:     ledger.FlowParams{UserID: userID, Type: ledger.TypeInitDeposit, Amount: dec("200"), Date: day(3)},
			wantAmount: "200",
		},
		{
			name:     "WithdrawalWhileTradeShortfall",
			existing: []*ledger.Entry{entry(1, ledger.TypeBuyDebit, "-1000", day(1))},
			params:   ledger.FlowParams{UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("1"), Date: day(2)},
			wantErr:  ledger.ErrInsufficientBalance,
		},
		{
			name: "AppendedAfterSameDayEntries",
			existing: []*ledger.Entry{
				entry(1, ledger.TypeDeposit, "100", day(1)),
				entry(2, ledger.TypeDeposit, "500", day(3)),
			},
			params:     ledger.FlowParams{UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("300"), Date: day(3)},
			wantAmount: "-300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			utx := ledger.NewMockUserTx(ctrl)

			repo.EXPECT().BeginUser(gomock.Any(), userID).Return(utx, nil)
			utx.EXPECT().ListEntries(gomock.Any(), userID).Return(tt.existing, nil)
			utx.EXPECT().Rollback().Return(nil)

			if tt.wantErr == nil {
				utx.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
						e.ID = 99
						return nil
					})
				utx.EXPECT().Commit().Return(nil)
			}

			got, err := ledger.NewService(repo).RecordExternalFlow(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				var berr *ledger.InsufficientBalanceError
				require.ErrorAs(t, err, &berr)
				assert.Equal(t, tt.wantEntry, berr.EntryID)
				assert.True(t, berr.Balance.IsNegative())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(99), got.ID)
			assert.Equal(t, tt.params.Type, got.Type)
			assert.True(t, dec(tt.wantAmount).Equal(got.Amount), "got %s", got.Amount)
			assert.Nil(t, got.TransactionID)
		})
	}
}

func TestService_RecordExternalFlow_BalanceUnchangedOnRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := []*ledger.Entry{entry(1, ledger.TypeDeposit, "1000", day(1))}

	repo := ledger.NewMockRepository(ctrl)
	utx := ledger.NewMockUserTx(ctrl)

	repo.EXPECT().BeginUser(gomock.Any(), userID).Return(utx, nil)
	utx.EXPECT().ListEntries(gomock.Any(), userID).Return(existing, nil)
	utx.EXPECT().Rollback().Return(nil)
	repo.EXPECT().ListEntries(gomock.Any(), userID).Return(existing, nil)

	svc := ledger.NewService(repo)

	_, err := svc.RecordExternalFlow(context.Background(), ledger.FlowParams{
		UserID: userID, Type: ledger.TypeWithdrawal, Amount: dec("1500"), Date: day(2),
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	balance, err := svc.BalanceAsOf(context.Background(), userID, day(2))
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(balance))
}

func TestService_RecordExternalFlow_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params ledger.FlowParams
	}{
		{name: "ZeroAmount", params: ledger.FlowParams{UserID: userID, Type: ledger.TypeDeposit, Amount: dec("0"), Date: day(1)}},
		{name: "NegativeAmount", params: ledger.FlowParams{UserID: userID, Type: ledger.TypeDeposit, Amount: dec("-5"), Date: day(1)}},
		{name: "TradeType", params: ledger.FlowParams{UserID: userID, Type: ledger.TypeBuyDebit, Amount: dec("5"), Date: day(1)}},
		{name: "MissingUser", params: ledger.FlowParams{Type: ledger.TypeDeposit, Amount: dec("5"), Date: day(1)}},
		{name: "MissingDate", params: ledger.FlowParams{UserID: userID, Type: ledger.TypeDeposit, Amount: dec("5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			_, err := ledger.NewService(ledger.NewMockRepository(ctrl)).RecordExternalFlow(context.Background(), tt.params)
			assert.ErrorIs(t, err, ledger.ErrInvalid)
		})
	}
}

func TestService_DeleteExternalFlow(t *testing.T) {
	existing := func() []*ledger.Entry {
		return []*ledger.Entry{
			entry(1, ledger.TypeDeposit, "1000", day(1)),
			entry(2, ledger.TypeWithdrawal, "-800", day(2)),
			entry(3, ledger.TypeBuyDebit, "-100", day(3)),
		}
	}

	tests := []struct {
		name    string
		entryID int64
		wantErr error
	}{
		{name: "Withdrawal", entryID: 2},
		{name: "DepositBackingLaterWithdrawal", entryID: 1, wantErr: ledger.ErrInsufficientBalance},
		{name: "TradeEntry", entryID: 3, wantErr: ledger.ErrNotExternal},
		{name: "Unknown", entryID: 42, wantErr: ledger.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			utx := ledger.NewMockUserTx(ctrl)

			repo.EXPECT().BeginUser(gomock.Any(), userID).Return(utx, nil)
			utx.EXPECT().ListEntries(gomock.Any(), userID).Return(existing(), nil)
			utx.EXPECT().Rollback().Return(nil)

			if tt.wantErr == nil {
				utx.EXPECT().DeleteEntry(gomock.Any(), tt.entryID).Return(nil)
				utx.EXPECT().Commit().Return(nil)
			}

			err := ledger.NewService(repo).DeleteExternalFlow(context.Background(), userID, tt.entryID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_BeginUserError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().BeginUser(gomock.Any(), userID).Return(nil, errors.New("db down"))

	_, err := ledger.NewService(repo).RecordExternalFlow(context.Background(), ledger.FlowParams{
		UserID: userID, Type: ledger.TypeDeposit, Amount: dec("1"), Date: day(1),
	})
	assert.ErrorContains(t, err, "db down")
}

func TestService_Statement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListEntries(gomock.Any(), userID).Return(sampleLedger(), nil)

	lines, err := ledger.NewService(repo).Statement(context.Background(), userID, day(2), day(4))
	require.NoError(t, err)

	require.Len(t, lines, 4)
	assert.Equal(t, int64(2), lines[0].Entry.ID)
	assert.True(t, dec("1500").Equal(lines[0].Balance))
	assert.Equal(t, int64(5), lines[3].Entry.ID)
	assert.True(t, dec("900").Equal(lines[3].Balance))
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().GetEntry(gomock.Any(), int64(1)).Return(entry(1, ledger.TypeDeposit, "10", day(1)), nil).Times(2)

	svc := ledger.NewService(repo)

	got, err := svc.Get(context.Background(), userID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.Get(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestSyncTransactionFlow_UpdatesInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tx := &transaction.Transaction{
		ID:       uuid.New(),
		Type:     transaction.TypeBuy,
		Quantity: 10,
		Price:    dec("100"),
		Date:     day(1),
	}

	w := ledger.NewMockFlowWriter(ctrl)

	var written []*ledger.Entry

	w.EXPECT().UpsertTransactionFlow(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
			written = append(written, e)
			return nil
		}).Times(2)

	require.NoError(t, ledger.SyncTransactionFlow(context.Background(), w, userID, tx))

	tx.Quantity = 20
	require.NoError(t, ledger.SyncTransactionFlow(context.Background(), w, userID, tx))

	require.Len(t, written, 2)
	assert.Equal(t, *written[0].TransactionID, *written[1].TransactionID)
	assert.True(t, dec("-1000").Equal(written[0].Amount))
	assert.True(t, dec("-2000").Equal(written[1].Amount))
}

func TestRemoveTransactionFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	w := ledger.NewMockFlowWriter(ctrl)
	w.EXPECT().DeleteTransactionFlow(gomock.Any(), id).Return(errors.New("boom"))

	err := ledger.RemoveTransactionFlow(context.Background(), w, id)
	assert.ErrorContains(t, err, id.String())
}
