package domain

import (
	"testing"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestPaymentDomain() *paymentDomain {
	return NewPaymentDomain(
		repository.NewDepositRepository(),
		repository.NewWithdrawalRepository(),
		repository.NewPaymentSettingRepository(),
		repository.NewReferralRepository(),
		repository.NewUserRepository(),
		repository.NewRoleRepository(),
		repository.NewWalletRepository(),
		repository.NewTransactionRepository(),
		nil,
	)
}

func Test_paymentDomain_CreateDeposit_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := d.CreateDeposit(userCtx, &model.CreateDepositRequest{
		Amount:        200,
		PaymentMethod: "nagad",
	})
	require.Error(t, err)
	require.Equal(t, "Unsupported payment method nagad", err.Error())

	_, err = d.CreateDeposit(userCtx, &model.CreateDepositRequest{
		Amount:        50,
		PaymentMethod: "bkash",
	})
	require.Error(t, err)
	require.Equal(t, "Minimum deposit is 100", err.Error())
}

func Test_paymentDomain_DepositLifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()
	walletRepo := repository.NewWalletRepository()

	// User2 was referred by User1, so approving the first deposit also pays
	// the referrer a one-time bonus plus commission.
	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	created, err := d.CreateDeposit(user2Ctx, &model.CreateDepositRequest{
		Amount:         200,
		PaymentMethod:  "bkash",
		TransactionRef: "TRX001",
	})
	require.NoError(t, err)

	// Only admins review deposits.
	_, err = d.ReviewDeposit(user2Ctx, &model.ReviewDepositRequest{
		DepositID: created.ID,
		Approve:   true,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.ReviewDeposit(adminCtx, &model.ReviewDepositRequest{
		DepositID: created.ID,
		Approve:   true,
	})
	require.NoError(t, err)

	wallet2, err := walletRepo.GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, float64(200), wallet2.Cash)

	// Referrer bonus of 100 credits plus a 5% commission in credits.
	wallet1, err := walletRepo.GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, float64(210), wallet1.Credits)
	require.Equal(t, float64(210), wallet1.TotalEarned)
	require.Equal(t, float64(500), wallet1.Cash)

	// Reviewing twice is refused.
	_, err = d.ReviewDeposit(adminCtx, &model.ReviewDepositRequest{
		DepositID: created.ID,
		Approve:   false,
	})
	require.Error(t, err)
	require.Equal(t, "Deposit already reviewed", err.Error())

	// A second approved deposit pays no referral bonus again.
	second, err := d.CreateDeposit(user2Ctx, &model.CreateDepositRequest{
		Amount:        300,
		PaymentMethod: "bkash",
	})
	require.NoError(t, err)

	_, err = d.ReviewDeposit(adminCtx, &model.ReviewDepositRequest{
		DepositID: second.ID,
		Approve:   true,
	})
	require.NoError(t, err)

	wallet1, err = walletRepo.GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, float64(210), wallet1.Credits)
	require.Equal(t, float64(500), wallet1.Cash)
}

func Test_paymentDomain_RejectedDepositPaysNothing(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()
	walletRepo := repository.NewWalletRepository()

	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	created, err := d.CreateDeposit(user2Ctx, &model.CreateDepositRequest{
		Amount:        200,
		PaymentMethod: "bkash",
	})
	require.NoError(t, err)

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.ReviewDeposit(adminCtx, &model.ReviewDepositRequest{
		DepositID: created.ID,
		Approve:   false,
		Note:      "no matching payment",
	})
	require.NoError(t, err)

	wallet2, err := walletRepo.GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, float64(0), wallet2.Cash)
}

func Test_paymentDomain_WithdrawalLifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()
	walletRepo := repository.NewWalletRepository()

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := d.RequestWithdrawal(user1Ctx, &model.RequestWithdrawalRequest{
		Amount:        100,
		PaymentMethod: "bkash",
		AccountNumber: "01800000000",
	})
	require.Error(t, err)
	require.Equal(t, "Minimum withdrawal is 200", err.Error())

	_, err = d.RequestWithdrawal(user1Ctx, &model.RequestWithdrawalRequest{
		Amount:        600,
		PaymentMethod: "bkash",
		AccountNumber: "01800000000",
	})
	require.Error(t, err)
	require.Equal(t, "Insufficient cash", err.Error())

	// The amount is reserved at request time.
	resp, err := d.RequestWithdrawal(user1Ctx, &model.RequestWithdrawalRequest{
		Amount:        300,
		PaymentMethod: "bkash",
		AccountNumber: "01800000000",
	})
	require.NoError(t, err)
	require.Equal(t, float64(200), resp.NewCash)

	// Rejection refunds the reservation.
	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.ProcessWithdrawal(adminCtx, &model.ProcessWithdrawalRequest{
		WithdrawalID: resp.ID,
		Approve:      false,
		Note:         "invalid account",
	})
	require.NoError(t, err)

	wallet1, err := walletRepo.GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, float64(500), wallet1.Cash)

	// Processing twice is refused.
	_, err = d.ProcessWithdrawal(adminCtx, &model.ProcessWithdrawalRequest{
		WithdrawalID: resp.ID,
		Approve:      true,
	})
	require.Error(t, err)
	require.Equal(t, "Withdrawal already processed", err.Error())
}

func Test_paymentDomain_GetTransactions(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.RequestWithdrawal(user1Ctx, &model.RequestWithdrawalRequest{
		Amount:        200,
		PaymentMethod: "bkash",
		AccountNumber: "01800000000",
	})
	require.NoError(t, err)
	require.Equal(t, float64(300), resp.NewCash)

	transactions, err := d.GetTransactions(user1Ctx, &model.GetTransactionsRequest{})
	require.NoError(t, err)
	require.Len(t, transactions.Transactions, 1)
	require.Equal(t, "cash_withdraw", transactions.Transactions[0].Type)
	require.Equal(t, float64(-200), transactions.Transactions[0].Amount)
	require.Equal(t, float64(500), transactions.Transactions[0].BalanceBefore)
	require.Equal(t, float64(300), transactions.Transactions[0].BalanceAfter)
}

func Test_paymentDomain_LedgerReplay(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()
	taskDomain := newTestTaskDomain()
	walletRepo := repository.NewWalletRepository()
	transactionRepo := repository.NewTransactionRepository()

	// Mix credit and cash movements on one account.
	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := taskDomain.Claim(user2Ctx, &model.ClaimTaskRequest{TaskID: testutil.DailyTask.ID})
	require.NoError(t, err)

	deposit, err := d.CreateDeposit(user2Ctx, &model.CreateDepositRequest{
		Amount:        200,
		PaymentMethod: "bkash",
	})
	require.NoError(t, err)

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.ReviewDeposit(adminCtx, &model.ReviewDepositRequest{
		DepositID: deposit.ID,
		Approve:   true,
	})
	require.NoError(t, err)

	_, err = d.RequestWithdrawal(user2Ctx, &model.RequestWithdrawalRequest{
		Amount:        200,
		PaymentMethod: "bkash",
		AccountNumber: "01800000000",
	})
	require.NoError(t, err)

	// Replaying the full ledger reproduces the wallet balances.
	transactions, err := transactionRepo.GetAllByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	var credits, cash float64
	for _, tx := range transactions {
		require.Equal(t, tx.BalanceAfter, tx.BalanceBefore+tx.Amount, "tx %s", tx.ID)

		switch tx.Type {
		case entity.TxCashDeposit, entity.TxCashWithdraw, entity.TxMatchEntryCash, entity.TxPrizeWon:
			cash += tx.Amount
		default:
			credits += tx.Amount
		}
	}

	wallet, err := walletRepo.GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Wallet2.Credits+credits, wallet.Credits)
	require.Equal(t, testutil.Wallet2.Cash+cash, wallet.Cash)
}

func Test_paymentDomain_UpsertPaymentSetting(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPaymentDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err := d.UpsertPaymentSetting(adminCtx, &model.UpsertPaymentSettingRequest{
		PaymentMethod: "nagad",
		AccountNumber: "01900000000",
		AccountName:   "BattleZone",
		MinDeposit:    150,
		MinWithdrawal: 250,
		IsActive:      true,
	})
	require.NoError(t, err)

	settings, err := d.GetPaymentSettings(ctx, &model.GetPaymentSettingsRequest{})
	require.NoError(t, err)
	require.Len(t, settings.Settings, 2)
}
