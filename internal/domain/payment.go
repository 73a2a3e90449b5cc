package domain

import (
	"context"
	"errors"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentDomain interface {
	CreateDeposit(context.Context, *model.CreateDepositRequest) (*model.CreateDepositResponse, error)
	ReviewDeposit(context.Context, *model.ReviewDepositRequest) (*model.ReviewDepositResponse, error)
	RequestWithdrawal(context.Context, *model.RequestWithdrawalRequest) (*model.RequestWithdrawalResponse, error)
	ProcessWithdrawal(context.Context, *model.ProcessWithdrawalRequest) (*model.ProcessWithdrawalResponse, error)
	GetMyDeposits(context.Context, *model.GetMyDepositsRequest) (*model.GetMyDepositsResponse, error)
	GetMyWithdrawals(context.Context, *model.GetMyWithdrawalsRequest) (*model.GetMyWithdrawalsResponse, error)
	GetPendingDeposits(context.Context, *model.GetPendingDepositsRequest) (*model.GetPendingDepositsResponse, error)
	GetPendingWithdrawals(context.Context, *model.GetPendingWithdrawalsRequest) (*model.GetPendingWithdrawalsResponse, error)
	GetTransactions(context.Context, *model.GetTransactionsRequest) (*model.GetTransactionsResponse, error)
	GetPaymentSettings(context.Context, *model.GetPaymentSettingsRequest) (*model.GetPaymentSettingsResponse, error)
	UpsertPaymentSetting(context.Context, *model.UpsertPaymentSettingRequest) (*model.UpsertPaymentSettingResponse, error)
}

type paymentDomain struct {
	depositRepo        repository.DepositRepository
	withdrawalRepo     repository.WithdrawalRepository
	paymentSettingRepo repository.PaymentSettingRepository
	referralRepo       repository.ReferralRepository
	userRepo           repository.UserRepository
	walletRepo         repository.WalletRepository
	transactionRepo    repository.TransactionRepository
	redisClient        xredis.Client
	roleVerifier       *common.GlobalRoleVerifier
}

func NewPaymentDomain(
	depositRepo repository.DepositRepository,
	withdrawalRepo repository.WithdrawalRepository,
	paymentSettingRepo repository.PaymentSettingRepository,
	referralRepo repository.ReferralRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	redisClient xredis.Client,
) *paymentDomain {
	return &paymentDomain{
		depositRepo:        depositRepo,
		withdrawalRepo:     withdrawalRepo,
		paymentSettingRepo: paymentSettingRepo,
		referralRepo:       referralRepo,
		userRepo:           userRepo,
		walletRepo:         walletRepo,
		transactionRepo:    transactionRepo,
		redisClient:        redisClient,
		roleVerifier:       common.NewGlobalRoleVerifier(userRepo, roleRepo),
	}
}

func (d *paymentDomain) getActiveSetting(
	ctx context.Context, method string,
) (*entity.PaymentSetting, error) {
	setting, err := d.paymentSettingRepo.GetByMethod(ctx, method)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Unsupported payment method %s", method)
		}

		xcontext.Logger(ctx).Errorf("Cannot get payment setting: %v", err)
		return nil, errorx.Unknown
	}

	if !setting.IsActive {
		return nil, errorx.New(errorx.BadRequest, "Unsupported payment method %s", method)
	}

	return setting, nil
}

func (d *paymentDomain) CreateDeposit(
	ctx context.Context, req *model.CreateDepositRequest,
) (*model.CreateDepositResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow non-positive amount")
	}

	setting, err := d.getActiveSetting(ctx, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if req.Amount < setting.MinDeposit {
		return nil, errorx.New(errorx.BadRequest,
			"Minimum deposit is %g", setting.MinDeposit)
	}

	deposit := &entity.Deposit{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         user.ID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		TransactionRef: req.TransactionRef,
		Status:         entity.DepositPending,
	}

	if err := d.depositRepo.Create(ctx, deposit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create deposit: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateDepositResponse{ID: deposit.ID}, nil
}

// ReviewDeposit settles a pending deposit. Approval credits the cash balance
// and, on the account's first approved deposit, pays the referrer the deposit
// bonus plus a commission. The referral flags flip in a guarded update, so
// two concurrent approvals pay the referrer at most once.
func (d *paymentDomain) ReviewDeposit(
	ctx context.Context, req *model.ReviewDepositRequest,
) (*model.ReviewDepositResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	deposit, err := d.depositRepo.GetByID(ctx, req.DepositID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found deposit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get deposit: %v", err)
		return nil, errorx.Unknown
	}

	status := entity.DepositApproved
	if !req.Approve {
		status = entity.DepositRejected
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ok, err := d.depositRepo.Review(
		ctx, deposit.ID, status, xcontext.RequestUserID(ctx), req.Note)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot review deposit: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Deposit already reviewed")
	}

	referrerBonus := 0.0
	var referrerID string
	if req.Approve {
		_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, deposit.UserID,
			walletChange{
				cashDelta:   deposit.Amount,
				txType:      entity.TxCashDeposit,
				description: "Deposit via " + deposit.PaymentMethod,
				referenceID: deposit.ID,
			})
		if err != nil {
			return nil, err
		}

		referrerID, referrerBonus, err = d.payReferralDepositBonus(ctx, deposit)
		if err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if referrerID != "" {
		bumpLeaderboard(ctx, d.redisClient, referrerID, referrerBonus)
	}

	return &model.ReviewDepositResponse{}, nil
}

func (d *paymentDomain) payReferralDepositBonus(
	ctx context.Context, deposit *entity.Deposit,
) (string, float64, error) {
	referral, err := d.referralRepo.GetByReferredID(ctx, deposit.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get referral: %v", err)
		return "", 0, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).Reward
	commission := deposit.Amount * cfg.DepositCommissionRate

	claimed, err := d.referralRepo.ClaimDepositBonus(ctx, deposit.UserID, commission)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot claim deposit bonus: %v", err)
		return "", 0, errorx.Unknown
	}

	if !claimed {
		return "", 0, nil
	}

	if cfg.DepositReferralBonus > 0 {
		_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, referral.ReferrerID,
			walletChange{
				creditsDelta:     cfg.DepositReferralBonus,
				totalEarnedDelta: cfg.DepositReferralBonus,
				txType:           entity.TxReferralBonus,
				description:      "Referral deposit bonus",
				referenceID:      deposit.ID,
			})
		if err != nil {
			return "", 0, err
		}
	}

	if commission > 0 {
		_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, referral.ReferrerID,
			walletChange{
				creditsDelta:     commission,
				totalEarnedDelta: commission,
				txType:           entity.TxReferralBonus,
				description:      "Referral deposit commission",
				referenceID:      deposit.ID,
			})
		if err != nil {
			return "", 0, err
		}
	}

	return referral.ReferrerID, cfg.DepositReferralBonus + commission, nil
}

// RequestWithdrawal reserves the amount immediately: the cash leaves the
// wallet now and comes back only if the withdrawal is rejected.
func (d *paymentDomain) RequestWithdrawal(
	ctx context.Context, req *model.RequestWithdrawalRequest,
) (*model.RequestWithdrawalResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow non-positive amount")
	}

	setting, err := d.getActiveSetting(ctx, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if req.Amount < setting.MinWithdrawal {
		return nil, errorx.New(errorx.BadRequest,
			"Minimum withdrawal is %g", setting.MinWithdrawal)
	}

	if req.AccountNumber == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty account number")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	withdrawal := &entity.Withdrawal{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        user.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		AccountNumber: req.AccountNumber,
		Status:        entity.WithdrawalPending,
	}

	if err := d.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	wallet, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, user.ID,
		walletChange{
			cashDelta:   -req.Amount,
			txType:      entity.TxCashWithdraw,
			description: "Withdrawal via " + req.PaymentMethod,
			referenceID: withdrawal.ID,
		})
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RequestWithdrawalResponse{ID: withdrawal.ID, NewCash: wallet.Cash}, nil
}

// ProcessWithdrawal settles a pending withdrawal. Approval only flips the
// status because the amount was reserved at request time; rejection refunds
// the reservation with a compensating ledger record.
func (d *paymentDomain) ProcessWithdrawal(
	ctx context.Context, req *model.ProcessWithdrawalRequest,
) (*model.ProcessWithdrawalResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	withdrawal, err := d.withdrawalRepo.GetByID(ctx, req.WithdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found withdrawal")
		}

		xcontext.Logger(ctx).Errorf("Cannot get withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	status := entity.WithdrawalCompleted
	if !req.Approve {
		status = entity.WithdrawalRejected
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ok, err := d.withdrawalRepo.Process(
		ctx, withdrawal.ID, status, xcontext.RequestUserID(ctx), req.Note)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot process withdrawal: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Withdrawal already processed")
	}

	if !req.Approve {
		_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, withdrawal.UserID,
			walletChange{
				cashDelta:   withdrawal.Amount,
				txType:      entity.TxCashWithdraw,
				description: "Withdrawal refund",
				referenceID: withdrawal.ID,
			})
		if err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ProcessWithdrawalResponse{}, nil
}

func (d *paymentDomain) GetMyDeposits(
	ctx context.Context, req *model.GetMyDepositsRequest,
) (*model.GetMyDepositsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	records, err := d.depositRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get deposits: %v", err)
		return nil, errorx.Unknown
	}

	deposits := []model.Deposit{}
	for i := range records {
		deposits = append(deposits, model.ConvertDeposit(&records[i]))
	}

	return &model.GetMyDepositsResponse{Deposits: deposits}, nil
}

func (d *paymentDomain) GetMyWithdrawals(
	ctx context.Context, req *model.GetMyWithdrawalsRequest,
) (*model.GetMyWithdrawalsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	records, err := d.withdrawalRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get withdrawals: %v", err)
		return nil, errorx.Unknown
	}

	withdrawals := []model.Withdrawal{}
	for i := range records {
		withdrawals = append(withdrawals, model.ConvertWithdrawal(&records[i]))
	}

	return &model.GetMyWithdrawalsResponse{Withdrawals: withdrawals}, nil
}

func (d *paymentDomain) GetPendingDeposits(
	ctx context.Context, req *model.GetPendingDepositsRequest,
) (*model.GetPendingDepositsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	records, err := d.depositRepo.GetListByStatus(ctx, entity.DepositPending)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get deposits: %v", err)
		return nil, errorx.Unknown
	}

	deposits := []model.Deposit{}
	for i := range records {
		deposits = append(deposits, model.ConvertDeposit(&records[i]))
	}

	return &model.GetPendingDepositsResponse{Deposits: deposits}, nil
}

func (d *paymentDomain) GetPendingWithdrawals(
	ctx context.Context, req *model.GetPendingWithdrawalsRequest,
) (*model.GetPendingWithdrawalsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	records, err := d.withdrawalRepo.GetListByStatus(ctx, entity.WithdrawalPending)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get withdrawals: %v", err)
		return nil, errorx.Unknown
	}

	withdrawals := []model.Withdrawal{}
	for i := range records {
		withdrawals = append(withdrawals, model.ConvertWithdrawal(&records[i]))
	}

	return &model.GetPendingWithdrawalsResponse{Withdrawals: withdrawals}, nil
}

func (d *paymentDomain) GetTransactions(
	ctx context.Context, req *model.GetTransactionsRequest,
) (*model.GetTransactionsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	records, err := d.transactionRepo.GetListByUserID(ctx, userID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	transactions := []model.Transaction{}
	for i := range records {
		transactions = append(transactions, model.ConvertTransaction(&records[i]))
	}

	return &model.GetTransactionsResponse{Transactions: transactions}, nil
}

func (d *paymentDomain) GetPaymentSettings(
	ctx context.Context, req *model.GetPaymentSettingsRequest,
) (*model.GetPaymentSettingsResponse, error) {
	records, err := d.paymentSettingRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get payment settings: %v", err)
		return nil, errorx.Unknown
	}

	settings := []model.PaymentSetting{}
	for i := range records {
		settings = append(settings, model.ConvertPaymentSetting(&records[i]))
	}

	return &model.GetPaymentSettingsResponse{Settings: settings}, nil
}

func (d *paymentDomain) UpsertPaymentSetting(
	ctx context.Context, req *model.UpsertPaymentSettingRequest,
) (*model.UpsertPaymentSettingResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if req.PaymentMethod == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty payment method")
	}

	if req.MinDeposit < 0 || req.MinWithdrawal < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative minimums")
	}

	err := d.paymentSettingRepo.Upsert(ctx, &entity.PaymentSetting{
		Base:          entity.Base{ID: uuid.NewString()},
		PaymentMethod: req.PaymentMethod,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		MinDeposit:    req.MinDeposit,
		MinWithdrawal: req.MinWithdrawal,
		IsActive:      req.IsActive,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert payment setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertPaymentSettingResponse{}, nil
}
