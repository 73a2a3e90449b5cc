package domain

import (
	"context"
	"time"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/domain/spinwheel"
	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/dateutil"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/google/uuid"
)

type SpinDomain interface {
	Spin(context.Context, *model.SpinRequest) (*model.SpinResponse, error)
	GetHistory(context.Context, *model.GetSpinHistoryRequest) (*model.GetSpinHistoryResponse, error)
}

type spinDomain struct {
	spinRepo        repository.SpinRepository
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	redisClient     xredis.Client
	guard           *common.EarningGuard
	wheel           *spinwheel.Wheel
}

func NewSpinDomain(
	spinRepo repository.SpinRepository,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	redisClient xredis.Client,
	wheel *spinwheel.Wheel,
) *spinDomain {
	return &spinDomain{
		spinRepo:        spinRepo,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		redisClient:     redisClient,
		guard:           common.NewEarningGuard(transactionRepo),
		wheel:           wheel,
	}
}

// Spin draws the daily prize. The prize is exempt from the daily credit cap
// but still counts against the hourly claim rate.
func (d *spinDomain) Spin(ctx context.Context, req *model.SpinRequest) (*model.SpinResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	if err := d.guard.CheckClaimRate(ctx, user.ID); err != nil {
		return nil, err
	}

	prize := d.wheel.Spin()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	spin := &entity.SpinHistory{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     user.ID,
		SpinDate:   dateutil.DayString(time.Now()),
		CreditsWon: prize.Credits,
	}

	if err := d.spinRepo.Create(ctx, spin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errorx.New(errorx.AlreadyExists,
				"Already spun today, try again tomorrow")
		}

		xcontext.Logger(ctx).Errorf("Cannot create spin history: %v", err)
		return nil, errorx.Unknown
	}

	wallet, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, user.ID,
		walletChange{
			creditsDelta:     prize.Credits,
			totalEarnedDelta: prize.Credits,
			txType:           entity.TxSpinWin,
			description:      "Spin wheel prize",
			referenceID:      spin.ID,
		})
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	bumpLeaderboard(ctx, d.redisClient, user.ID, prize.Credits)

	return &model.SpinResponse{CreditsWon: prize.Credits, NewBalance: wallet.Credits}, nil
}

func (d *spinDomain) GetHistory(
	ctx context.Context, req *model.GetSpinHistoryRequest,
) (*model.GetSpinHistoryResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	records, err := d.spinRepo.GetListByUserID(ctx, userID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get spin history: %v", err)
		return nil, errorx.Unknown
	}

	history := []model.Spin{}
	for i := range records {
		history = append(history, model.ConvertSpin(&records[i]))
	}

	return &model.GetSpinHistoryResponse{History: history}, nil
}
