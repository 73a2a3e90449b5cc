package common

import (
	"context"
	"math"
	"time"

	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/dateutil"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

// EarningGuard enforces the daily credit cap and the hourly claim-rate limit.
// Both are computed from the transaction ledger, so restarts and horizontal
// scaling need no extra bookkeeping.
type EarningGuard struct {
	transactionRepo repository.TransactionRepository
}

func NewEarningGuard(transactionRepo repository.TransactionRepository) *EarningGuard {
	return &EarningGuard{transactionRepo: transactionRepo}
}

// AllowEarning returns how many of the requested credits may still be earned
// today. A claim hitting the cap is clamped to the remainder; once the
// remainder is zero the claim is refused outright.
func (g *EarningGuard) AllowEarning(ctx context.Context, userID string, amount float64) (float64, error) {
	limit := xcontext.Configs(ctx).Reward.DailyCreditCap
	if limit <= 0 {
		return amount, nil
	}

	earned, err := g.transactionRepo.SumEarnedCreditsSince(
		ctx, userID, dateutil.BeginningOfDay(time.Now()))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum earned credits: %v", err)
		return 0, errorx.Unknown
	}

	remaining := limit - earned
	if remaining <= 0 {
		return 0, errorx.New(errorx.DailyCapExceeded,
			"Daily credit limit of %g reached, try again tomorrow", limit)
	}

	return math.Min(amount, remaining), nil
}

// CheckClaimRate refuses the claim when the account already recorded the
// maximum number of claim transactions within the last hour.
func (g *EarningGuard) CheckClaimRate(ctx context.Context, userID string) error {
	max := xcontext.Configs(ctx).Reward.MaxClaimsPerHour
	if max <= 0 {
		return nil
	}

	count, err := g.transactionRepo.CountClaimsSince(ctx, userID, time.Now().Add(-time.Hour))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count recent claims: %v", err)
		return errorx.Unknown
	}

	if count >= int64(max) {
		return errorx.New(errorx.TooManyRequests, "Too many claims, slow down")
	}

	return nil
}
