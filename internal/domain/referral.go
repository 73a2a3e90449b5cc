package domain

import (
	"context"

	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

type ReferralDomain interface {
	GetMyReferrals(context.Context, *model.GetMyReferralsRequest) (*model.GetMyReferralsResponse, error)
}

type referralDomain struct {
	referralRepo repository.ReferralRepository
	userRepo     repository.UserRepository
}

func NewReferralDomain(
	referralRepo repository.ReferralRepository,
	userRepo repository.UserRepository,
) *referralDomain {
	return &referralDomain{referralRepo: referralRepo, userRepo: userRepo}
}

func (d *referralDomain) GetMyReferrals(
	ctx context.Context, req *model.GetMyReferralsRequest,
) (*model.GetMyReferralsResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	records, err := d.referralRepo.GetListByReferrerID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get referrals: %v", err)
		return nil, errorx.Unknown
	}

	total := 0.0
	referrals := []model.Referral{}
	for i := range records {
		username := ""
		if u, err := d.userRepo.GetByID(ctx, records[i].ReferredID); err == nil {
			username = u.Username
		}

		referrals = append(referrals, model.ConvertReferral(&records[i], username))
		total += records[i].TotalCommission
	}

	return &model.GetMyReferralsResponse{
		ReferralCode:    user.ReferralCode,
		Referrals:       referrals,
		TotalCommission: total,
	}, nil
}
