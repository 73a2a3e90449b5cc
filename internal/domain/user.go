package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/crypto"
	"github.com/battlezone-labs/backend/pkg/dateutil"
	"github.com/battlezone-labs/backend/pkg/enum"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserDomain interface {
	SyncProfile(context.Context, *model.SyncProfileRequest) (*model.SyncProfileResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	AssignGlobalRole(context.Context, *model.AssignGlobalRoleRequest) (*model.AssignGlobalRoleResponse, error)
	RevokeGlobalRole(context.Context, *model.RevokeGlobalRoleRequest) (*model.RevokeGlobalRoleResponse, error)
	BanUser(context.Context, *model.BanUserRequest) (*model.BanUserResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	roleRepo        repository.RoleRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	referralRepo    repository.ReferralRepository
	streakRepo      repository.StreakRepository
	redisClient     xredis.Client
	roleVerifier    *common.GlobalRoleVerifier
}

func NewUserDomain(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	referralRepo repository.ReferralRepository,
	streakRepo repository.StreakRepository,
	redisClient xredis.Client,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		referralRepo:    referralRepo,
		streakRepo:      streakRepo,
		redisClient:     redisClient,
		roleVerifier:    common.NewGlobalRoleVerifier(userRepo, roleRepo),
	}
}

// SyncProfile creates the account on the first call and refreshes the login
// streak on every call. It is the only operation accepting an external uid
// instead of an access token; the gateway in front of the api has already
// verified the identity.
func (d *userDomain) SyncProfile(
	ctx context.Context, req *model.SyncProfileRequest,
) (*model.SyncProfileResponse, error) {
	if req.ExternalUID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty external uid")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	awarded := 0.0
	user, err := d.userRepo.GetByExternalUID(ctx, req.ExternalUID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		user, err = d.createUser(ctx, req)
		if err != nil {
			return nil, err
		}

		welcome := xcontext.Configs(ctx).Reward.WelcomeBonus
		if welcome > 0 {
			_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, user.ID,
				walletChange{
					creditsDelta:     welcome,
					totalEarnedDelta: welcome,
					txType:           entity.TxCreditEarn,
					description:      "Welcome bonus",
				})
			if err != nil {
				return nil, err
			}

			awarded += welcome
		}
	}

	if user.IsBanned {
		return nil, errorx.New(errorx.PermissionDenied, "Account is suspended")
	}

	streak, streakBonus, err := d.refreshStreak(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	awarded += streakBonus

	xcontext.WithCommitDBTransaction(ctx)

	bumpLeaderboard(ctx, d.redisClient, user.ID, awarded)

	token, err := xcontext.TokenEngine(ctx).Generate(
		user.ID, model.AccessToken{ID: user.ID, Username: user.Username})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SyncProfileResponse{
		User:           model.ConvertUser(user),
		AccessToken:    token,
		CreditsAwarded: awarded,
		Streak:         model.ConvertStreak(streak),
	}, nil
}

func (d *userDomain) createUser(
	ctx context.Context, req *model.SyncProfileRequest,
) (*entity.User, error) {
	cfg := xcontext.Configs(ctx).Reward

	user := &entity.User{
		Base:        entity.Base{ID: uuid.NewString()},
		ExternalUID: req.ExternalUID,
		Email:       req.Email,
		Username:    req.Username,
	}

	var referrer *entity.User
	if req.ReferralCode != "" {
		var err error
		referrer, err = d.userRepo.GetByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
				return nil, errorx.Unknown
			}

			return nil, errorx.New(errorx.NotFound, "Not found referral code")
		}

		user.ReferredBy = sql.NullString{Valid: true, String: referrer.ID}
	}

	// The referral code space is large enough that collisions are rare, but
	// the unique index still needs a retry loop.
	for i := 0; ; i++ {
		user.ReferralCode = crypto.GenerateReferralCode(cfg.ReferralCodeLength)
		err := d.userRepo.Create(ctx, user)
		if err == nil {
			break
		}

		if repository.IsUniqueViolation(err) && i < 5 {
			continue
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	err := d.walletRepo.Create(ctx, &entity.Wallet{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: user.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create wallet: %v", err)
		return nil, errorx.Unknown
	}

	if referrer != nil {
		err := d.referralRepo.Create(ctx, &entity.Referral{
			Base:          entity.Base{ID: uuid.NewString()},
			ReferrerID:    referrer.ID,
			ReferredID:    user.ID,
			BonusCredited: true,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create referral: %v", err)
			return nil, errorx.Unknown
		}

		if cfg.SignupReferralBonus > 0 {
			_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, referrer.ID,
				walletChange{
					creditsDelta:     cfg.SignupReferralBonus,
					totalEarnedDelta: cfg.SignupReferralBonus,
					txType:           entity.TxReferralBonus,
					description:      "Referral signup bonus",
					referenceID:      user.ID,
				})
			if err != nil {
				return nil, err
			}

			bumpLeaderboard(ctx, d.redisClient, referrer.ID, cfg.SignupReferralBonus)
		}
	}

	return user, nil
}

// refreshStreak advances the login streak of the current UTC day and pays
// the streak bonus each time the streak reaches a multiple of the configured
// day count.
func (d *userDomain) refreshStreak(
	ctx context.Context, userID string,
) (*entity.DailyStreak, float64, error) {
	streak, err := d.streakRepo.GetOrCreate(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
		return nil, 0, errorx.Unknown
	}

	now := time.Now()
	today := dateutil.DayString(now)
	if streak.LastLoginDate == today {
		return streak, 0, nil
	}

	if dateutil.IsDayBefore(streak.LastLoginDate, now) {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}

	streak.LastLoginDate = today
	if err := d.streakRepo.Update(ctx, streak); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update streak: %v", err)
		return nil, 0, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).Reward
	if cfg.StreakBonusDay <= 0 || streak.CurrentStreak%cfg.StreakBonusDay != 0 {
		return streak, 0, nil
	}

	_, err = applyWalletChange(ctx, d.walletRepo, d.transactionRepo, userID,
		walletChange{
			creditsDelta:     cfg.StreakBonusCredits,
			totalEarnedDelta: cfg.StreakBonusCredits,
			txType:           entity.TxCreditEarn,
			description:      "Login streak bonus",
		})
	if err != nil {
		return nil, 0, err
	}

	return streak, cfg.StreakBonusCredits, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	wallet, err := d.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
		return nil, errorx.Unknown
	}

	userRoles, err := d.roleRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get roles: %v", err)
		return nil, errorx.Unknown
	}

	roles := []string{}
	for _, r := range userRoles {
		roles = append(roles, string(r.Role))
	}

	streak, err := d.streakRepo.GetOrCreate(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{
		User:   model.ConvertUser(user),
		Wallet: model.ConvertWallet(wallet),
		Roles:  roles,
		Streak: model.ConvertStreak(streak),
	}, nil
}

func (d *userDomain) AssignGlobalRole(
	ctx context.Context, req *model.AssignGlobalRoleRequest,
) (*model.AssignGlobalRoleResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	role, err := enum.ToEnum[entity.GlobalRole](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleRepo.Grant(ctx, req.UserID, role); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot grant role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AssignGlobalRoleResponse{}, nil
}

func (d *userDomain) RevokeGlobalRole(
	ctx context.Context, req *model.RevokeGlobalRoleRequest,
) (*model.RevokeGlobalRoleResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	role, err := enum.ToEnum[entity.GlobalRole](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
	}

	// An admin revoking their own admin role could leave the platform with
	// no administrator at all.
	if role == entity.RoleAdmin && req.UserID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot revoke your own admin role")
	}

	if err := d.roleRepo.Revoke(ctx, req.UserID, role); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RevokeGlobalRoleResponse{}, nil
}

func (d *userDomain) BanUser(
	ctx context.Context, req *model.BanUserRequest,
) (*model.BanUserResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if req.UserID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot ban yourself")
	}

	if err := d.userRepo.SetBanned(ctx, req.UserID, req.Banned); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update ban flag: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BanUserResponse{}, nil
}
