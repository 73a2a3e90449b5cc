package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/dateutil"
)

// Fixture accounts. Admin holds the admin role, User2 was referred by User1.
var (
	Admin = entity.User{
		Base:         entity.Base{ID: "admin"},
		ExternalUID:  "ext-admin",
		Email:        "admin@example.com",
		Username:     "admin",
		ReferralCode: "ADMIN234",
	}

	User1 = entity.User{
		Base:         entity.Base{ID: "user1"},
		ExternalUID:  "ext-user1",
		Email:        "one@example.com",
		Username:     "player_one",
		ReferralCode: "AAAA2345",
	}

	User2 = entity.User{
		Base:         entity.Base{ID: "user2"},
		ExternalUID:  "ext-user2",
		Email:        "two@example.com",
		Username:     "player_two",
		ReferralCode: "BBBB2345",
		ReferredBy:   sql.NullString{Valid: true, String: "user1"},
	}

	Wallet1 = entity.Wallet{
		Base:        entity.Base{ID: "wallet1"},
		UserID:      "user1",
		Credits:     100,
		Cash:        500,
		TotalEarned: 100,
	}

	Wallet2 = entity.Wallet{
		Base:        entity.Base{ID: "wallet2"},
		UserID:      "user2",
		Credits:     50,
		Cash:        0,
		TotalEarned: 50,
	}

	AdminWallet = entity.Wallet{
		Base:   entity.Base{ID: "wallet-admin"},
		UserID: "admin",
	}

	Referral1 = entity.Referral{
		Base:          entity.Base{ID: "referral1"},
		ReferrerID:    "user1",
		ReferredID:    "user2",
		BonusCredited: true,
	}

	DailyTask = entity.Task{
		Base:          entity.Base{ID: "task-daily"},
		Title:         "Daily check-in",
		Description:   "Open the app once a day",
		RewardCredits: 20,
		ResetType:     entity.ResetDaily,
		MaxClaims:     1,
		IsActive:      true,
	}

	OnceTask = entity.Task{
		Base:          entity.Base{ID: "task-once"},
		Title:         "Follow us",
		TaskURL:       "https://example.com/follow",
		RewardCredits: 30,
		ResetType:     entity.ResetNever,
		IsActive:      true,
	}

	OnceTaskStep = entity.TaskStep{
		Base:          entity.Base{ID: "step1"},
		TaskID:        "task-once",
		Position:      1,
		Title:         "Visit the page",
		RewardCredits: 5,
	}

	SmallTournament = entity.Tournament{
		Base:            entity.Base{ID: "tournament1"},
		Title:           "Evening Cup",
		GameType:        "battle-royale",
		EntryFee:        50,
		EntryFeeType:    entity.FeeCredits,
		PrizePool:       200,
		MaxParticipants: 2,
		Status:          entity.TournamentUpcoming,
		RoomID:          "room-42",
		RoomPassword:    "hunter2",
	}

	BkashSetting = entity.PaymentSetting{
		Base:          entity.Base{ID: "setting-bkash"},
		PaymentMethod: "bkash",
		AccountNumber: "01700000000",
		AccountName:   "BattleZone",
		MinDeposit:    100,
		MinWithdrawal: 200,
		IsActive:      true,
	}
)

func insertFixture(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	walletRepo := repository.NewWalletRepository()
	taskRepo := repository.NewTaskRepository()
	tournamentRepo := repository.NewTournamentRepository()
	referralRepo := repository.NewReferralRepository()
	paymentSettingRepo := repository.NewPaymentSettingRepository()

	for _, user := range []entity.User{Admin, User1, User2} {
		u := user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}

	if err := roleRepo.Grant(ctx, Admin.ID, entity.RoleAdmin); err != nil {
		panic(err)
	}

	for _, wallet := range []entity.Wallet{AdminWallet, Wallet1, Wallet2} {
		w := wallet
		if err := walletRepo.Create(ctx, &w); err != nil {
			panic(err)
		}
	}

	r := Referral1
	if err := referralRepo.Create(ctx, &r); err != nil {
		panic(err)
	}

	for _, task := range []entity.Task{DailyTask, OnceTask} {
		t := task
		if err := taskRepo.Create(ctx, &t); err != nil {
			panic(err)
		}
	}

	s := OnceTaskStep
	if err := taskRepo.CreateStep(ctx, &s); err != nil {
		panic(err)
	}

	tournament := SmallTournament
	tournament.StartTime = dateutil.NextDay(time.Now())
	if err := tournamentRepo.Create(ctx, &tournament); err != nil {
		panic(err)
	}

	setting := BkashSetting
	if err := paymentSettingRepo.Upsert(ctx, &setting); err != nil {
		panic(err)
	}
}
