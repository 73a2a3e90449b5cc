package model

import (
	"time"

	"github.com/battlezone-labs/backend/internal/entity"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339Nano)
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		ReferralCode: user.ReferralCode,
		ReferredBy:   user.ReferredBy.String,
		IsBanned:     user.IsBanned,
		CreatedAt:    formatTime(user.CreatedAt),
	}
}

func ConvertWallet(wallet *entity.Wallet) Wallet {
	if wallet == nil {
		return Wallet{}
	}

	return Wallet{
		Credits:     wallet.Credits,
		Cash:        wallet.Cash,
		TotalEarned: wallet.TotalEarned,
	}
}

func ConvertStreak(streak *entity.DailyStreak) Streak {
	if streak == nil {
		return Streak{}
	}

	return Streak{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		LastLoginDate: streak.LastLoginDate,
	}
}

func ConvertTask(task *entity.Task, userTask *entity.UserTask, steps []TaskStep) Task {
	if task == nil {
		return Task{}
	}

	result := Task{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		TaskURL:       task.TaskURL,
		RewardCredits: task.RewardCredits,
		ResetType:     string(task.ResetType),
		MaxClaims:     task.MaxClaims,
		CooldownHours: task.CooldownHours,
		IsActive:      task.IsActive,
		Steps:         steps,
	}

	if userTask != nil {
		result.IsClaimed = userTask.IsClaimed
		result.ClaimsToday = userTask.ClaimsToday
		if userTask.LastClaimedAt.Valid {
			result.LastClaimedAt = formatTime(userTask.LastClaimedAt.Time)
		}
	}

	return result
}

func ConvertTournament(tournament *entity.Tournament, isJoined bool) Tournament {
	if tournament == nil {
		return Tournament{}
	}

	return Tournament{
		ID:                  tournament.ID,
		Title:               tournament.Title,
		GameType:            tournament.GameType,
		EntryFee:            tournament.EntryFee,
		EntryFeeType:        string(tournament.EntryFeeType),
		PrizePool:           tournament.PrizePool,
		MaxParticipants:     tournament.MaxParticipants,
		CurrentParticipants: tournament.CurrentParticipants,
		Status:              string(tournament.Status),
		StartTime:           formatTime(tournament.StartTime),
		IsJoined:            isJoined,
	}
}

func ConvertTournamentEntry(entry *entity.TournamentEntry, username string) TournamentEntry {
	if entry == nil {
		return TournamentEntry{}
	}

	return TournamentEntry{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Username:  username,
		FeePaid:   entry.FeePaid,
		FeeType:   string(entry.FeeType),
		Placement: int(entry.Placement.Int64),
		PrizeWon:  entry.PrizeWon,
	}
}

func ConvertTransaction(tx *entity.Transaction) Transaction {
	if tx == nil {
		return Transaction{}
	}

	return Transaction{
		ID:            tx.ID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Description:   tx.Description,
		ReferenceID:   tx.ReferenceID.String,
		CreatedAt:     formatTime(tx.CreatedAt),
	}
}

func ConvertDeposit(deposit *entity.Deposit) Deposit {
	if deposit == nil {
		return Deposit{}
	}

	return Deposit{
		ID:             deposit.ID,
		Amount:         deposit.Amount,
		PaymentMethod:  deposit.PaymentMethod,
		TransactionRef: deposit.TransactionRef,
		Status:         string(deposit.Status),
		AdminNote:      deposit.AdminNote,
		CreatedAt:      formatTime(deposit.CreatedAt),
	}
}

func ConvertWithdrawal(withdrawal *entity.Withdrawal) Withdrawal {
	if withdrawal == nil {
		return Withdrawal{}
	}

	return Withdrawal{
		ID:            withdrawal.ID,
		Amount:        withdrawal.Amount,
		PaymentMethod: withdrawal.PaymentMethod,
		AccountNumber: withdrawal.AccountNumber,
		Status:        string(withdrawal.Status),
		AdminNote:     withdrawal.AdminNote,
		CreatedAt:     formatTime(withdrawal.CreatedAt),
	}
}

func ConvertPaymentSetting(setting *entity.PaymentSetting) PaymentSetting {
	if setting == nil {
		return PaymentSetting{}
	}

	return PaymentSetting{
		PaymentMethod: setting.PaymentMethod,
		AccountNumber: setting.AccountNumber,
		AccountName:   setting.AccountName,
		MinDeposit:    setting.MinDeposit,
		MinWithdrawal: setting.MinWithdrawal,
	}
}

func ConvertReferral(referral *entity.Referral, referredUsername string) Referral {
	if referral == nil {
		return Referral{}
	}

	return Referral{
		ReferredUsername:     referredUsername,
		BonusCredited:        referral.BonusCredited,
		DepositBonusCredited: referral.DepositBonusCredited,
		TotalCommission:      referral.TotalCommission,
		CreatedAt:            formatTime(referral.CreatedAt),
	}
}

func ConvertSpin(spin *entity.SpinHistory) Spin {
	if spin == nil {
		return Spin{}
	}

	return Spin{
		SpinDate:   spin.SpinDate,
		CreditsWon: spin.CreditsWon,
		CreatedAt:  formatTime(spin.CreatedAt),
	}
}
