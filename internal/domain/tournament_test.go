package domain

import (
	"testing"
	"time"

	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTournamentDomain() *tournamentDomain {
	return NewTournamentDomain(
		repository.NewTournamentRepository(),
		repository.NewUserRepository(),
		repository.NewRoleRepository(),
		repository.NewWalletRepository(),
		repository.NewTransactionRepository(),
	)
}

func Test_tournamentDomain_Join(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTournamentDomain()

	// User2 pays the 50 credit fee from a balance of 50.
	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.Join(user2Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.NoError(t, err)
	require.Equal(t, float64(50), resp.FeePaid)
	require.Equal(t, "credits", resp.FeeType)
	require.Equal(t, float64(0), resp.NewCredits)

	// Joining twice is refused.
	_, err = d.Join(user2Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Already joined this tournament", err.Error())

	// User1 takes the last slot.
	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = d.Join(user1Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.NoError(t, err)

	// The tournament is now at capacity.
	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.Join(adminCtx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Tournament is full", err.Error())
}

func Test_tournamentDomain_Join_InsufficientCredits(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTournamentDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	created, err := d.Create(adminCtx, &model.CreateTournamentRequest{
		Title:        "High stakes",
		GameType:     "battle-royale",
		EntryFee:     1000,
		EntryFeeType: "credits",
		PrizePool:    5000,
		StartTime:    time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = d.Join(user1Ctx, &model.JoinTournamentRequest{TournamentID: created.ID})
	require.Error(t, err)
	require.Equal(t, "Insufficient credits", err.Error())
}

func Test_tournamentDomain_Join_PayWith(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTournamentDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	created, err := d.Create(adminCtx, &model.CreateTournamentRequest{
		Title:        "Mixed fee",
		GameType:     "battle-royale",
		EntryFee:     100,
		EntryFeeType: "both",
		StartTime:    time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = d.Join(user1Ctx, &model.JoinTournamentRequest{TournamentID: created.ID})
	require.Error(t, err)
	require.Equal(t, "Must choose credits or cash to pay with", err.Error())

	resp, err := d.Join(user1Ctx, &model.JoinTournamentRequest{
		TournamentID: created.ID,
		PayWith:      "cash",
	})
	require.NoError(t, err)
	require.Equal(t, "cash", resp.FeeType)
	require.Equal(t, float64(400), resp.NewCash)
	require.Equal(t, float64(100), resp.NewCredits)
}

func Test_tournamentDomain_RecordResult(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTournamentDomain()
	walletRepo := repository.NewWalletRepository()

	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	joined, err := d.Join(user2Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.NoError(t, err)

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.RecordResult(adminCtx, &model.RecordResultRequest{
		EntryID:   joined.EntryID,
		Placement: 1,
		PrizeWon:  150,
	})
	require.NoError(t, err)

	wallet, err := walletRepo.GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, float64(150), wallet.Cash)

	// A result is recorded at most once per entry.
	_, err = d.RecordResult(adminCtx, &model.RecordResultRequest{
		EntryID:   joined.EntryID,
		Placement: 2,
		PrizeWon:  50,
	})
	require.Error(t, err)
	require.Equal(t, "Result already recorded", err.Error())
}

func Test_tournamentDomain_GetRoomInfo(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTournamentDomain()

	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := d.Join(user2Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.NoError(t, err)

	// Room credentials stay hidden until the tournament goes live.
	_, err = d.GetRoomInfo(user2Ctx, &model.GetRoomInfoRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Room info is only available while live", err.Error())

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.UpdateStatus(adminCtx, &model.UpdateTournamentStatusRequest{
		TournamentID: testutil.SmallTournament.ID,
		Status:       "live",
	})
	require.NoError(t, err)

	resp, err := d.GetRoomInfo(user2Ctx, &model.GetRoomInfoRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "room-42", resp.RoomID)
	require.Equal(t, "hunter2", resp.RoomPassword)

	// Non-entrants never see the credentials.
	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = d.GetRoomInfo(user1Ctx, &model.GetRoomInfoRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Only entrants can view the room", err.Error())
}

func Test_tournamentDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTournamentDomain()

	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := d.Join(user2Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.SmallTournament.ID,
	})
	require.NoError(t, err)

	resp, err := d.GetList(user2Ctx, &model.GetTournamentsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tournaments, 1)
	require.True(t, resp.Tournaments[0].IsJoined)
	require.Equal(t, 1, resp.Tournaments[0].CurrentParticipants)

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err = d.GetList(user1Ctx, &model.GetTournamentsRequest{})
	require.NoError(t, err)
	require.False(t, resp.Tournaments[0].IsJoined)
}
