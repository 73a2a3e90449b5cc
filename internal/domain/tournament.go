package domain

import (
	"context"
	"errors"
	"time"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/enum"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TournamentDomain interface {
	Create(context.Context, *model.CreateTournamentRequest) (*model.CreateTournamentResponse, error)
	GetList(context.Context, *model.GetTournamentsRequest) (*model.GetTournamentsResponse, error)
	Join(context.Context, *model.JoinTournamentRequest) (*model.JoinTournamentResponse, error)
	GetRoomInfo(context.Context, *model.GetRoomInfoRequest) (*model.GetRoomInfoResponse, error)
	GetEntries(context.Context, *model.GetTournamentEntriesRequest) (*model.GetTournamentEntriesResponse, error)
	RecordResult(context.Context, *model.RecordResultRequest) (*model.RecordResultResponse, error)
	UpdateStatus(context.Context, *model.UpdateTournamentStatusRequest) (*model.UpdateTournamentStatusResponse, error)
}

type tournamentDomain struct {
	tournamentRepo  repository.TournamentRepository
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	roleVerifier    *common.GlobalRoleVerifier
}

func NewTournamentDomain(
	tournamentRepo repository.TournamentRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
) *tournamentDomain {
	return &tournamentDomain{
		tournamentRepo:  tournamentRepo,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		roleVerifier:    common.NewGlobalRoleVerifier(userRepo, roleRepo),
	}
}

func (d *tournamentDomain) Create(
	ctx context.Context, req *model.CreateTournamentRequest,
) (*model.CreateTournamentResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin, entity.RoleModerator); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.EntryFee < 0 || req.PrizePool < 0 || req.MaxParticipants < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative amounts")
	}

	feeType, err := enum.ToEnum[entity.EntryFeeType](req.EntryFeeType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid entry fee type %s", req.EntryFeeType)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid start time %s", req.StartTime)
	}

	tournament := &entity.Tournament{
		Base:            entity.Base{ID: uuid.NewString()},
		Title:           req.Title,
		GameType:        req.GameType,
		EntryFee:        req.EntryFee,
		EntryFeeType:    feeType,
		PrizePool:       req.PrizePool,
		MaxParticipants: req.MaxParticipants,
		Status:          entity.TournamentUpcoming,
		StartTime:       startTime,
		RoomID:          req.RoomID,
		RoomPassword:    req.RoomPassword,
	}

	if err := d.tournamentRepo.Create(ctx, tournament); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create tournament: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTournamentResponse{ID: tournament.ID}, nil
}

func (d *tournamentDomain) GetList(
	ctx context.Context, req *model.GetTournamentsRequest,
) (*model.GetTournamentsResponse, error) {
	statuses := []entity.TournamentStatus{entity.TournamentUpcoming, entity.TournamentLive}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.TournamentStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		statuses = []entity.TournamentStatus{status}
	}

	tournaments, err := d.tournamentRepo.GetListByStatuses(ctx, statuses)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tournaments: %v", err)
		return nil, errorx.Unknown
	}

	joined := map[string]bool{}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		entries, err := d.tournamentRepo.GetEntriesByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
			return nil, errorx.Unknown
		}

		for _, e := range entries {
			joined[e.TournamentID] = true
		}
	}

	result := []model.Tournament{}
	for i := range tournaments {
		result = append(result, model.ConvertTournament(&tournaments[i], joined[tournaments[i].ID]))
	}

	return &model.GetTournamentsResponse{Tournaments: result}, nil
}

// Join registers the caller and charges the entry fee in one transactional
// scope. The unique entry index, the guarded participant counter, and the
// wallet guard each refuse independently, so any failure rolls back the
// whole join.
func (d *tournamentDomain) Join(
	ctx context.Context, req *model.JoinTournamentRequest,
) (*model.JoinTournamentResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	tournament, err := d.tournamentRepo.GetByID(ctx, req.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, errorx.Unknown
	}

	if tournament.Status != entity.TournamentUpcoming && tournament.Status != entity.TournamentLive {
		return nil, errorx.New(errorx.BadRequest, "Tournament is not open for registration")
	}

	feeType := tournament.EntryFeeType
	if feeType == entity.FeeBoth {
		switch req.PayWith {
		case string(entity.FeeCredits):
			feeType = entity.FeeCredits
		case string(entity.FeeCash):
			feeType = entity.FeeCash
		default:
			return nil, errorx.New(errorx.BadRequest, "Must choose credits or cash to pay with")
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	entry := &entity.TournamentEntry{
		Base:         entity.Base{ID: uuid.NewString()},
		TournamentID: tournament.ID,
		UserID:       user.ID,
		FeePaid:      tournament.EntryFee,
		FeeType:      feeType,
	}

	if err := d.tournamentRepo.CreateEntry(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Already joined this tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot create entry: %v", err)
		return nil, errorx.Unknown
	}

	ok, err := d.tournamentRepo.IncreaseParticipants(ctx, tournament.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase participants: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Tournament is full")
	}

	var wallet *entity.Wallet
	if tournament.EntryFee > 0 {
		change := walletChange{
			txType:      entity.TxMatchEntryCredit,
			description: "Entry fee of " + tournament.Title,
			referenceID: tournament.ID,
		}
		if feeType == entity.FeeCredits {
			change.creditsDelta = -tournament.EntryFee
		} else {
			change.txType = entity.TxMatchEntryCash
			change.cashDelta = -tournament.EntryFee
		}

		wallet, err = applyWalletChange(ctx, d.walletRepo, d.transactionRepo, user.ID, change)
		if err != nil {
			return nil, err
		}
	} else {
		wallet, err = d.walletRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.JoinTournamentResponse{
		EntryID:    entry.ID,
		FeePaid:    tournament.EntryFee,
		FeeType:    string(feeType),
		NewCredits: wallet.Credits,
		NewCash:    wallet.Cash,
	}, nil
}

// GetRoomInfo discloses the room credentials to entrants of a live
// tournament only.
func (d *tournamentDomain) GetRoomInfo(
	ctx context.Context, req *model.GetRoomInfoRequest,
) (*model.GetRoomInfoResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	tournament, err := d.tournamentRepo.GetByID(ctx, req.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, errorx.Unknown
	}

	if tournament.Status != entity.TournamentLive {
		return nil, errorx.New(errorx.BadRequest, "Room info is only available while live")
	}

	if _, err := d.tournamentRepo.GetEntry(ctx, tournament.ID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "Only entrants can view the room")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRoomInfoResponse{
		RoomID:       tournament.RoomID,
		RoomPassword: tournament.RoomPassword,
	}, nil
}

func (d *tournamentDomain) GetEntries(
	ctx context.Context, req *model.GetTournamentEntriesRequest,
) (*model.GetTournamentEntriesResponse, error) {
	entries, err := d.tournamentRepo.GetEntriesByTournamentID(ctx, req.TournamentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.TournamentEntry{}
	for i := range entries {
		username := ""
		if u, err := d.userRepo.GetByID(ctx, entries[i].UserID); err == nil {
			username = u.Username
		}

		result = append(result, model.ConvertTournamentEntry(&entries[i], username))
	}

	return &model.GetTournamentEntriesResponse{Entries: result}, nil
}

// RecordResult stores the placement and pays the cash prize. A result can be
// recorded once per entry.
func (d *tournamentDomain) RecordResult(
	ctx context.Context, req *model.RecordResultRequest,
) (*model.RecordResultResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin, entity.RoleModerator); err != nil {
		return nil, err
	}

	if req.Placement <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid placement %d", req.Placement)
	}

	if req.PrizeWon < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative prize")
	}

	entry, err := d.tournamentRepo.GetEntryByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	if entry.Placement.Valid {
		return nil, errorx.New(errorx.AlreadyExists, "Result already recorded")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	recorded, err := d.tournamentRepo.UpdateEntryResult(ctx, entry.ID, req.Placement, req.PrizeWon)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update entry result: %v", err)
		return nil, errorx.Unknown
	}

	if !recorded {
		return nil, errorx.New(errorx.AlreadyExists, "Result already recorded")
	}

	if req.PrizeWon > 0 {
		_, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, entry.UserID,
			walletChange{
				cashDelta:   req.PrizeWon,
				txType:      entity.TxPrizeWon,
				description: "Tournament prize",
				referenceID: entry.ID,
			})
		if err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.RecordResultResponse{}, nil
}

func (d *tournamentDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateTournamentStatusRequest,
) (*model.UpdateTournamentStatusResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin, entity.RoleModerator); err != nil {
		return nil, err
	}

	status, err := enum.ToEnum[entity.TournamentStatus](req.Status)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	if _, err := d.tournamentRepo.GetByID(ctx, req.TournamentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.tournamentRepo.UpdateStatus(ctx, req.TournamentID, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTournamentStatusResponse{}, nil
}
