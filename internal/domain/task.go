package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/dateutil"
	"github.com/battlezone-labs/backend/pkg/enum"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskDomain interface {
	GetTasks(context.Context, *model.GetTasksRequest) (*model.GetTasksResponse, error)
	Claim(context.Context, *model.ClaimTaskRequest) (*model.ClaimTaskResponse, error)
	ClaimStep(context.Context, *model.ClaimTaskStepRequest) (*model.ClaimTaskStepResponse, error)
	Create(context.Context, *model.CreateTaskRequest) (*model.CreateTaskResponse, error)
	Update(context.Context, *model.UpdateTaskRequest) (*model.UpdateTaskResponse, error)
}

type taskDomain struct {
	taskRepo        repository.TaskRepository
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	redisClient     xredis.Client
	guard           *common.EarningGuard
	roleVerifier    *common.GlobalRoleVerifier
}

func NewTaskDomain(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	redisClient xredis.Client,
) *taskDomain {
	return &taskDomain{
		taskRepo:        taskRepo,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		redisClient:     redisClient,
		guard:           common.NewEarningGuard(transactionRepo),
		roleVerifier:    common.NewGlobalRoleVerifier(userRepo, roleRepo),
	}
}

func (d *taskDomain) GetTasks(
	ctx context.Context, req *model.GetTasksRequest,
) (*model.GetTasksResponse, error) {
	tasks, err := d.taskRepo.GetActiveList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tasks: %v", err)
		return nil, errorx.Unknown
	}

	userTasks := map[string]*entity.UserTask{}
	claimedSteps := map[string]bool{}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		records, err := d.taskRepo.GetUserTasks(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user tasks: %v", err)
			return nil, errorx.Unknown
		}

		for i := range records {
			userTasks[records[i].TaskID] = &records[i]
		}

		stepRecords, err := d.taskRepo.GetUserTaskSteps(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user task steps: %v", err)
			return nil, errorx.Unknown
		}

		for _, s := range stepRecords {
			claimedSteps[s.TaskStepID] = true
		}
	}

	result := []model.Task{}
	for i := range tasks {
		steps, err := d.taskRepo.GetStepsByTaskID(ctx, tasks[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get task steps: %v", err)
			return nil, errorx.Unknown
		}

		modelSteps := []model.TaskStep{}
		for j := range steps {
			modelSteps = append(modelSteps, model.TaskStep{
				ID:            steps[j].ID,
				Position:      steps[j].Position,
				Title:         steps[j].Title,
				RewardCredits: steps[j].RewardCredits,
				IsClaimed:     claimedSteps[steps[j].ID],
			})
		}

		result = append(result, model.ConvertTask(&tasks[i], userTasks[tasks[i].ID], modelSteps))
	}

	return &model.GetTasksResponse{Tasks: result}, nil
}

func (d *taskDomain) Claim(
	ctx context.Context, req *model.ClaimTaskRequest,
) (*model.ClaimTaskResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	task, err := d.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	if !task.IsActive {
		return nil, errorx.New(errorx.NotFound, "Not found task")
	}

	if err := d.guard.CheckClaimRate(ctx, user.ID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	userTask, err := d.taskRepo.GetOrCreateUserTask(ctx, user.ID, task.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user task: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	claimsToday := userTask.ClaimsToday
	var periodKey string
	var alreadyClaimed error
	switch task.ResetType {
	case entity.ResetNever:
		alreadyClaimed = errorx.New(errorx.AlreadyExists, "Task already claimed")
		if userTask.IsClaimed {
			return nil, alreadyClaimed
		}
		claimsToday++
		periodKey = "once"

	case entity.ResetDaily:
		if !userTask.LastClaimedAt.Valid || !dateutil.SameDay(userTask.LastClaimedAt.Time, now) {
			claimsToday = 0
		}

		maxClaims := task.MaxClaims
		if maxClaims <= 0 {
			maxClaims = 1
		}

		alreadyClaimed = errorx.New(errorx.AlreadyExists,
			"Task already claimed today, try again tomorrow")
		if claimsToday >= maxClaims {
			return nil, alreadyClaimed
		}
		claimsToday++
		periodKey = fmt.Sprintf("%s#%d", dateutil.DayString(now), claimsToday)

	case entity.ResetWeekly:
		alreadyClaimed = errorx.New(errorx.AlreadyExists,
			"Task already claimed this week, try again next week")
		if userTask.LastClaimedAt.Valid && dateutil.SameWeek(userTask.LastClaimedAt.Time, now) {
			return nil, alreadyClaimed
		}
		claimsToday++
		year, week := now.UTC().ISOWeek()
		periodKey = fmt.Sprintf("%d-W%02d", year, week)

	default:
		xcontext.Logger(ctx).Errorf("Invalid reset type %s of task %s", task.ResetType, task.ID)
		return nil, errorx.Unknown
	}

	if task.CooldownHours > 0 && userTask.LastClaimedAt.Valid {
		readyAt := userTask.LastClaimedAt.Time.Add(time.Duration(task.CooldownHours) * time.Hour)
		if now.Before(readyAt) {
			return nil, errorx.New(errorx.TooManyRequests,
				"Task is on cooldown, try again in %s", time.Until(readyAt).Round(time.Minute))
		}
	}

	// The claim row turns a repeated claim of the same period into a
	// uniqueness violation, even when two claims raced past the snapshot
	// checks above.
	err = d.taskRepo.CreateUserTaskClaim(ctx, &entity.UserTaskClaim{
		UserID:    user.ID,
		TaskID:    task.ID,
		PeriodKey: periodKey,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, alreadyClaimed
		}

		xcontext.Logger(ctx).Errorf("Cannot create user task claim: %v", err)
		return nil, errorx.Unknown
	}

	granted, err := d.guard.AllowEarning(ctx, user.ID, task.RewardCredits)
	if err != nil {
		return nil, err
	}

	wallet, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, user.ID,
		walletChange{
			creditsDelta:     granted,
			totalEarnedDelta: granted,
			txType:           entity.TxCreditEarn,
			description:      task.Title,
			referenceID:      task.ID,
		})
	if err != nil {
		return nil, err
	}

	err = d.taskRepo.UpdateUserTask(ctx, user.ID, task.ID, map[string]any{
		"is_completed":    true,
		"is_claimed":      true,
		"last_claimed_at": now,
		"claims_today":    claimsToday,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user task: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	bumpLeaderboard(ctx, d.redisClient, user.ID, granted)

	return &model.ClaimTaskResponse{CreditsEarned: granted, NewBalance: wallet.Credits}, nil
}

func (d *taskDomain) ClaimStep(
	ctx context.Context, req *model.ClaimTaskStepRequest,
) (*model.ClaimTaskStepResponse, error) {
	user, err := requireActiveUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	step, err := d.taskRepo.GetStepByID(ctx, req.TaskStepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task step")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task step: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.guard.CheckClaimRate(ctx, user.ID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	granted, err := d.guard.AllowEarning(ctx, user.ID, step.RewardCredits)
	if err != nil {
		return nil, err
	}

	// The composite primary key turns a repeated claim into a uniqueness
	// violation, even for two concurrent claims.
	err = d.taskRepo.CreateUserTaskStep(ctx, &entity.UserTaskStep{
		UserID:        user.ID,
		TaskStepID:    step.ID,
		CreditsEarned: granted,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Step already claimed")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user task step: %v", err)
		return nil, errorx.Unknown
	}

	wallet, err := applyWalletChange(ctx, d.walletRepo, d.transactionRepo, user.ID,
		walletChange{
			creditsDelta:     granted,
			totalEarnedDelta: granted,
			txType:           entity.TxCreditEarn,
			description:      step.Title,
			referenceID:      step.ID,
		})
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	bumpLeaderboard(ctx, d.redisClient, user.ID, granted)

	return &model.ClaimTaskStepResponse{CreditsEarned: granted, NewBalance: wallet.Credits}, nil
}

func (d *taskDomain) Create(
	ctx context.Context, req *model.CreateTaskRequest,
) (*model.CreateTaskResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin, entity.RoleModerator); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.RewardCredits < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative reward")
	}

	resetType, err := enum.ToEnum[entity.ResetType](req.ResetType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid reset type %s", req.ResetType)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	task := &entity.Task{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         req.Title,
		Description:   req.Description,
		TaskURL:       req.TaskURL,
		RewardCredits: req.RewardCredits,
		ResetType:     resetType,
		MaxClaims:     req.MaxClaims,
		CooldownHours: req.CooldownHours,
		IsActive:      true,
	}

	if err := d.taskRepo.Create(ctx, task); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create task: %v", err)
		return nil, errorx.Unknown
	}

	for _, s := range req.Steps {
		if s.RewardCredits < 0 {
			return nil, errorx.New(errorx.BadRequest, "Not allow negative step reward")
		}

		err := d.taskRepo.CreateStep(ctx, &entity.TaskStep{
			Base:          entity.Base{ID: uuid.NewString()},
			TaskID:        task.ID,
			Position:      s.Position,
			Title:         s.Title,
			RewardCredits: s.RewardCredits,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create task step: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateTaskResponse{ID: task.ID}, nil
}

func (d *taskDomain) Update(
	ctx context.Context, req *model.UpdateTaskRequest,
) (*model.UpdateTaskResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleAdmin, entity.RoleModerator); err != nil {
		return nil, err
	}

	if _, err := d.taskRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	resetType, err := enum.ToEnum[entity.ResetType](req.ResetType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid reset type %s", req.ResetType)
	}

	if req.RewardCredits < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative reward")
	}

	err = d.taskRepo.Update(ctx, req.ID, map[string]any{
		"title":          req.Title,
		"description":    req.Description,
		"task_url":       req.TaskURL,
		"reward_credits": req.RewardCredits,
		"reset_type":     resetType,
		"max_claims":     req.MaxClaims,
		"cooldown_hours": req.CooldownHours,
		"is_active":      req.IsActive,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTaskResponse{}, nil
}
