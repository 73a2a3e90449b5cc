package domain

import (
	"testing"
	"time"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/dateutil"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTaskDomain() *taskDomain {
	return NewTaskDomain(
		repository.NewTaskRepository(),
		repository.NewUserRepository(),
		repository.NewRoleRepository(),
		repository.NewWalletRepository(),
		repository.NewTransactionRepository(),
		nil,
	)
}

func Test_taskDomain_Claim_Daily(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()

	// User2 claims the daily task and receives its full reward.
	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.DailyTask.ID})
	require.NoError(t, err)
	require.Equal(t, float64(20), resp.CreditsEarned)
	require.Equal(t, float64(70), resp.NewBalance)

	// A second claim on the same day is refused.
	_, err = d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.DailyTask.ID})
	require.Error(t, err)
	require.Equal(t, "Task already claimed today, try again tomorrow", err.Error())
}

func Test_taskDomain_Claim_Never(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.OnceTask.ID})
	require.NoError(t, err)
	require.Equal(t, float64(30), resp.CreditsEarned)
	require.Equal(t, float64(80), resp.NewBalance)

	_, err = d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.OnceTask.ID})
	require.Error(t, err)
	require.Equal(t, "Task already claimed", err.Error())
}

func Test_taskDomain_Claim_DailyCap(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()
	taskRepo := repository.NewTaskRepository()
	transactionRepo := repository.NewTransactionRepository()

	bigTask := &entity.Task{
		Base:          entity.Base{ID: "big task"},
		Title:         "Big reward",
		RewardCredits: 50,
		ResetType:     entity.ResetDaily,
		MaxClaims:     5,
		IsActive:      true,
	}
	require.NoError(t, taskRepo.Create(ctx, bigTask))

	// User2 already earned 180 credits today, so only 20 remain under the
	// daily cap of 200.
	err := transactionRepo.Create(ctx, &entity.Transaction{
		Base:   entity.Base{ID: "earned today"},
		UserID: testutil.User2.ID,
		Type:   entity.TxCreditEarn,
		Amount: 180,
	})
	require.NoError(t, err)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: bigTask.ID})
	require.NoError(t, err)
	require.Equal(t, float64(20), resp.CreditsEarned)
	require.Equal(t, float64(70), resp.NewBalance)

	// The cap is now reached, a further claim earns nothing.
	_, err = d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: bigTask.ID})
	require.Error(t, err)
	require.Equal(t, "Daily credit limit of 200 reached, try again tomorrow", err.Error())
}

func Test_taskDomain_Claim_RateLimit(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()
	transactionRepo := repository.NewTransactionRepository()

	for i := 0; i < 9; i++ {
		err := transactionRepo.Create(ctx, &entity.Transaction{
			Base:   entity.Base{ID: string(rune('a' + i))},
			UserID: testutil.User1.ID,
			Type:   entity.TxSpinWin,
			Amount: 1,
		})
		require.NoError(t, err)
	}

	// The tenth claim of the hour still passes.
	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.DailyTask.ID})
	require.NoError(t, err)

	// The eleventh is refused.
	_, err = d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.OnceTask.ID})
	require.Error(t, err)
	require.Equal(t, "Too many claims, slow down", err.Error())
}

func Test_taskDomain_Claim_PeriodRowGuard(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()
	taskRepo := repository.NewTaskRepository()
	walletRepo := repository.NewWalletRepository()

	// A claim row already exists for today's period, as left behind by a
	// concurrent claim whose aggregate state is not visible yet. The claim
	// must be refused by the row itself, not by the snapshot checks.
	err := taskRepo.CreateUserTaskClaim(ctx, &entity.UserTaskClaim{
		UserID:    testutil.User2.ID,
		TaskID:    testutil.DailyTask.ID,
		PeriodKey: dateutil.DayString(time.Now()) + "#1",
	})
	require.NoError(t, err)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.DailyTask.ID})
	require.Error(t, err)
	require.Equal(t, "Task already claimed today, try again tomorrow", err.Error())

	err = taskRepo.CreateUserTaskClaim(ctx, &entity.UserTaskClaim{
		UserID:    testutil.User2.ID,
		TaskID:    testutil.OnceTask.ID,
		PeriodKey: "once",
	})
	require.NoError(t, err)

	_, err = d.Claim(userCtx, &model.ClaimTaskRequest{TaskID: testutil.OnceTask.ID})
	require.Error(t, err)
	require.Equal(t, "Task already claimed", err.Error())

	// Neither refused claim paid anything.
	wallet, err := walletRepo.GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, float64(50), wallet.Credits)
}

func Test_taskDomain_ClaimStep(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.ClaimStep(userCtx, &model.ClaimTaskStepRequest{
		TaskStepID: testutil.OnceTaskStep.ID,
	})
	require.NoError(t, err)
	require.Equal(t, float64(5), resp.CreditsEarned)
	require.Equal(t, float64(55), resp.NewBalance)

	_, err = d.ClaimStep(userCtx, &model.ClaimTaskStepRequest{
		TaskStepID: testutil.OnceTaskStep.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Step already claimed", err.Error())
}

func Test_taskDomain_Claim_Unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()

	_, err := d.Claim(ctx, &model.ClaimTaskRequest{TaskID: testutil.DailyTask.ID})
	require.Error(t, err)
	require.Equal(t, "Not authenticated", err.Error())
}

func Test_taskDomain_Create_PermissionDenied(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := d.Create(userCtx, &model.CreateTaskRequest{
		Title:         "New task",
		RewardCredits: 10,
		ResetType:     "daily",
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_taskDomain_Create_And_GetTasks(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestTaskDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	created, err := d.Create(adminCtx, &model.CreateTaskRequest{
		Title:         "Watch a replay",
		RewardCredits: 15,
		ResetType:     "weekly",
		Steps: []model.TaskStep{
			{Position: 1, Title: "Open the replay", RewardCredits: 3},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.GetTasks(userCtx, &model.GetTasksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tasks, 3)

	for _, task := range resp.Tasks {
		if task.ID == created.ID {
			require.Equal(t, "weekly", task.ResetType)
			require.Len(t, task.Steps, 1)
		}
	}
}
