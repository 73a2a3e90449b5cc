package main

import (
	"context"
	"net/http"

	"github.com/battlezone-labs/backend/config"
	"github.com/battlezone-labs/backend/internal/domain"
	"github.com/battlezone-labs/backend/internal/domain/spinwheel"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/migration"
	"github.com/battlezone-labs/backend/pkg/authenticator"
	"github.com/battlezone-labs/backend/pkg/logger"
	"github.com/battlezone-labs/backend/pkg/router"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context

	userRepo           repository.UserRepository
	roleRepo           repository.RoleRepository
	walletRepo         repository.WalletRepository
	transactionRepo    repository.TransactionRepository
	taskRepo           repository.TaskRepository
	tournamentRepo     repository.TournamentRepository
	depositRepo        repository.DepositRepository
	withdrawalRepo     repository.WithdrawalRepository
	paymentSettingRepo repository.PaymentSettingRepository
	referralRepo       repository.ReferralRepository
	spinRepo           repository.SpinRepository
	streakRepo         repository.StreakRepository

	userDomain       domain.UserDomain
	taskDomain       domain.TaskDomain
	spinDomain       domain.SpinDomain
	tournamentDomain domain.TournamentDomain
	paymentDomain    domain.PaymentDomain
	referralDomain   domain.ReferralDomain
	statisticDomain  domain.StatisticDomain

	redisClient xredis.Client
	router      *router.Router
	server      *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger())
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))

	return nil
}

func (s *srv) loadDatabase() error {
	db, err := gorm.Open(
		mysql.Open(xcontext.Configs(s.ctx).Database.ConnectionString()),
		&gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	return migration.Migrate(s.ctx)
}

// loadRedisClient leaves the client nil when redis is unreachable; the
// leaderboard then serves from the database.
func (s *srv) loadRedisClient() {
	client, err := xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis.Addr)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.roleRepo = repository.NewRoleRepository()
	s.walletRepo = repository.NewWalletRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.tournamentRepo = repository.NewTournamentRepository()
	s.depositRepo = repository.NewDepositRepository()
	s.withdrawalRepo = repository.NewWithdrawalRepository()
	s.paymentSettingRepo = repository.NewPaymentSettingRepository()
	s.referralRepo = repository.NewReferralRepository()
	s.spinRepo = repository.NewSpinRepository()
	s.streakRepo = repository.NewStreakRepository()
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.userRepo, s.roleRepo, s.walletRepo,
		s.transactionRepo, s.referralRepo, s.streakRepo, s.redisClient)
	s.taskDomain = domain.NewTaskDomain(s.taskRepo, s.userRepo, s.roleRepo,
		s.walletRepo, s.transactionRepo, s.redisClient)
	s.spinDomain = domain.NewSpinDomain(s.spinRepo, s.userRepo, s.walletRepo,
		s.transactionRepo, s.redisClient,
		spinwheel.FromConfig(xcontext.Configs(s.ctx).Reward.SpinPrizes))
	s.tournamentDomain = domain.NewTournamentDomain(s.tournamentRepo, s.userRepo,
		s.roleRepo, s.walletRepo, s.transactionRepo)
	s.paymentDomain = domain.NewPaymentDomain(s.depositRepo, s.withdrawalRepo,
		s.paymentSettingRepo, s.referralRepo, s.userRepo, s.roleRepo,
		s.walletRepo, s.transactionRepo, s.redisClient)
	s.referralDomain = domain.NewReferralDomain(s.referralRepo, s.userRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.walletRepo, s.userRepo, s.redisClient)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)

	// User API
	router.POST(s.router, "/syncProfile", s.userDomain.SyncProfile)
	router.GET(s.router, "/getMe", s.userDomain.GetMe)
	router.POST(s.router, "/assignGlobalRole", s.userDomain.AssignGlobalRole)
	router.POST(s.router, "/revokeGlobalRole", s.userDomain.RevokeGlobalRole)
	router.POST(s.router, "/banUser", s.userDomain.BanUser)

	// Task API
	router.GET(s.router, "/getTasks", s.taskDomain.GetTasks)
	router.POST(s.router, "/claimTask", s.taskDomain.Claim)
	router.POST(s.router, "/claimTaskStep", s.taskDomain.ClaimStep)
	router.POST(s.router, "/createTask", s.taskDomain.Create)
	router.POST(s.router, "/updateTask", s.taskDomain.Update)

	// Spin API
	router.POST(s.router, "/spin", s.spinDomain.Spin)
	router.GET(s.router, "/getSpinHistory", s.spinDomain.GetHistory)

	// Tournament API
	router.POST(s.router, "/createTournament", s.tournamentDomain.Create)
	router.GET(s.router, "/getTournaments", s.tournamentDomain.GetList)
	router.POST(s.router, "/joinTournament", s.tournamentDomain.Join)
	router.GET(s.router, "/getRoomInfo", s.tournamentDomain.GetRoomInfo)
	router.GET(s.router, "/getTournamentEntries", s.tournamentDomain.GetEntries)
	router.POST(s.router, "/recordResult", s.tournamentDomain.RecordResult)
	router.POST(s.router, "/updateTournamentStatus", s.tournamentDomain.UpdateStatus)

	// Payment API
	router.POST(s.router, "/createDeposit", s.paymentDomain.CreateDeposit)
	router.POST(s.router, "/reviewDeposit", s.paymentDomain.ReviewDeposit)
	router.POST(s.router, "/requestWithdrawal", s.paymentDomain.RequestWithdrawal)
	router.POST(s.router, "/processWithdrawal", s.paymentDomain.ProcessWithdrawal)
	router.GET(s.router, "/getMyDeposits", s.paymentDomain.GetMyDeposits)
	router.GET(s.router, "/getMyWithdrawals", s.paymentDomain.GetMyWithdrawals)
	router.GET(s.router, "/getPendingDeposits", s.paymentDomain.GetPendingDeposits)
	router.GET(s.router, "/getPendingWithdrawals", s.paymentDomain.GetPendingWithdrawals)
	router.GET(s.router, "/getTransactions", s.paymentDomain.GetTransactions)
	router.GET(s.router, "/getPaymentSettings", s.paymentDomain.GetPaymentSettings)
	router.POST(s.router, "/upsertPaymentSetting", s.paymentDomain.UpsertPaymentSetting)

	// Referral API
	router.GET(s.router, "/getMyReferrals", s.referralDomain.GetMyReferrals)

	// Statistic API
	router.GET(s.router, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	router.GET(s.router, "/getMyRank", s.statisticDomain.GetMyRank)
}
