package main

import (
	"github.com/battlezone-labs/backend/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	s.loadRedisClient()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewLeaderboardCronJob(s.walletRepo, s.redisClient))
	cronJobManager.Start(s.ctx)

	return nil
}
