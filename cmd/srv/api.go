package main

import (
	"net/http"

	"github.com/battlezone-labs/backend/internal/domain/cron"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    xcontext.Configs(s.ctx).ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewLeaderboardCronJob(s.walletRepo, s.redisClient))

	group, groupCtx := errgroup.WithContext(s.ctx)
	group.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.server.Addr)
		return s.server.ListenAndServe()
	})
	group.Go(func() error {
		cronJobManager.Start(groupCtx)
		return nil
	})

	return group.Wait()
}
