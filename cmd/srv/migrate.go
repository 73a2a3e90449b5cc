package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	return s.migrateDB()
}
