package main

import "github.com/urfave/cli/v2"

func (s *srv) newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "battlezone"
	app.Usage = "Tournament platform backend"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config.toml",
			Usage: "Path of the configuration file",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Start the main api service together with the background jobs.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Start only the background jobs, for running them apart from the api.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
			Description: `Create or update all database tables.`,
		},
	}

	return app
}
