package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "vitalcycle"
	s.app.Usage = "Cycle and gamification progression engine"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path of the TOML configuration file",
			EnvVars: []string{"VITALCYCLE_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "overrides the log level of the configuration",
		},
	}
	s.app.Before = s.loadBase
	s.app.After = s.close

	s.app.Commands = []*cli.Command{
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database",
			Category: "Admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "version", Usage: "data migration to run after the schema"},
				&cli.BoolFlag{Name: "seed", Usage: "import the default medal catalog"},
			},
			Description: `Creates or alters every table, then runs the given data migration.`,
		},
		{
			Action:   s.startCron,
			Name:     "cron",
			Usage:    "Start the daily reconciliation",
			Category: "Worker",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "now", Usage: "reconcile once at startup"},
			},
			Description: `Recomputes yesterday and today of every user with a current cycle ` +
				`each day and serves prometheus metrics.`,
		},
		{
			Action:   s.startProcess,
			Name:     "process",
			Usage:    "Process the gamification of one day",
			Category: "Gamification",
			Flags:    []cli.Flag{userFlag(), dateFlag()},
		},
		{
			Action:   s.startRecord,
			Name:     "record",
			Usage:    "Record a habit completion",
			Category: "Gamification",
			Flags: []cli.Flag{
				userFlag(),
				dateFlag(),
				&cli.StringFlag{Name: "habit", Usage: "habit id", Required: true},
				&cli.IntFlag{Name: "level", Usage: "completion level from 0 to 3", Required: true},
				&cli.BoolFlag{Name: "promoted", Usage: "the habit is promoted"},
			},
		},
		{
			Action:   s.startPoints,
			Name:     "points",
			Usage:    "Show the stored points of a user on a date",
			Category: "Gamification",
			Flags:    []cli.Flag{userFlag(), dateFlag()},
		},
		{
			Action:   s.startProgress,
			Name:     "progress",
			Usage:    "Show the progress of a user",
			Category: "Gamification",
			Flags:    []cli.Flag{userFlag()},
		},
		{
			Name:     "cycle",
			Usage:    "Manage cycles",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.startCycleNew,
					Name:   "new",
					Usage:  "Start the next cycle of a user",
					Flags: []cli.Flag{
						userFlag(),
						&cli.IntFlag{Name: "number", Usage: "force the cycle number"},
					},
				},
				{
					Action: s.startCycleStatus,
					Name:   "status",
					Usage:  "Show the current cycle of a user",
					Flags:  []cli.Flag{userFlag()},
				},
				{
					Action: s.startCycleExpire,
					Name:   "expire",
					Usage:  "Expire a cycle",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "id", Usage: "cycle id", Required: true},
					},
				},
				{
					Action: s.startCycleOnboarding,
					Name:   "onboarding",
					Usage:  "Mark the onboarding of the current cycle as completed",
					Flags:  []cli.Flag{userFlag()},
				},
			},
		},
		{
			Name:     "medal",
			Usage:    "Manage the medal catalog",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.startMedalImport,
					Name:   "import",
					Usage:  "Import a TOML or YAML medal catalog",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "file", Usage: "catalog path", Required: true},
						&cli.StringFlag{Name: "format", Usage: "toml or yaml, guessed from the extension by default"},
					},
				},
				{
					Action: s.startMedalList,
					Name:   "list",
					Usage:  "List all medals",
				},
			},
		},
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{Name: "user", Usage: "user id", Required: true}
}

func dateFlag() cli.Flag {
	return &cli.StringFlag{Name: "date", Usage: "date formatted as 2006-01-02, defaults to today"}
}
