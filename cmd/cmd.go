// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

func lookupFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "id",
			Usage: "App id to look up",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "Exact app name to look up",
		},
	}
}

// setupCommand handles database and configuration bootstrap.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config, database, and catalog cache",
		Flags: []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// syncCommand handles catalog refresh operations
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Refresh the local app catalog from the remote service",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Refresh even when the cache is fresh",
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "Show recorded sync runs instead of refreshing",
			},
		}, outputFlags()...),
		Action: r.Sync,
	}
}

// searchCommand handles fuzzy name lookup
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search cached apps by name fragment",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  append([]cli.Flag{configFlag()}, outputFlags()...),
		Action: r.Search,
	}
}

// appCommand handles exact record lookups
func appCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "app",
		Usage: "Cached app record operations",
		Commands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Look up a cached app by id or exact name",
				Flags:  append(append([]cli.Flag{configFlag()}, lookupFlags()...), outputFlags()...),
				Action: r.AppGet,
			},
		},
	}
}

// achievementsCommand handles achievement schema retrieval
func achievementsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "achievements",
		Aliases: []string{"ach"},
		Usage:   "List achievement definitions for an app",
		Flags: append(append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the listing as CSV to this file",
			},
		}, lookupFlags()...), outputFlags()...),
		Action: r.Achievements,
	}
}

// dlcCommand handles DLC reconciliation
func dlcCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dlc",
		Usage: "List DLC for a base game, reconciled against the local cache",
		Flags: append(append([]cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "steamdb",
				Usage: "Enrich results with scraped SteamDB names",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the listing as CSV to this file",
			},
		}, lookupFlags()...), outputFlags()...),
		Action: r.Dlc,
	}
}

// exportCommand handles bulk enrichment exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export achievements and DLC for every game matching a query",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent file writers",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "steamdb",
				Usage: "Enrich DLC names with scraped SteamDB data",
			},
		},
		Action: r.Export,
	}
}

// serveCommand exposes the cache's query operations over HTTP
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve read-only JSON views of the catalog cache",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   "localhost:8280",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing the catalog",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
