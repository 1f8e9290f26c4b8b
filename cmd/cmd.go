// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/roster/internal/formatter"
	"github.com/urfave/cli/v3"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the record store",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the default config.toml",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the configured record store and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the record API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port)",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Record store driver: sqlite, mongo or memory (overrides database.driver)",
			},
		},
		Action: r.Serve,
	}
}

func recordsCommand(r *Runner) *cli.Command {
	fieldFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Employee name"},
			&cli.StringFlag{Name: "position", Usage: "Job position"},
			&cli.StringFlag{Name: "level", Usage: "Seniority level"},
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		}
	}

	return &cli.Command{
		Name:    "records",
		Aliases: []string{"rec"},
		Usage:   "Record operations against the API",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List records",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Case-insensitive substring of name or position",
					},
					&cli.StringFlag{
						Name:  "level",
						Usage: "Exact level to keep",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RecordsList,
			},
			{
				Name:  "get",
				Usage: "Show one record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RecordsGet,
			},
			{
				Name:   "create",
				Usage:  "Create a record",
				Flags:  fieldFlags(),
				Action: r.RecordsCreate,
			},
			{
				Name:  "update",
				Usage: "Replace all three fields of a record; omitted fields are cleared",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  fieldFlags(),
				Action: r.RecordsUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete one record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.RecordsDelete,
			},
			{
				Name:      "bulk-delete",
				Usage:     "Delete several records",
				ArgsUsage: "<id> [id...]",
				Action:    r.RecordsBulkDelete,
			},
			{
				Name:      "import",
				Usage:     "Upload one or more spreadsheets",
				ArgsUsage: "<file.xlsx> [file...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent uploads (max 10)",
						Value:   5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Uploads per second",
						Value: 5,
					},
				},
				Action: r.RecordsImport,
			},
			{
				Name:  "export",
				Usage: "Write every record to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, txt, json, xlsx",
						Value:   string(formatter.FormatCSV),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: records.<ext>)",
					},
				},
				Action: r.RecordsExport,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse, filter and manage records interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/roster-tui.log",
			},
		},
		Action: r.TUI,
	}
}
