package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/ops"
	"github.com/mishcd/astrocusp/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "astrocusp",
		Usage:   "Sign, cusp, and daily-sky resolution",
		Version: Version,
		Commands: []*cli.Command{
			cuspCmd(),
			risingCmd(),
			skyCmd(cfg),
			moonCmd(),
			eventsCmd(cfg),
			dailyCmd(db, cfg),
			contentCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// cuspCmd creates the cusp command.
func cuspCmd() *cli.Command {
	return &cli.Command{
		Name:      "cusp",
		Usage:     "Resolve a birth date to its sign or cusp identity",
		ArgsUsage: "<YYYY-MM-DD>",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "seed", Usage: "Fix the cosmetic sun-degree randomness"},
		},
		Action: func(c *cli.Context) error {
			year, month, day, err := parseDateArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Cusp(ops.CuspInput{
				Year:  year,
				Month: month,
				Day:   day,
				Seed:  c.Int64("seed"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// risingCmd creates the rising command.
func risingCmd() *cli.Command {
	return &cli.Command{
		Name:      "rising",
		Usage:     "Estimate the rising sign from birth date and time",
		ArgsUsage: "<YYYY-MM-DD> <HH:MM>",
		Action: func(c *cli.Context) error {
			year, month, day, err := parseDateArg(c)
			if err != nil {
				return outputError(err)
			}
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("birth time is required, e.g. 08:30"))
			}
			hour, minute, err := parseTimeArg(c.Args().Get(1))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Rising(ops.RisingInput{
				Year:   year,
				Month:  month,
				Day:    day,
				Hour:   hour,
				Minute: minute,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// skyCmd creates the sky command.
func skyCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sky",
		Usage: "Show approximate current planetary positions",
		Action: func(c *cli.Context) error {
			output, err := ops.Sky(cfg, ops.SkyInput{})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// moonCmd creates the moon command.
func moonCmd() *cli.Command {
	return &cli.Command{
		Name:  "moon",
		Usage: "Show the current lunar phase and next quarter",
		Action: func(c *cli.Context) error {
			output, err := ops.Moon(ops.MoonInput{})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// eventsCmd creates the events command.
func eventsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "List upcoming sky events",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hemisphere", Aliases: []string{"H"}, Usage: "Northern or Southern"},
			&cli.IntFlag{Name: "window", Usage: "Lookahead window in days"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Events(cfg, ops.EventsInput{
				Hemisphere: c.String("hemisphere"),
				WindowDays: c.Int("window"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// dailyCmd creates the daily command.
func dailyCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "daily",
		Usage:     "Fetch the stored daily reading for a sign or cusp",
		ArgsUsage: "<sign>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hemisphere", Aliases: []string{"H"}, Usage: "Northern or Southern"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "YYYY-MM-DD (defaults to today)"},
			&cli.StringFlag{Name: "timezone", Aliases: []string{"z"}, Usage: "IANA zone for today-anchoring"},
			&cli.BoolFlag{Name: "single-sign-fallback", Usage: "Allow cusp requests to fall back to the first component sign"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("a sign or cusp label is required"))
			}

			output, err := ops.Daily(db, cfg, ops.DailyInput{
				Sign:               strings.Join(c.Args().Slice(), " "),
				Hemisphere:         c.String("hemisphere"),
				Date:               c.String("date"),
				Timezone:           c.String("timezone"),
				SingleSignFallback: c.Bool("single-sign-fallback"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// contentCmd groups the content-store management subcommands.
func contentCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "content",
		Usage: "Manage the horoscope content store",
		Subcommands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import content rows from a JSON export file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "skip", Usage: "Collision mode: skip|replace"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("an import file path is required"))
					}

					output, err := ops.Import(db, ops.ImportInput{
						Path: c.Args().First(),
						Mode: ops.ImportMode(c.String("mode")),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "Summarize stored content coverage by date",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum number of dates"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.List(db, ops.ListInput{Limit: c.Int("limit")})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "purge",
				Usage: "Remove content rows older than a cutoff",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "before", Usage: "YYYY-MM-DD cutoff"},
					&cli.StringFlag{Name: "keep", Usage: "Keep the most recent N days (e.g., 45d)"},
				},
				Action: func(c *cli.Context) error {
					input := ops.PurgeInput{Before: c.String("before")}

					if keep := c.String("keep"); keep != "" {
						days, err := parseDays(keep)
						if err != nil {
							return outputError(errors.NewInvalidRequest(err.Error()))
						}
						input.KeepDays = days
					}

					output, err := ops.Purge(db, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8722, Usage: "Listen port"},
			&cli.BoolFlag{Name: "verbose", Usage: "Log at debug level"},
		},
		Action: func(c *cli.Context) error {
			logCfg := zap.NewProductionConfig()
			if c.Bool("verbose") {
				logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			}
			logger, err := logCfg.Build()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer logger.Sync()

			srv := web.NewServer(db, cfg, logger, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv, logger)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if astroErr, ok := err.(*errors.AstroError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", astroErr.Code, astroErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseDateArg parses the first positional argument as a YYYY-MM-DD date.
func parseDateArg(c *cli.Context) (year, month, day int, err error) {
	if c.NArg() < 1 {
		return 0, 0, 0, errors.NewInvalidRequest("a birth date is required, e.g. 1990-07-21")
	}
	t, perr := time.Parse("2006-01-02", c.Args().First())
	if perr != nil {
		return 0, 0, 0, errors.NewInvalidDate("date must be YYYY-MM-DD: " + c.Args().First())
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

// parseTimeArg parses an HH:MM birth time.
func parseTimeArg(s string) (hour, minute int, err error) {
	t, perr := time.Parse("15:04", s)
	if perr != nil {
		return 0, 0, errors.NewInvalidDate("time must be HH:MM (24-hour): " + s)
	}
	return t.Hour(), t.Minute(), nil
}

// parseDays parses "45d" format to days.
func parseDays(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days <= 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 45d")
}
