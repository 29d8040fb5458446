// Command screenline is the CLI for the stock screening and backtesting
// engine: database setup, scanner runs, historical replays, price
// ingestion, and the JSON API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

const dateLayout = "2006-01-02"

func main() {
	cmd := &cli.Command{
		Name:  "screenline",
		Usage: "Screen and backtest stocks from a local market database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			scannersCommand(),
			scanCommand(),
			backtestCommand(),
			serveCommand(),
			ingestCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func timestampFlag(name string, usage string, required bool) *cli.TimestampFlag {
	flag := &cli.TimestampFlag{
		Name:     name,
		Usage:    usage,
		Required: required,
		Config: cli.TimestampConfig{
			Layouts: []string{dateLayout},
		},
	}
	if !required {
		flag.Value = time.Now().UTC()
	}

	return flag
}
