package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/alphabeam/screenline/internal/backtest"
	"github.com/alphabeam/screenline/internal/config"
	"github.com/alphabeam/screenline/internal/ingest"
	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/scanner"
	"github.com/alphabeam/screenline/internal/server"
	"github.com/alphabeam/screenline/internal/store"
	"github.com/alphabeam/screenline/internal/types"
)

// env bundles everything a command needs once the config is loaded.
type env struct {
	cfg    config.Config
	logger *logger.Logger
	store  *store.DuckDBStore
}

func setup(cmd *cli.Command) (*env, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return nil, err
	}

	st, err := store.NewStore(cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: log, store: st}, nil
}

func (e *env) close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// scanParams seeds the runtime parameter map with the configured pipeline
// defaults; per-invocation overrides layer on top.
func (e *env) scanParams() types.Params {
	return types.Params{
		"market":               e.cfg.Market,
		"days_back":            e.cfg.Scan.DaysBack,
		"volume_lookback_days": e.cfg.Scan.VolumeLookbackDays,
		"min_avg_volume":       e.cfg.Scan.MinAvgVolume,
		"min_market_cap":       e.cfg.Scan.MinMarketCap,
		"setup_lookback_days":  e.cfg.Scan.SetupLookbackDays,
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the database schema and seed the exchange table",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.store.InitSchema(); err != nil {
				return err
			}

			fmt.Printf("initialized database at %s\n", e.cfg.DatabasePath)

			return nil
		},
	}
}

func scannersCommand() *cli.Command {
	return &cli.Command{
		Name:  "scanners",
		Usage: "List the available scanners and their parameters",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry := scanner.NewRegistry()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()

			for _, name := range registry.List() {
				sc, err := registry.Get(name, nil)
				if err != nil {
					return err
				}

				params := make([]string, 0, len(sc.Params()))
				for _, p := range sc.Params() {
					params = append(params, fmt.Sprintf("%s=%v", p.Name, p.Default))
				}

				fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(params, " "))
			}

			return nil
		},
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Run one scanner against the candidate universe",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scanner", Aliases: []string{"s"}, Usage: "Scanner name", Required: true},
			&cli.StringFlag{Name: "params", Usage: "Scanner parameter overrides as a JSON object"},
			&cli.StringFlag{Name: "filters", Usage: "Filter list for the generic screener as a JSON array"},
			&cli.BoolFlag{Name: "json", Usage: "Emit the result table as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			params := e.scanParams()

			if raw := cmd.String("params"); raw != "" {
				var overrides map[string]any
				if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
					return fmt.Errorf("invalid --params json: %w", err)
				}

				for k, v := range overrides {
					params[k] = v
				}
			}

			if raw := cmd.String("filters"); raw != "" {
				filters, err := parseFilters(raw)
				if err != nil {
					return err
				}

				params["filters"] = filters
			}

			registry := scanner.NewRegistry()

			sc, err := registry.Get(cmd.String("scanner"), params)
			if err != nil {
				return err
			}

			orch := scanner.NewOrchestrator(e.store, e.logger)

			table, err := orch.RunScan(ctx, sc, scanner.ScanOptions{Params: params})
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(table)
			}

			printTable(table)

			return nil
		},
	}
}

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Replay scanners over history with a fixed-hold exit",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "scanner", Aliases: []string{"s"}, Usage: "Scanner name (repeatable)", Required: true},
			timestampFlag("start", "First simulated day (YYYY-MM-DD)", true),
			timestampFlag("end", "Last simulated day (YYYY-MM-DD), defaults to today", false),
			&cli.IntFlag{Name: "hold-days", Usage: "Bars to hold each position (0 uses the configured default)"},
			&cli.BoolFlag{Name: "json", Usage: "Emit the full report as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			holdDays := int(cmd.Int("hold-days"))
			if holdDays <= 0 {
				holdDays = e.cfg.Backtest.HoldDays
			}

			engine := backtest.NewEngine(e.store, scanner.NewRegistry(), e.logger)

			var bar *progressbar.ProgressBar

			report, err := engine.Run(ctx, backtest.Options{
				Start:    cmd.Timestamp("start"),
				End:      cmd.Timestamp("end"),
				HoldDays: holdDays,
				Scanners: cmd.StringSlice("scanner"),
				Params:   e.scanParams(),
				Progress: func(done, total int) {
					if bar == nil {
						bar = progressbar.Default(int64(total), "backtesting")
					}

					_ = bar.Set(done)
				},
			})
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(report)
			}

			printReport(report)

			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON scanning API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			srv := server.NewServer(e.store, scanner.NewRegistry(), e.logger)

			return srv.Start(ctx, e.cfg.ListenAddr)
		},
	}
}

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Fetch daily bars from Polygon into the database",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "symbol", Usage: "Ticker symbol (repeatable)", Required: true},
			timestampFlag("start", "First day to fetch (YYYY-MM-DD)", true),
			timestampFlag("end", "Last day to fetch (YYYY-MM-DD), defaults to today", false),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			apiKey := e.cfg.Ingest.PolygonAPIKey
			if apiKey == "" {
				apiKey = os.Getenv("POLYGON_API_KEY")
			}

			source, err := ingest.NewPolygonSource(apiKey)
			if err != nil {
				return err
			}

			ingester := ingest.NewIngester(e.store, source, e.logger)

			result, err := ingester.Run(ctx, cmd.StringSlice("symbol"), cmd.Timestamp("start"), cmd.Timestamp("end"), true)
			if err != nil {
				return err
			}

			fmt.Printf("batch %s: %d bars across %d symbols (%d skipped)\n",
				result.BatchID, result.Bars, result.Symbols, len(result.Skipped))

			return nil
		},
	}
}

func parseFilters(raw string) ([]types.FilterSpec, error) {
	var filters []types.FilterSpec
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		return nil, fmt.Errorf("invalid --filters json: %w", err)
	}

	for i, f := range filters {
		op, err := types.ParseOperator(string(f.Op))
		if err != nil {
			return nil, err
		}

		filters[i].Op = op
	}

	return filters, nil
}

func printTable(table *types.ResultTable) {
	if table.Empty() {
		fmt.Println("no matches")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, strings.Join(table.Columns, "\t"))

	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))

		for i, col := range table.Columns {
			if v, ok := row[col]; ok {
				cells[i] = formatCell(v)
			}
		}

		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	fmt.Printf("%d matches\n", len(table.Rows))
}

func formatCell(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}

	return fmt.Sprint(v)
}

func printReport(report *backtest.Report) {
	fmt.Printf("%s to %s: %d trading days, %d trades\n",
		report.Start.Format(dateLayout), report.End.Format(dateLayout),
		report.TradingDays, report.TotalTrades)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "scanner\ttrades\twin rate\tprofit factor\tavg win\tavg loss\ttotal return\tfinal equity")

	for _, s := range report.Strategies {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%.2f\t%+.2f%%\t%+.2f%%\t%+.1f%%\t%s\n",
			s.Scanner, len(s.Trades), s.WinRate, s.ProfitFactor,
			s.AvgWinPct, s.AvgLossPct, s.TotalReturnPct, s.FinalEquity.StringFixed(0))
	}
}
