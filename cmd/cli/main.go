package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/preston-bernstein/mlb-season-service/internal/aggregate"
	appgames "github.com/preston-bernstein/mlb-season-service/internal/app/games"
	"github.com/preston-bernstein/mlb-season-service/internal/app/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/config"
	domainreports "github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
	"github.com/preston-bernstein/mlb-season-service/internal/export"
	"github.com/preston-bernstein/mlb-season-service/internal/logging"
	"github.com/preston-bernstein/mlb-season-service/internal/predict"
	"github.com/preston-bernstein/mlb-season-service/internal/server"
	"github.com/preston-bernstein/mlb-season-service/internal/store"
)

const appVersion = "dev"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			usage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli fetch  [--seasons 2024,2025]")
	fmt.Fprintln(w, "  cli report [--dimension opponent] [--season 2025] [--per-season] [--order best] [--limit 10]")
	fmt.Fprintln(w, "  cli train  [--test-fraction 0.2] [--seed 42] [--out models/simple_win_predictor.json]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - fetch always re-downloads seasons and overwrites the games tables")
	fmt.Fprintln(w, "  - report and train load existing tables and only fetch missing seasons")
	fmt.Fprintln(w, "  - settings come from CONFIG_FILE and the environment, flags override them")
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	switch args[0] {
	case "fetch":
		return cmdFetch(ctx, cfg, logger, args[1:], out)
	case "report":
		return cmdReport(ctx, cfg, logger, args[1:], out)
	case "train":
		return cmdTrain(ctx, cfg, logger, args[1:], out)
	default:
		return errUsage
	}
}

func cmdFetch(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(out)
	seasonsFlag := fs.String("seasons", "", "Comma separated seasons (default from SEASONS)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	seasons := cfg.Seasons
	if *seasonsFlag != "" {
		parsed, err := parseSeasons(*seasonsFlag)
		if err != nil {
			return err
		}
		seasons = parsed
	}

	assembler := server.NewAssembler(cfg, server.NewProvider(cfg, logger, nil), logger)
	raw, results, err := assembler.Fetch(ctx, seasons)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintf(out, "season %d: %d games -> %s\n", res.Season, res.Games, res.Path)
	}
	fmt.Fprintf(out, "total: %d games\n", len(raw))
	return nil
}

func cmdReport(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(out)
	dimension := fs.String("dimension", "", "Report dimension (default: all)")
	season := fs.Int("season", 0, "Restrict to one season (0=all)")
	perSeason := fs.Bool("per-season", false, "Group separately per season")
	orderFlag := fs.String("order", "", "Row order: key, best or worst")
	limit := fs.Int("limit", 0, "Keep the first N rows (0=all)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	dims := domainreports.Dimensions()
	if *dimension != "" {
		d, ok := domainreports.ParseDimension(*dimension)
		if !ok {
			return fmt.Errorf("%w: %q", aggregate.ErrUnknownDimension, *dimension)
		}
		dims = []domainreports.Dimension{d}
	}
	order, ok := reports.ParseOrder(*orderFlag)
	if !ok {
		return fmt.Errorf("unknown order %q", *orderFlag)
	}

	gameSvc, err := loadGames(ctx, cfg, logger)
	if err != nil {
		return err
	}
	reportSvc := reports.NewService(gameSvc, server.Thresholds(cfg), nil, logger)
	writer := export.NewWriter(cfg.Data.Dir, cfg.Data.Prefix)

	for _, d := range dims {
		report, err := reportSvc.Report(ctx, reports.Query{
			Dimension: d,
			Season:    *season,
			PerSeason: *perSeason,
			Order:     order,
			Limit:     *limit,
		})
		if err != nil {
			return err
		}
		path, err := writer.WriteReport(d, report.Rows)
		if err != nil {
			return err
		}
		printReport(out, report)
		fmt.Fprintf(out, "wrote %s\n\n", path)
	}
	return nil
}

func cmdTrain(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	defaults := predict.DefaultOptions()
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(out)
	testFraction := fs.Float64("test-fraction", defaults.TestFraction, "Share of games held out for evaluation")
	seed := fs.Int64("seed", defaults.Seed, "Shuffle seed")
	outPath := fs.String("out", cfg.Data.ModelPath, "Model output path")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	gameSvc, err := loadGames(ctx, cfg, logger)
	if err != nil {
		return err
	}
	rows, err := gameSvc.Rows(0)
	if err != nil {
		return err
	}

	opts := defaults
	opts.TestFraction = *testFraction
	opts.Seed = *seed
	model, err := predict.Train(predict.Samples(rows), opts)
	if err != nil {
		return err
	}
	if err := model.Save(*outPath); err != nil {
		return err
	}

	eval := model.Evaluation
	fmt.Fprintf(out, "train=%d test=%d\n", eval.TrainSize, eval.TestSize)
	fmt.Fprintf(out, "Acc: %.3f\n", eval.Accuracy)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "class\tprecision\trecall\tsupport")
	fmt.Fprintf(tw, "win\t%.3f\t%.3f\t%d\n", eval.Win.Precision, eval.Win.Recall, eval.Win.Support)
	fmt.Fprintf(tw, "loss\t%.3f\t%.3f\t%d\n", eval.Loss.Precision, eval.Loss.Recall, eval.Loss.Support)
	_ = tw.Flush()
	fmt.Fprintf(out, "Saved model to %s\n", *outPath)
	return nil
}

// loadGames fills an in-memory service from the tables, fetching missing seasons.
func loadGames(ctx context.Context, cfg config.Config, logger *slog.Logger) (*appgames.Service, error) {
	gameSvc := appgames.NewService(appgames.Config{
		Store:   store.NewMemoryStore(),
		Loader:  server.NewAssembler(cfg, server.NewProvider(cfg, logger, nil), logger),
		Seasons: cfg.Seasons,
		Matcher: server.Matcher(cfg),
		Logger:  logger,
	})
	if _, err := gameSvc.Refresh(ctx, false); err != nil {
		return nil, err
	}
	return gameSvc, nil
}

func printReport(out io.Writer, report domainreports.Report) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (min %d decided)\n", report.Dimension, report.MinGames)
	fmt.Fprintln(tw, "key\tseason\tgames\tW\tL\tT\twin%")
	for _, row := range report.Rows {
		season := "-"
		if row.Season != 0 {
			season = strconv.Itoa(row.Season)
		}
		pct := "n/a"
		if row.WinPct != nil {
			pct = fmt.Sprintf("%.3f", *row.WinPct)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n", row.Key, season, row.TotalGames, row.Wins, row.Losses, row.Ties, pct)
	}
	_ = tw.Flush()
}

func parseSeasons(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	seasons := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid season %q", part)
		}
		seasons = append(seasons, n)
	}
	if len(seasons) == 0 {
		return nil, fmt.Errorf("no seasons in %q", raw)
	}
	return seasons, nil
}
