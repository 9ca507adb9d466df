package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/forgesight/forgesight/dashboard"
	"github.com/forgesight/forgesight/dataset"
	"github.com/forgesight/forgesight/engine"
	"github.com/forgesight/forgesight/internal/config"
	"github.com/forgesight/forgesight/internal/server"
)

const version = "0.1.0"

var (
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "forgesight",
	Short:   "forgesight - steel plant dashboard engine and API",
	Version: version,
	Long: `forgesight loads the Global Iron and Steel Tracker plant table and serves
filterable dashboard views (metrics, map points, charts, tables) over HTTP,
or prints them straight to the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	Long: `Loads the plant table once and serves the read-only dashboard API until
interrupted. The dataset is immutable for the lifetime of the process.`,
	RunE: runServe,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline metrics and top rankings for a dataset",
	RunE:  runSummary,
}

var (
	// summary flags
	dataPath    string
	regions     []string
	countries   []string
	owners      []string
	minCapacity float64
	maxCapacity float64
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	summaryCmd.Flags().StringVar(&dataPath, "data", "", "path to the plant CSV (required)")
	summaryCmd.Flags().StringSliceVar(&regions, "region", nil, "restrict to region(s)")
	summaryCmd.Flags().StringSliceVar(&countries, "country", nil, "restrict to country(ies)")
	summaryCmd.Flags().StringSliceVar(&owners, "owner", nil, "restrict to owner(s)")
	summaryCmd.Flags().Float64Var(&minCapacity, "min-capacity", 0, "minimum capacity (ttpa), inclusive")
	summaryCmd.Flags().Float64Var(&maxCapacity, "max-capacity", 0, "maximum capacity (ttpa), inclusive")
	_ = summaryCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		zap.String("path", cfg.DataPath),
		zap.Int("plants", ds.Len()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(ctx, cfg, ds, logger).Run(ctx)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}

	criteria := engine.Criteria{
		Regions:     regions,
		Countries:   countries,
		Owners:      owners,
		CapacityMin: minCapacity,
		CapacityMax: maxCapacity,
	}

	snap, err := dashboard.Build(ds.Plants(), criteria)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m := snap.Metrics
	fmt.Fprintf(out, "Plants:            %d\n", m.Count)
	fmt.Fprintf(out, "Total capacity:    %.0f ttpa\n", m.TotalCapacity)
	fmt.Fprintf(out, "Average capacity:  %.0f ttpa\n", m.AverageCapacity)
	fmt.Fprintf(out, "Countries:         %d\n", m.DistinctCountries)

	printChart(out, snap.TopCountries)
	printChart(out, snap.TopOwnersByCapacity)
	return nil
}

func printChart(w io.Writer, chart *dashboard.ChartConfig) {
	if chart == nil || len(chart.Series) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", chart.Title)
	for _, p := range chart.Series[0].Data {
		fmt.Fprintf(w, "  %-40s %.0f\n", p.Label, p.Value)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
