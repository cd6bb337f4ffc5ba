package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Fuzzier/nsfx-sub003/internal/config"
	"github.com/Fuzzier/nsfx-sub003/internal/logging"
	"github.com/Fuzzier/nsfx-sub003/internal/report"
	"github.com/Fuzzier/nsfx-sub003/internal/runner"
	"github.com/Fuzzier/nsfx-sub003/internal/scenario"
)

var batchCfg struct {
	ConfigFile string
	Scheduler  string
	OutputDir  string
}

var batchCmd = &cobra.Command{
	Use:   "batch <scenario.yaml>...",
	Short: "Run several scenario files concurrently",
	Long: `Load and run each scenario file concurrently, one Simulator per
scenario, and print a one-line summary per run. All scenarios are started
together; if any of them fails to load or run, batch waits for the rest,
reports the first error and prints no summaries.

Examples:
  nsfxsim batch a.yaml b.yaml c.yaml
  nsfxsim batch scenarios/*.yaml --scheduler set`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatchCommand,
}

func init() {
	batchCmd.Flags().StringVar(&batchCfg.ConfigFile, "config", "", "configuration file")
	batchCmd.Flags().StringVar(&batchCfg.Scheduler, "scheduler", "", "scheduler implementation: list, set, heap (overrides config)")
	batchCmd.Flags().StringVar(&batchCfg.OutputDir, "output-dir", "", "directory to write one JSON report per scenario")
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadBatchConfig()
	if err != nil {
		return err
	}

	schedulerImpl := cfg.Scheduler.Implementation
	if batchCfg.Scheduler != "" {
		schedulerImpl = batchCfg.Scheduler
	}

	baseLog := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	reports := make([]*report.Report, len(args))

	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			sc, err := scenario.LoadFile(path)
			if err != nil {
				return fmt.Errorf("%s: loading scenario: %w", path, err)
			}

			scenarioLog := baseLog.With(path)
			started := time.Now()
			result, err := runner.Run(sc, schedulerImpl, &scenarioLog)
			if err != nil {
				return fmt.Errorf("%s: running scenario: %w", path, err)
			}

			reports[i] = report.Generate(report.RunInfo{
				Scenario:            sc.Name,
				SchedulerImpl:       schedulerImpl,
				TickResolutionLabel: cfg.Scheduler.TickResolutionLabel,
				StartedAt:           started,
				Elapsed:             time.Since(started),
			}, result.Snapshot)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range args {
		rpt := reports[i]
		fmt.Println(rpt.String())
		if batchCfg.OutputDir != "" {
			out := fmt.Sprintf("%s/%s.json", batchCfg.OutputDir, rpt.RunInfo.Scenario)
			if err := rpt.WriteToFile(out); err != nil {
				return fmt.Errorf("%s: writing report: %w", path, err)
			}
		}
	}

	return nil
}

func loadBatchConfig() (*config.Config, error) {
	if batchCfg.ConfigFile == "" {
		return config.LoadConfigWithDefaults(), nil
	}
	return config.LoadConfig(batchCfg.ConfigFile)
}
