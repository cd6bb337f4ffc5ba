package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Fuzzier/nsfx-sub003/internal/config"
	"github.com/Fuzzier/nsfx-sub003/internal/logging"
	"github.com/Fuzzier/nsfx-sub003/internal/report"
	"github.com/Fuzzier/nsfx-sub003/internal/runner"
	"github.com/Fuzzier/nsfx-sub003/internal/scenario"
)

var runCfg struct {
	ConfigFile string
	Scheduler  string
	Output     string
	Format     string
	NoColor    bool
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a single scenario file",
	Long: `Load a scenario file, run it to completion against the chosen
scheduler implementation, and print a report.

Examples:
  nsfxsim run scenario.yaml
  nsfxsim run scenario.yaml --scheduler list --format json --report out.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRunCommand,
}

func init() {
	runCmd.Flags().StringVar(&runCfg.ConfigFile, "config", "", "configuration file")
	runCmd.Flags().StringVar(&runCfg.Scheduler, "scheduler", "", "scheduler implementation: list, set, heap (overrides config)")
	runCmd.Flags().StringVarP(&runCfg.Output, "report", "o", "", "write the full JSON report to this file")
	runCmd.Flags().StringVar(&runCfg.Format, "format", "console", "console output format: console, json")
	runCmd.Flags().BoolVar(&runCfg.NoColor, "no-color", false, "disable ANSI color in console output")
}

func runRunCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	log := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}).With("cmd")

	schedulerImpl := cfg.Scheduler.Implementation
	if runCfg.Scheduler != "" {
		schedulerImpl = runCfg.Scheduler
	}

	path := args[0]
	sc, err := scenario.LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	log.Info("loaded scenario", "name", sc.Name, "scheduler", schedulerImpl)

	started := time.Now()
	result, err := runner.Run(sc, schedulerImpl, &log)
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}
	elapsed := time.Since(started)

	rpt := report.Generate(report.RunInfo{
		Scenario:            sc.Name,
		SchedulerImpl:       schedulerImpl,
		TickResolutionLabel: cfg.Scheduler.TickResolutionLabel,
		StartedAt:           started,
		Elapsed:             elapsed,
	}, result.Snapshot)

	if runCfg.Output != "" {
		if err := rpt.WriteToFile(runCfg.Output); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	switch runCfg.Format {
	case "json":
		data, err := rpt.ToJSON()
		if err != nil {
			return fmt.Errorf("serializing report: %w", err)
		}
		fmt.Println(string(data))
	case "console":
		formatter := report.NewConsoleFormatter().WithNoColor(runCfg.NoColor).WithReportPath(runCfg.Output)
		formatter.PrintSummary(rpt)
	default:
		return fmt.Errorf("unsupported format %q", runCfg.Format)
	}

	return nil
}

func loadRunConfig() (*config.Config, error) {
	if runCfg.ConfigFile == "" {
		return config.LoadConfigWithDefaults(), nil
	}
	return config.LoadConfig(runCfg.ConfigFile)
}
