package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/simulate"
)

func simulateCmd() *cobra.Command {
	var (
		csvPath   string
		samples   int
		spotlight int
		record    bool
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the engine over a population dataset",
		Long: `Decide every row of a sleep-health CSV and print the state distribution,
sample briefings and one spotlighted user.

Required columns: Sleep Duration, Stress Level, Heart Rate, Blood Pressure.

Examples:
  sumero simulate --csv Sleep_health_and_lifestyle_dataset.csv
  sumero simulate --csv data.csv --samples 0 --spotlight 0 --record`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				return fmt.Errorf("--csv is required")
			}
			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("open dataset: %w", err)
			}
			defer f.Close()

			rows, err := simulate.LoadDataset(f)
			if err != nil {
				return fmt.Errorf("%s: %w", csvPath, err)
			}
			report, err := simulate.Run(rows, simulate.Options{Samples: samples, Spotlight: spotlight})
			if err != nil {
				return fmt.Errorf("%s: %w", csvPath, err)
			}

			if record {
				j, err := openJournal(dbPath)
				if err != nil {
					return err
				}
				defer j.Close()
				for i, o := range report.Outcomes {
					if _, err := j.Record(fmt.Sprintf("csv:user-%d", i+1), o.Row.Input, o.Decision); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "recorded %d decisions\n", len(report.Outcomes))
			}

			return report.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "sleep-health dataset (CSV)")
	cmd.Flags().IntVar(&samples, "samples", 5, "number of leading briefings to print")
	cmd.Flags().IntVar(&spotlight, "spotlight", simulate.DefaultSpotlight, "1-based user to spotlight (0 disables)")
	cmd.Flags().BoolVar(&record, "record", false, "journal every decision")
	cmd.Flags().StringVar(&dbPath, "db", "", "journal path (default: configured db_path)")

	return cmd
}
