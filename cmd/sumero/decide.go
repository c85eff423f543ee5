package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/intake"
)

func decideCmd() *cobra.Command {
	var (
		sleep   float64
		stress  int
		hr      int
		bp      string
		input   string
		format  string
		record  bool
		dbPath  string
		subject string
	)

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Produce a decision for one set of biometrics",
		Long: `Produce a decision from flags or from a JSON/YAML request file.

Examples:
  sumero decide --sleep 7.5 --stress 8 --hr 65 --bp 120/80
  sumero decide --input request.json --format text
  sumero decide --sleep 5 --stress 3 --hr 60 --record --db sumero.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw map[string]any
			if input != "" {
				var err error
				if raw, err = readRequest(input); err != nil {
					return err
				}
			} else {
				for _, name := range []string{"sleep", "stress", "hr"} {
					if !cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s is required unless --input is given", name)
					}
				}
				raw = map[string]any{"sleep_hours": sleep, "stress_level": stress, "resting_hr": hr}
				if bp != "" {
					raw["blood_pressure"] = bp
				}
			}

			in, err := intake.Parse(raw)
			if err != nil {
				return err
			}
			d, err := engine.Decide(in)
			if err != nil {
				return err
			}

			if record {
				j, err := openJournal(dbPath)
				if err != nil {
					return err
				}
				defer j.Close()
				e, err := j.Record(subject, in, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "recorded decision %s\n", e.DecisionID)
			}

			return printDecision(cmd.OutOrStdout(), format, d)
		},
	}

	cmd.Flags().Float64Var(&sleep, "sleep", 0, "hours slept last night")
	cmd.Flags().IntVar(&stress, "stress", 0, "self-reported stress, 0-10")
	cmd.Flags().IntVar(&hr, "hr", 0, "resting heart rate, bpm")
	cmd.Flags().StringVar(&bp, "bp", "", `blood pressure "SYS/DIA" (default 120/80)`)
	cmd.Flags().StringVarP(&input, "input", "i", "", "request file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or text")
	cmd.Flags().BoolVar(&record, "record", false, "journal the decision")
	cmd.Flags().StringVar(&dbPath, "db", "", "journal path (default: configured db_path)")
	cmd.Flags().StringVar(&subject, "subject", "", "label stored with a recorded decision")

	return cmd
}

// readRequest loads a request file; the extension picks the format.
func readRequest(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &engine.InvalidInputError{Reason: fmt.Sprintf("malformed YAML: %v", err)}
		}
		return raw, nil
	default:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &engine.InvalidInputError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
		}
		return raw, nil
	}
}
