package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/replay"
)

func replayCmd() *cobra.Command {
	var (
		fixturePath string
		dbPath      string
		last        int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Check current rules against a fixture or the journal",
		Long: `Replay a fixture of expected decisions, or re-decide journaled inputs and
report any whose decision changed. Exits non-zero on any mismatch.

Examples:
  sumero replay --fixture internal/replay/testdata/baseline.json
  sumero replay --db sumero.db --last 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fixturePath == "") == (dbPath == "") {
				return fmt.Errorf("specify exactly one of --fixture or --db")
			}
			if fixturePath != "" {
				return runFixtureMode(cmd.OutOrStdout(), fixturePath)
			}
			return runDBMode(cmd.OutOrStdout(), dbPath, last)
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "fixture file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&dbPath, "db", "", "journal to check for drift")
	cmd.Flags().IntVar(&last, "last", 1000, "number of most recent journal entries to check")

	return cmd
}

// #region fixture-mode
func runFixtureMode(w io.Writer, path string) error {
	f, err := replay.LoadFixture(path)
	if err != nil {
		return err
	}
	results := replay.Replay(f.Cases)

	fmt.Fprintf(w, "%-32s| %-16s| %s\n", "Case", "State", "Result")
	fmt.Fprintf(w, "%-32s+%-17s+%s\n", strings.Repeat("-", 32), strings.Repeat("-", 17), "--------")
	for _, r := range results {
		state := string(r.Decision.HealthState)
		if r.Err != nil {
			state = "(invalid)"
		}
		verdict := "ok"
		if !r.Passed {
			verdict = "FAIL " + strings.Join(r.Mismatches, "; ")
		}
		fmt.Fprintf(w, "%-32s| %-16s| %s\n", r.CaseID, state, verdict)
	}

	s := replay.Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d total, %d passed, %d failed, %d invalid input\n", s.Total, s.Passed, s.Failed, s.Invalid)
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d cases failed", s.Failed, s.Total)
	}
	return nil
}

// #endregion fixture-mode

// #region db-mode
func runDBMode(w io.Writer, dbPath string, last int) error {
	j, err := openJournal(dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(last)
	if err != nil {
		return err
	}
	results := replay.ReplayJournal(entries)

	drifted := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			drifted++
			fmt.Fprintf(w, "%s  error: %v\n", shortID(r.DecisionID), r.Err)
		case r.Drifted:
			drifted++
			fmt.Fprintf(w, "%s  drifted: %s -> %s\n", shortID(r.DecisionID), shortID(r.RecordedFingerprint), shortID(r.CurrentFingerprint))
		}
	}

	fmt.Fprintf(w, "\nSummary: %d checked, %d stable, %d drifted\n", len(results), len(results)-drifted, drifted)
	if drifted > 0 {
		return fmt.Errorf("%d of %d journaled decisions drifted", drifted, len(results))
	}
	return nil
}

// #endregion db-mode
