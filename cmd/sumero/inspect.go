package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

func inspectCmd() *cobra.Command {
	var (
		dbPath  string
		last    int
		id      string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show journaled decisions",
		Long: `List recent journaled decisions with the state distribution, or show one
decision in full.

Examples:
  sumero inspect --db sumero.db --last 50
  sumero inspect --db sumero.db --id 3f2a9c1e-... --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(dbPath)
			if err != nil {
				return err
			}
			defer j.Close()

			w := cmd.OutOrStdout()
			if id != "" {
				return runDetailMode(w, j, id, jsonOut)
			}
			return runListMode(w, j, last, jsonOut)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "journal path (default: configured db_path)")
	cmd.Flags().IntVar(&last, "last", 20, "show N most recent decisions")
	cmd.Flags().StringVar(&id, "id", "", "show a single decision")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON instead of table")

	return cmd
}

// #region list-mode
type listOutput struct {
	Decisions []journal.Entry      `json:"decisions"`
	States    []journal.StateCount `json:"states"`
}

func runListMode(w io.Writer, j *journal.Journal, last int, jsonOut bool) error {
	entries, err := j.List(last)
	if err != nil {
		return err
	}
	counts, err := j.StateCounts()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(w, listOutput{Decisions: entries, States: counts})
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no decisions found")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-16s  %-9s  %-28s  %-16s  %s\n", "ID", "State", "Focus", "Reasons", "Subject", "Time")
	for _, e := range entries {
		subject := e.Subject
		if subject == "" {
			subject = "-"
		}
		fmt.Fprintf(w, "%-10s  %-16s  %-9s  %-28s  %-16s  %s\n",
			shortID(e.DecisionID), e.Decision.HealthState, e.Decision.PriorityFocus,
			joinCodes(e.Decision.ReasonCodes), subject, e.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}

	fmt.Fprintf(w, "\nState distribution (all journaled):\n")
	for _, c := range counts {
		fmt.Fprintf(w, "  %-16s %d\n", c.State, c.Count)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode
func runDetailMode(w io.Writer, j *journal.Journal, id string, jsonOut bool) error {
	e, err := j.Get(id)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(w, e)
	}

	fmt.Fprintf(w, "Decision:    %s\n", e.DecisionID)
	if e.Subject != "" {
		fmt.Fprintf(w, "Subject:     %s\n", e.Subject)
	}
	fmt.Fprintf(w, "Created:     %s\n", e.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(w, "Fingerprint: %s\n", e.Fingerprint)
	fmt.Fprintf(w, "Input:       sleep=%.1fh stress=%d hr=%d bp=%s\n\n",
		e.Input.SleepHours, e.Input.StressLevel, e.Input.RestingHR, e.Input.BloodPressure)
	printDecisionText(w, e.Decision)
	return nil
}

// #endregion detail-mode
