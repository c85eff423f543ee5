package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/config"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

// #region output
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return enc.Close()
}

func printDecisionText(w io.Writer, d engine.Decision) {
	fmt.Fprintf(w, "State:    %s\n", d.HealthState)
	fmt.Fprintf(w, "Focus:    %s\n", d.PriorityFocus)
	fmt.Fprintf(w, "Workout:  %s\n", yesNo(d.WorkoutAllowed))
	fmt.Fprintf(w, "Nap:      %s\n", yesNo(d.NapRecommended))
	fmt.Fprintf(w, "Reasons:  %s\n", joinCodes(d.ReasonCodes))
	fmt.Fprintf(w, "Bedtime:  %s (work cutoff %s)\n", d.RecommendedBedtime, d.WorkCutoffTime)
	fmt.Fprintf(w, "Water:    %.1f L\n", d.HydrationTargetLiters)
	fmt.Fprintf(w, "\n%s\n", d.Briefing)
}

func printDecision(w io.Writer, format string, d engine.Decision) error {
	switch format {
	case "json":
		return printJSON(w, d)
	case "yaml":
		return printYAML(w, d)
	case "text":
		printDecisionText(w, d)
		return nil
	default:
		return fmt.Errorf("unknown format %q (json, yaml, text)", format)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinCodes(codes []engine.ReasonCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output

// #region journal
// openJournal opens the journal at dbPath, or at the configured db_path
// when dbPath is empty.
func openJournal(dbPath string) (*journal.Journal, error) {
	if dbPath == "" {
		cfg, err := config.Load("")
		if err != nil {
			return nil, err
		}
		dbPath = cfg.DBPath
	}
	j, err := journal.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", dbPath, err)
	}
	return j, nil
}

// #endregion journal
