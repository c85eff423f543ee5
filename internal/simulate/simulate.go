// Package simulate runs the engine across a population dataset and reports
// how the population splits between health states.
package simulate

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// DefaultSpotlight is the dataset row used to check the silent-strain case:
// normal sleep and heart rate with elevated stress.
const DefaultSpotlight = 265

// #region types
// Options controls what Run keeps for the report.
type Options struct {
	Samples   int // leading rows whose briefings are printed
	Spotlight int // 1-based row number; 0 disables
}

// Outcome pairs a dataset row with its decision.
type Outcome struct {
	Row      Row
	Decision engine.Decision
}

// StateShare is one line of the state distribution.
type StateShare struct {
	State   engine.HealthState
	Count   int
	Percent float64
}

// Report is the result of a simulation run.
type Report struct {
	Total        int
	Distribution []StateShare // most severe first; states with no rows omitted
	Samples      []Outcome
	Spotlight    *Outcome
	SpotlightRow int
	Outcomes     []Outcome
}

// #endregion types

// #region run
// Run decides every row. A row the engine rejects aborts the run with its
// CSV line number.
func Run(rows []Row, opts Options) (Report, error) {
	r := Report{Total: len(rows), SpotlightRow: opts.Spotlight}
	counts := make(map[engine.HealthState]int)

	for _, row := range rows {
		d, err := engine.Decide(row.Input)
		if err != nil {
			return Report{}, fmt.Errorf("line %d: %w", row.Line, err)
		}
		counts[d.HealthState]++
		r.Outcomes = append(r.Outcomes, Outcome{Row: row, Decision: d})
	}

	for _, st := range engine.States {
		if n := counts[st]; n > 0 {
			r.Distribution = append(r.Distribution, StateShare{
				State:   st,
				Count:   n,
				Percent: float64(n) * 100 / float64(r.Total),
			})
		}
	}

	n := opts.Samples
	if n > len(r.Outcomes) {
		n = len(r.Outcomes)
	}
	if n > 0 {
		r.Samples = r.Outcomes[:n]
	}
	if opts.Spotlight > 0 && opts.Spotlight <= len(r.Outcomes) {
		o := r.Outcomes[opts.Spotlight-1]
		r.Spotlight = &o
	}
	return r, nil
}

// #endregion run

// #region write
var rule = strings.Repeat("-", 40)

// Write renders the report as plain text.
func (r Report) Write(w io.Writer) error {
	p := message.NewPrinter(language.English)
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = p.Fprintf(w, format, args...)
		}
	}

	printf("Loaded %d users for simulation.\n", r.Total)
	printf("%s\nSIMULATION REPORT\n%s\n", rule, rule)
	printf("Total Analyzed: %d\n", r.Total)

	if len(r.Samples) > 0 {
		printf("\nSample Briefings (First %d Users):\n", len(r.Samples))
		for i, o := range r.Samples {
			printf("\nUser %d Briefing:\n%s\n%s\n", i+1, o.Decision.Briefing, rule[:20])
		}
	}

	if r.Spotlight != nil {
		printf("\nTargeted Verification (User %d%s):\n", r.SpotlightRow, spotlightLabel(r.SpotlightRow))
		printf("User %d Briefing:\n%s\n%s\n", r.SpotlightRow, r.Spotlight.Decision.Briefing, rule[:20])
	} else if r.SpotlightRow > 0 {
		printf("\nTargeted Verification skipped: only %d users loaded.\n", r.Total)
	}

	printf("\nState Distribution:\n")
	for _, s := range r.Distribution {
		printf("  %s: %d (%.1f%%)\n", s.State, s.Count, s.Percent)
	}
	return err
}

func spotlightLabel(row int) string {
	if row == DefaultSpotlight {
		return " - The 'Silent Strain' Case"
	}
	return ""
}

// #endregion write
