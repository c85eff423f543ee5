package simulate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// #region columns
const (
	colSleep      = "Sleep Duration"
	colStress     = "Stress Level"
	colHeartRate  = "Heart Rate"
	colBP         = "Blood Pressure"
	colAge        = "Age"
	colOccupation = "Occupation"
)

var requiredColumns = []string{colSleep, colStress, colHeartRate, colBP}

// #endregion columns

// #region row
// Row is one person from the sleep-health dataset. Line is the 1-based CSV
// line the row came from, header included.
type Row struct {
	Line       int
	Input      engine.BiometricInput
	Age        int
	Occupation string
}

// #endregion row

// #region load
// LoadDataset reads the sleep-health CSV. Columns are matched by header
// name, so extra columns and any column order are accepted. Age and
// Occupation are optional.
func LoadDataset(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string, idx map[string]int) (Row, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	sleep, err := strconv.ParseFloat(field(colSleep), 64)
	if err != nil {
		return Row{}, fmt.Errorf("column %q: %w", colSleep, err)
	}
	stress, err := strconv.Atoi(field(colStress))
	if err != nil {
		return Row{}, fmt.Errorf("column %q: %w", colStress, err)
	}
	hr, err := strconv.Atoi(field(colHeartRate))
	if err != nil {
		return Row{}, fmt.Errorf("column %q: %w", colHeartRate, err)
	}

	row := Row{
		Input: engine.BiometricInput{
			SleepHours:    sleep,
			StressLevel:   stress,
			RestingHR:     hr,
			BloodPressure: field(colBP),
		},
		Occupation: field(colOccupation),
	}
	if age := field(colAge); age != "" {
		if row.Age, err = strconv.Atoi(age); err != nil {
			return Row{}, fmt.Errorf("column %q: %w", colAge, err)
		}
	}
	return row, nil
}

// #endregion load
