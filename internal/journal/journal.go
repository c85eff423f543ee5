// Package journal keeps an append-only SQLite record of decisions made on
// behalf of callers. The engine itself never persists anything; transports
// and the CLI write here when journaling is enabled.
package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	decision_id    TEXT PRIMARY KEY,
	subject        TEXT,
	input_json     TEXT NOT NULL,
	decision_json  TEXT NOT NULL,
	health_state   TEXT NOT NULL,
	fingerprint    TEXT NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at);
CREATE INDEX IF NOT EXISTS idx_decisions_state ON decisions(health_state);
`

// timeLayout keeps fractional seconds fixed-width so created_at sorts
// lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
// #endregion schema

// #region journal-struct
// Journal manages the decisions table.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}
// #endregion journal-struct

// #region constructor
// Open opens (or creates) a SQLite database and runs migrations.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Journal{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// DB returns the underlying *sql.DB.
func (j *Journal) DB() *sql.DB {
	return j.db
}
// #endregion close

// #region record
// Record stores a decision under a fresh ID.
func (j *Journal) Record(subject string, in engine.BiometricInput, d engine.Decision) (Entry, error) {
	fp, err := Fingerprint(d)
	if err != nil {
		return Entry{}, err
	}
	inputJSON, err := json.Marshal(in)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal input: %w", err)
	}
	decisionJSON, err := json.Marshal(d)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal decision: %w", err)
	}

	e := Entry{
		DecisionID:  uuid.New().String(),
		Subject:     subject,
		Input:       in,
		Decision:    d,
		Fingerprint: fp,
		CreatedAt:   j.now(),
	}

	_, err = j.db.Exec(
		`INSERT INTO decisions (decision_id, subject, input_json, decision_json, health_state, fingerprint, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.DecisionID, nullIfEmpty(subject), string(inputJSON), string(decisionJSON),
		string(d.HealthState), fp, e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert decision: %w", err)
	}

	log.Printf("[JOURNAL] recorded %s state=%s subject=%q", e.DecisionID, d.HealthState, subject)
	return e, nil
}
// #endregion record

// #region get
// Get retrieves a single decision by ID. Unknown IDs yield ErrNotFound.
func (j *Journal) Get(id string) (Entry, error) {
	row := j.db.QueryRow(
		`SELECT decision_id, subject, input_json, decision_json, fingerprint, created_at
		 FROM decisions WHERE decision_id = ?`, id,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get decision %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get decision %s: %w", id, err)
	}
	return e, nil
}
// #endregion get

// #region list
// List returns the most recent decisions, newest first.
func (j *Journal) List(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT decision_id, subject, input_json, decision_json, fingerprint, created_at
		 FROM decisions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
// #endregion list

// #region state-counts
// StateCounts returns how many journaled decisions fell into each state,
// most severe first.
func (j *Journal) StateCounts() ([]StateCount, error) {
	rows, err := j.db.Query(`SELECT health_state, COUNT(*) FROM decisions GROUP BY health_state`)
	if err != nil {
		return nil, fmt.Errorf("count states: %w", err)
	}
	defer rows.Close()

	var counts []StateCount
	for rows.Next() {
		var c StateCount
		var state string
		if err := rows.Scan(&state, &c.Count); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		c.State = engine.HealthState(state)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortBySeverity(counts)
	return counts, nil
}

func sortBySeverity(counts []StateCount) {
	sort.Slice(counts, func(a, b int) bool {
		sa, sb := counts[a].State.Severity(), counts[b].State.Severity()
		if sa != sb {
			return sa < sb
		}
		return counts[a].State < counts[b].State
	})
}
// #endregion state-counts

// #region helpers
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var subject sql.NullString
	var inputJSON, decisionJSON, createdStr string

	if err := s.Scan(&e.DecisionID, &subject, &inputJSON, &decisionJSON, &e.Fingerprint, &createdStr); err != nil {
		return Entry{}, err
	}
	if subject.Valid {
		e.Subject = subject.String
	}
	if err := json.Unmarshal([]byte(inputJSON), &e.Input); err != nil {
		return Entry{}, fmt.Errorf("unmarshal input: %w", err)
	}
	if err := json.Unmarshal([]byte(decisionJSON), &e.Decision); err != nil {
		return Entry{}, fmt.Errorf("unmarshal decision: %w", err)
	}
	e.CreatedAt, _ = time.Parse(timeLayout, createdStr)
	return e, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
