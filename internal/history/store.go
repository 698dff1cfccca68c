package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Record is one persisted evaluation outcome.
type Record struct {
	ID         string    `json:"id"`
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"ts"`
	Category   string    `json:"category"`
	Approved   []string  `json:"approved"`
	Rejected   []string  `json:"rejected"`
	Confidence float64   `json:"confidence"`
	Deferred   bool      `json:"deferred"`
	Reason     string    `json:"reason"`
	ConfigHash string    `json:"config_hash"`
}

// Stats aggregates stored evaluations for reporting.
type Stats struct {
	Total         int            `json:"total"`
	Deferred      int            `json:"deferred"`
	AvgConfidence float64        `json:"avg_confidence"`
	ByCategory    map[string]int `json:"by_category"`
}

// Store persists evaluation records in SQLite. Unlike the decision log,
// history is queryable: the CLI reads it back for listings and stats.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		ts TEXT NOT NULL,
		category TEXT NOT NULL,
		approved JSON,
		rejected JSON,
		confidence REAL NOT NULL DEFAULT 0,
		deferred INTEGER NOT NULL DEFAULT 0,
		reason TEXT,
		config_hash TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_evaluations_run ON evaluations(run_id);`
	_, err := s.db.ExecContext(context.Background(), query)
	if err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Insert stores a record. A missing ID or Timestamp is filled in.
func (s *Store) Insert(ctx context.Context, r Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	approvedJSON, _ := json.Marshal(r.Approved)
	rejectedJSON, _ := json.Marshal(r.Rejected)

	query := `INSERT INTO evaluations (
		id, run_id, ts, category, approved, rejected, confidence, deferred, reason, config_hash
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.RunID, r.Timestamp.UTC().Format(time.RFC3339Nano), r.Category,
		string(approvedJSON), string(rejectedJSON), r.Confidence, boolToInt(r.Deferred),
		r.Reason, r.ConfigHash,
	)
	if err != nil {
		return fmt.Errorf("history: insert evaluation: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, run_id, ts, category, approved, rejected, confidence, deferred, reason, config_hash
		FROM evaluations
		ORDER BY ts DESC
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByRun returns all records for a run, oldest first.
func (s *Store) ListByRun(ctx context.Context, runID string) ([]Record, error) {
	query := `
		SELECT id, run_id, ts, category, approved, rejected, confidence, deferred, reason, config_hash
		FROM evaluations
		WHERE run_id = ?
		ORDER BY ts ASC`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("history: list run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Stats aggregates all stored evaluations.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByCategory: map[string]int{}}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(deferred), 0), COALESCE(AVG(confidence), 0)
		FROM evaluations`)
	if err := row.Scan(&stats.Total, &stats.Deferred, &stats.AvgConfidence); err != nil {
		return Stats{}, fmt.Errorf("history: stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM evaluations GROUP BY category`)
	if err != nil {
		return Stats{}, fmt.Errorf("history: stats by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return Stats{}, err
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		r            Record
		ts           string
		approvedJSON sql.NullString
		rejectedJSON sql.NullString
		deferred     int
		reason       sql.NullString
		configHash   sql.NullString
	)
	if err := rows.Scan(&r.ID, &r.RunID, &ts, &r.Category, &approvedJSON, &rejectedJSON,
		&r.Confidence, &deferred, &reason, &configHash); err != nil {
		return Record{}, err
	}

	r.Timestamp = parseTime(ts)
	r.Deferred = deferred != 0
	r.Reason = reason.String
	r.ConfigHash = configHash.String
	if approvedJSON.Valid && approvedJSON.String != "" {
		_ = json.Unmarshal([]byte(approvedJSON.String), &r.Approved)
	}
	if rejectedJSON.Valid && rejectedJSON.String != "" {
		_ = json.Unmarshal([]byte(rejectedJSON.String), &r.Rejected)
	}
	return r, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
