package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
)

// OutcomeSuccess is recorded for runs that returned jobs; failures record
// their error kind.
const OutcomeSuccess = "success"

// Run is one recorded match request. Listings themselves are never stored.
type Run struct {
	ID       string
	RanAt    time.Time
	Search   string // saved search name, empty for ad-hoc queries
	Skills   []string
	Location string
	Count    int
	Outcome  string // OutcomeSuccess or an error kind
	Returned int
	Message  string
}

// NewRun summarizes a finished match request.
func NewRun(search string, q engine.Query, o engine.Outcome) Run {
	outcome := OutcomeSuccess
	if !o.Success {
		outcome = string(o.ErrorKind)
	}
	return Run{
		ID:       uuid.NewString(),
		RanAt:    time.Now(),
		Search:   search,
		Skills:   q.Skills,
		Location: q.Location,
		Count:    q.Count,
		Outcome:  outcome,
		Returned: len(o.Jobs),
		Message:  o.Message,
	}
}

// SQLiteStore keeps a history of match runs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// match_runs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS match_runs (
		id       TEXT PRIMARY KEY,
		ran_at   INTEGER NOT NULL,
		search   TEXT NOT NULL DEFAULT '',
		skills   TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		count    INTEGER NOT NULL,
		outcome  TEXT NOT NULL,
		returned INTEGER NOT NULL,
		message  TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating match_runs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record stores one run.
func (s *SQLiteStore) Record(r Run) error {
	_, err := s.db.Exec(
		`INSERT INTO match_runs (id, ran_at, search, skills, location, count, outcome, returned, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.RanAt.UnixNano(), r.Search, strings.Join(r.Skills, ","), r.Location,
		r.Count, r.Outcome, r.Returned, r.Message,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, ran_at, search, skills, location, count, outcome, returned, message
		 FROM match_runs ORDER BY ran_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r      Run
			ranAt  int64
			skills string
		)
		if err := rows.Scan(&r.ID, &ranAt, &r.Search, &skills, &r.Location, &r.Count, &r.Outcome, &r.Returned, &r.Message); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.RanAt = time.Unix(0, ranAt)
		if skills != "" {
			r.Skills = strings.Split(skills, ",")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing recent runs: %w", err)
	}
	return runs, nil
}

// Cleanup deletes runs older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UnixNano()
	_, err := s.db.Exec("DELETE FROM match_runs WHERE ran_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up runs older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
