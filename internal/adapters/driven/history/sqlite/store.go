// Package sqlite persists session records in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	ts           DATETIME NOT NULL,
	question     TEXT NOT NULL,
	answer       TEXT NOT NULL,
	route        TEXT NOT NULL,
	mean_score   REAL NOT NULL,
	min_score    REAL NOT NULL,
	result_count INTEGER NOT NULL,
	topic        TEXT NOT NULL DEFAULT '',
	retrieved    TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_sessions_ts ON sessions(ts DESC);
`

// Store records sessions in SQLite. WAL mode plus a busy timeout lets
// concurrent conversations append without interleaving.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite history store at the specified data
// directory. If dataDir is empty, defaults to ~/.lore/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lore", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Append inserts one session record. Records are never updated.
func (s *Store) Append(ctx context.Context, rec domain.SessionRecord) error {
	retrieved, err := json.Marshal(rec.Retrieved)
	if err != nil {
		return fmt.Errorf("encoding retrieved sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, ts, question, answer, route, mean_score, min_score, result_count, topic, retrieved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.Question,
		rec.Answer,
		string(rec.Routing.Route),
		rec.Routing.MeanScore,
		rec.Routing.MinScore,
		rec.Routing.ResultCount,
		rec.Topic,
		string(retrieved),
	)
	if err != nil {
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	query := `
		SELECT id, ts, question, answer, route, mean_score, min_score, result_count, topic, retrieved
		FROM sessions ORDER BY ts DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var records []domain.SessionRecord
	for rows.Next() {
		var (
			rec       domain.SessionRecord
			ts        string
			route     string
			retrieved string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Question, &rec.Answer, &route,
			&rec.Routing.MeanScore, &rec.Routing.MinScore, &rec.Routing.ResultCount,
			&rec.Topic, &retrieved); err != nil {
			return nil, fmt.Errorf("scanning session record: %w", err)
		}

		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing session timestamp: %w", err)
		}
		rec.Routing.Route = domain.Route(route)
		if err := json.Unmarshal([]byte(retrieved), &rec.Retrieved); err != nil {
			return nil, fmt.Errorf("decoding retrieved sources: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}
