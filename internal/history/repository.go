package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shutdowntimer/internal/platform"

	_ "modernc.org/sqlite"
)

// DatabaseFileName is the history database inside the app directory.
const DatabaseFileName = "history.db"

// Repository stores countdown sessions in sqlite.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (and creates if needed) the database at path.
func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return repo, nil
}

// OpenForApp opens the history database in the app's config directory.
func OpenForApp(appName string) (*Repository, error) {
	appDir, err := platform.AppDir(appName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return NewRepository(filepath.Join(appDir, DatabaseFileName))
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		deadline TEXT NOT NULL,
		ended_at TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT ''
	)
	`
	_, err := r.db.Exec(query)
	return err
}

// Create inserts a running session and returns it with its ID.
func (r *Repository) Create(startedAt, deadline time.Time) (*Session, error) {
	result, err := r.db.Exec(
		"INSERT INTO sessions (started_at, deadline, outcome) VALUES (?, ?, ?)",
		startedAt.Format(time.RFC3339),
		deadline.Format(time.RFC3339),
		string(OutcomeRunning),
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		ID:        id,
		StartedAt: startedAt,
		Deadline:  deadline,
		Outcome:   OutcomeRunning,
	}, nil
}

// Finish records how session id ended.
func (r *Repository) Finish(id int64, endedAt time.Time, outcome Outcome, detail string) error {
	_, err := r.db.Exec(
		"UPDATE sessions SET ended_at = ?, outcome = ?, detail = ? WHERE id = ?",
		endedAt.Format(time.RFC3339), string(outcome), detail, id,
	)
	if err != nil {
		return fmt.Errorf("finish session %d: %w", id, err)
	}
	return nil
}

// CloseRunning marks every still-running session as stopped. Used when the
// program exits with a countdown armed.
func (r *Repository) CloseRunning(endedAt time.Time) error {
	_, err := r.db.Exec(
		"UPDATE sessions SET ended_at = ?, outcome = ? WHERE outcome = ?",
		endedAt.Format(time.RFC3339), string(OutcomeStopped), string(OutcomeRunning),
	)
	if err != nil {
		return fmt.Errorf("close running sessions: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (r *Repository) Recent(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(
		"SELECT id, started_at, deadline, ended_at, outcome, detail FROM sessions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt, deadline, endedAt, outcome string
		if err := rows.Scan(&s.ID, &startedAt, &deadline, &endedAt, &outcome, &s.Detail); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, fmt.Errorf("session %d started_at: %w", s.ID, err)
		}
		if s.Deadline, err = parseTime(deadline); err != nil {
			return nil, fmt.Errorf("session %d deadline: %w", s.ID, err)
		}
		if endedAt != "" {
			if s.EndedAt, err = parseTime(endedAt); err != nil {
				return nil, fmt.Errorf("session %d ended_at: %w", s.ID, err)
			}
		}
		s.Outcome = Outcome(outcome)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}
