package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store manages persistence of repair sessions.
type Store struct {
	db *DB
}

// NewStore creates a new history store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Record saves a session and its per-reference outcomes in one transaction.
// A missing session ID is generated.
func (s *Store) Record(ctx context.Context, sess Session, repairs []Repair) (*Session, error) {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, scene, search_root, scanned, missing, repaired)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.CreatedAt, sess.Scene, sess.SearchRoot, sess.Scanned, sess.Missing, sess.Repaired,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	for _, r := range repairs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO repairs (session_id, node, old_path, new_path, outcome)
			 VALUES (?, ?, ?, ?, ?)`,
			sess.ID, r.Node, r.OldPath, r.NewPath, string(r.Outcome),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting repair for %s: %w", r.Node, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing session: %w", err)
	}
	return &sess, nil
}

// GetSession retrieves a session by its ID. Returns nil if not found.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, scene, search_root, scanned, missing, repaired
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.Scene, &sess.SearchRoot, &sess.Scanned, &sess.Missing, &sess.Repaired)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns the most recent sessions, newest first. A limit of 0
// returns everything.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	query := `SELECT id, created_at, scene, search_root, scanned, missing, repaired
		 FROM sessions ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.CreatedAt, &sess.Scene, &sess.SearchRoot,
			&sess.Scanned, &sess.Missing, &sess.Repaired); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// ListRepairs returns the per-reference outcomes of a session in insertion
// order.
func (s *Store) ListRepairs(ctx context.Context, sessionID string) ([]Repair, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, node, old_path, new_path, outcome
		 FROM repairs WHERE session_id = ? ORDER BY rowid`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing repairs: %w", err)
	}
	defer rows.Close()

	var out []Repair
	for rows.Next() {
		var r Repair
		var outcome string
		if err := rows.Scan(&r.SessionID, &r.Node, &r.OldPath, &r.NewPath, &outcome); err != nil {
			return nil, fmt.Errorf("scanning repair row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		out = append(out, r)
	}
	return out, rows.Err()
}
