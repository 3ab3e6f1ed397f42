// Package sqlite implements backend persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studydesk/studydesk/internal/platform/storage/sqlitemigrate"
	"github.com/studydesk/studydesk/internal/services/backend/plan"
	"github.com/studydesk/studydesk/internal/services/backend/session"
	"github.com/studydesk/studydesk/internal/services/backend/storage"
	"github.com/studydesk/studydesk/internal/services/backend/storage/sqlite/migrations"
	"github.com/studydesk/studydesk/internal/services/backend/user"
)

// Store implements backend persistence over a single SQLite file.
//
// One file backs identity, session, and plan state so every auth subflow
// shares the same transaction and visibility boundaries.
type Store struct {
	sqlDB *sql.DB
}

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a backend SQLite store and applies bundled migrations.
//
// This keeps startup and schema evolution in one place, instead of requiring
// callers to coordinate migrations independently.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutUser persists a user record keyed by id with a unique email.
func (s *Store) PutUser(ctx context.Context, u user.User) error {
	var confirmedAt *int64
	if u.EmailConfirmedAt != nil {
		millis := toMillis(*u.EmailConfirmedAt)
		confirmedAt = &millis
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (id, email, full_name, password_hash, email_confirmed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    email = excluded.email,
    full_name = excluded.full_name,
    password_hash = excluded.password_hash,
    email_confirmed_at = excluded.email_confirmed_at,
    updated_at = excluded.updated_at
`, u.ID, u.Email, u.FullName, u.PasswordHash, confirmedAt, toMillis(u.CreatedAt), toMillis(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrEmailTaken
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, email, full_name, password_hash, email_confirmed_at, created_at, updated_at
FROM users WHERE id = ?
`, id)
	return scanUser(row)
}

// GetUserByEmail loads a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, email, full_name, password_hash, email_confirmed_at, created_at, updated_at
FROM users WHERE email = ?
`, user.NormalizeEmail(email))
	return scanUser(row)
}

// ConfirmEmail records an email confirmation timestamp.
func (s *Store) ConfirmEmail(ctx context.Context, id string, at time.Time) error {
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE users SET email_confirmed_at = ?, updated_at = ? WHERE id = ?
`, toMillis(at), toMillis(at), id)
	if err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirm email rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// PutSession persists a durable web session.
func (s *Store) PutSession(ctx context.Context, sess session.Session) error {
	var revokedAt *int64
	if sess.RevokedAt != nil {
		millis := toMillis(*sess.RevokedAt)
		revokedAt = &millis
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, created_at, expires_at, revoked_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET revoked_at = excluded.revoked_at
`, sess.ID, sess.UserID, toMillis(sess.CreatedAt), toMillis(sess.ExpiresAt), revokedAt)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads a session by id.
func (s *Store) GetSession(ctx context.Context, id string) (session.Session, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, user_id, created_at, expires_at, revoked_at
FROM sessions WHERE id = ?
`, id)

	var (
		sess      session.Session
		createdAt int64
		expiresAt int64
		revokedAt *int64
	)
	if err := row.Scan(&sess.ID, &sess.UserID, &createdAt, &expiresAt, &revokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, storage.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}
	sess.CreatedAt = fromMillis(createdAt)
	sess.ExpiresAt = fromMillis(expiresAt)
	if revokedAt != nil {
		at := fromMillis(*revokedAt)
		sess.RevokedAt = &at
	}
	return sess, nil
}

// RevokeSession marks a session revoked. Revoking an unknown session reports
// storage.ErrNotFound so callers can treat repeat sign-outs as settled.
func (s *Store) RevokeSession(ctx context.Context, id string, at time.Time) error {
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL
`, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke session rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// PutStudyPlan persists a study plan.
func (s *Store) PutStudyPlan(ctx context.Context, p plan.StudyPlan) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO study_plans (id, user_id, title, subject, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET title = excluded.title, subject = excluded.subject
`, p.ID, p.UserID, p.Title, p.Subject, toMillis(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("put study plan: %w", err)
	}
	return nil
}

// ListStudyPlans returns a user's plans ordered by creation time descending.
func (s *Store) ListStudyPlans(ctx context.Context, userID string) ([]plan.StudyPlan, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, user_id, title, subject, created_at
FROM study_plans WHERE user_id = ?
ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list study plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var plans []plan.StudyPlan
	for rows.Next() {
		var (
			p         plan.StudyPlan
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Subject, &createdAt); err != nil {
			return nil, fmt.Errorf("scan study plan: %w", err)
		}
		p.CreatedAt = fromMillis(createdAt)
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate study plans: %w", err)
	}
	return plans, nil
}

func scanUser(row *sql.Row) (user.User, error) {
	var (
		u           user.User
		confirmedAt *int64
		createdAt   int64
		updatedAt   int64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &confirmedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if confirmedAt != nil {
		at := fromMillis(*confirmedAt)
		u.EmailConfirmedAt = &at
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
