package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/studydesk/studydesk/internal/services/backend/plan"
	"github.com/studydesk/studydesk/internal/services/backend/session"
	"github.com/studydesk/studydesk/internal/services/backend/storage"
	"github.com/studydesk/studydesk/internal/services/backend/user"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "backend.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testUser(id, email string) user.User {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return user.User{
		ID:           id,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("Open(empty) error = nil, want error")
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := testUser("user-1", "ada@example.com")
	if err := store.PutUser(ctx, u); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}

	got, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Email != "ada@example.com" || got.FullName != "Test User" {
		t.Fatalf("GetUser() = %+v", got)
	}
	if got.EmailConfirmedAt != nil {
		t.Fatal("unconfirmed user has confirmation timestamp")
	}

	byEmail, err := store.GetUserByEmail(ctx, " ADA@example.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if byEmail.ID != "user-1" {
		t.Fatalf("GetUserByEmail() ID = %q, want user-1", byEmail.ID)
	}

	if _, err := store.GetUser(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetUser(missing) error = %v, want ErrNotFound", err)
	}
}

func TestPutUserDuplicateEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutUser(ctx, testUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}
	err := store.PutUser(ctx, testUser("user-2", "ada@example.com"))
	if !errors.Is(err, storage.ErrEmailTaken) {
		t.Fatalf("PutUser(duplicate email) error = %v, want ErrEmailTaken", err)
	}
}

func TestConfirmEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutUser(ctx, testUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}
	at := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := store.ConfirmEmail(ctx, "user-1", at); err != nil {
		t.Fatalf("ConfirmEmail() error = %v", err)
	}
	got, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.EmailConfirmedAt == nil || !got.EmailConfirmedAt.Equal(at) {
		t.Fatalf("EmailConfirmedAt = %v, want %v", got.EmailConfirmedAt, at)
	}

	if err := store.ConfirmEmail(ctx, "missing", at); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("ConfirmEmail(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSessionRoundTripAndRevoke(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutUser(ctx, testUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := session.Session{ID: "sess-1", UserID: "user-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := store.PutSession(ctx, sess); err != nil {
		t.Fatalf("PutSession() error = %v", err)
	}

	got, err := store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.UserID != "user-1" || got.RevokedAt != nil {
		t.Fatalf("GetSession() = %+v", got)
	}
	if !got.ActiveAt(now.Add(time.Minute)) {
		t.Fatal("stored session inactive before expiry")
	}

	if err := store.RevokeSession(ctx, "sess-1", now.Add(time.Minute)); err != nil {
		t.Fatalf("RevokeSession() error = %v", err)
	}
	got, err = store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession() after revoke error = %v", err)
	}
	if got.RevokedAt == nil {
		t.Fatal("RevokedAt = nil after revoke")
	}
	if got.ActiveAt(now.Add(2 * time.Minute)) {
		t.Fatal("revoked session still active")
	}

	// Revoking again reports not found: the session is already settled.
	if err := store.RevokeSession(ctx, "sess-1", now); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("RevokeSession(again) error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetSession(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListStudyPlansOrdered(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutUser(ctx, testUser("user-1", "ada@example.com")); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}
	if err := store.PutUser(ctx, testUser("user-2", "bob@example.com")); err != nil {
		t.Fatalf("PutUser() error = %v", err)
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range []plan.StudyPlan{
		{ID: "plan-1", UserID: "user-1", Title: "oldest", CreatedAt: base},
		{ID: "plan-2", UserID: "user-1", Title: "newest", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "plan-3", UserID: "user-1", Title: "middle", CreatedAt: base.Add(time.Hour)},
		{ID: "plan-4", UserID: "user-2", Title: "other user", CreatedAt: base.Add(3 * time.Hour)},
	} {
		if err := store.PutStudyPlan(ctx, p); err != nil {
			t.Fatalf("PutStudyPlan(%d) error = %v", i, err)
		}
	}

	plans, err := store.ListStudyPlans(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListStudyPlans() error = %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("len(plans) = %d, want 3", len(plans))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if plans[i].Title != want {
			t.Fatalf("plans[%d].Title = %q, want %q", i, plans[i].Title, want)
		}
	}

	empty, err := store.ListStudyPlans(ctx, "user-3")
	if err != nil {
		t.Fatalf("ListStudyPlans(empty) error = %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("len(empty) = %d, want 0", len(empty))
	}
}
