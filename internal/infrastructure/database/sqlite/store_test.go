package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "runclub.db")
	store, err := Open(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  ", slog.Default()); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runclub.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	first, err := Open(path, logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	e := &entities.Event{Title: "Tempo", ScheduledAt: time.Now().Add(time.Hour), StartLocation: "Park", CreatorID: "o"}
	if err := first.Events().Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = first.Close()

	second, err := Open(path, logger)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if _, err := second.Events().FindByID(ctx, e.ID); err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
}

func TestEventLifecycle(t *testing.T) {
	store := openTestStore(t)
	events := store.Events()
	ctx := context.Background()
	at := time.Date(2030, 6, 1, 7, 30, 0, 0, time.UTC)

	e := &entities.Event{
		Title:               "Sunday long run",
		ScheduledAt:         at,
		StartLocation:       "Bois de Vincennes",
		DistanceKm:          18.5,
		Pace:                "5:45",
		Recurrence:          entities.RecurrenceRecurrent,
		RecurrenceFrequency: "weekly",
		CreatorID:           "owner",
	}
	if err := events.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("create did not fill id/timestamps: %+v", e)
	}

	got, err := events.FindByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.ScheduledAt.Equal(at) || got.DistanceKm != 18.5 || got.RecurrenceFrequency != "weekly" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Participants) != 0 {
		t.Fatalf("participants = %v, want empty", got.Participants)
	}

	if _, err := events.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("find missing: got %v", err)
	}
}

func TestParticipantSetSemantics(t *testing.T) {
	store := openTestStore(t)
	events := store.Events()
	ctx := context.Background()
	e := &entities.Event{Title: "Intervals", ScheduledAt: time.Now().Add(24 * time.Hour), StartLocation: "Track", CreatorID: "owner"}
	if err := events.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	participants := func() []string {
		t.Helper()
		got, err := events.FindByID(ctx, e.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		return got.Participants
	}

	for range 2 {
		if err := events.AddParticipant(ctx, e.ID, "u1"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := events.AddParticipant(ctx, e.ID, "u2"); err != nil {
		t.Fatalf("add u2: %v", err)
	}
	if got := participants(); !slices.Equal(got, []string{"u1", "u2"}) {
		t.Fatalf("after adds: %v", got)
	}

	if err := events.RemoveParticipant(ctx, e.ID, "u1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := events.RemoveParticipant(ctx, e.ID, "u1"); err != nil {
		t.Fatalf("remove again: %v", err)
	}
	if got := participants(); !slices.Equal(got, []string{"u2"}) {
		t.Fatalf("after removes: %v", got)
	}

	if err := events.RemoveParticipant(ctx, e.ID, "u2"); err != nil {
		t.Fatalf("remove last: %v", err)
	}
	if got := participants(); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}

	if err := events.AddParticipant(ctx, "missing", "u1"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("add to missing: %v", err)
	}
	if err := events.RemoveParticipant(ctx, "missing", "u1"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("remove from missing: %v", err)
	}
}

func TestConcurrentJoinsAreNotLost(t *testing.T) {
	store := openTestStore(t)
	events := store.Events()
	ctx := context.Background()
	e := &entities.Event{Title: "Easy", ScheduledAt: time.Now().Add(time.Hour), StartLocation: "Park", CreatorID: "owner"}
	if err := events.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	users := []string{"a", "b", "c", "d", "e", "f"}
	var wg sync.WaitGroup
	errs := make(chan error, len(users))
	for _, u := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- events.AddParticipant(ctx, e.ID, u)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got, err := events.FindByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	slices.Sort(got.Participants)
	if !slices.Equal(got.Participants, users) {
		t.Fatalf("participants = %v, want %v", got.Participants, users)
	}
}

func TestFindUpcoming(t *testing.T) {
	store := openTestStore(t)
	events := store.Events()
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	offsets := []time.Duration{-time.Hour, 0, 5 * time.Hour, time.Hour, 3 * time.Hour, 2 * time.Hour, 6 * time.Hour, 4 * time.Hour}
	for i, off := range offsets {
		e := &entities.Event{Title: "run", ScheduledAt: now.Add(off), StartLocation: "x", CreatorID: "o"}
		e.Title = e.Title + string(rune('A'+i))
		if err := events.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := events.FindUpcoming(ctx, now, 5)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, e := range got {
		want := now.Add(time.Duration(i+1) * time.Hour)
		if !e.ScheduledAt.Equal(want) {
			t.Errorf("got[%d] at %v, want %v", i, e.ScheduledAt, want)
		}
	}
}

func TestUsersAndSessions(t *testing.T) {
	store := openTestStore(t)
	users, sessions := store.Users(), store.Sessions()
	ctx := context.Background()

	u := &entities.User{Email: "ada@example.com", DisplayName: "Ada", PasswordHash: "hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	dup := &entities.User{Email: "ada@example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, dup); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("duplicate email: got %v", err)
	}

	if err := users.UpdateProfile(ctx, u.ID, "Ada L.", "https://img/ada.png"); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	got, err := users.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if got.DisplayName != "Ada L." || got.PhotoURL != "https://img/ada.png" || got.DiscordID != "" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := users.UpdateProfile(ctx, "missing", "x", ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("update missing: got %v", err)
	}

	other := &entities.User{Email: "bob@example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, other); err != nil {
		t.Fatalf("create other: %v", err)
	}
	if err := users.LinkDiscord(ctx, other.ID, "42"); err != nil {
		t.Fatalf("link other: %v", err)
	}
	if err := users.LinkDiscord(ctx, u.ID, "42"); err != nil {
		t.Fatalf("relink: %v", err)
	}
	linked, err := users.FindByDiscordID(ctx, "42")
	if err != nil || linked.ID != u.ID {
		t.Fatalf("find by discord: %+v, %v", linked, err)
	}
	if _, err := users.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("find missing: got %v", err)
	}

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &entities.Session{UserID: u.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := sessions.Create(ctx, s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := sessions.Revoke(ctx, s.ID, now.Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	gotSession, err := sessions.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("find session: %v", err)
	}
	if gotSession.Active(now.Add(2*time.Minute)) || !gotSession.RevokedAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("session should be revoked: %+v", gotSession)
	}
	if err := sessions.Revoke(ctx, "missing", now); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("revoke missing: got %v", err)
	}
}
