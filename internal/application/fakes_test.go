package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
)

var errStore = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// memEventRepo is an in-memory EventRepository with switchable failures.
type memEventRepo struct {
	mu        sync.Mutex
	events    map[string]*entities.Event
	failRead  bool
	failWrite bool
	writes    int
}

func newMemEventRepo(events ...entities.Event) *memEventRepo {
	r := &memEventRepo{events: make(map[string]*entities.Event)}
	for i := range events {
		e := events[i]
		r.events[e.ID] = &e
	}
	return r
}

func (r *memEventRepo) Create(_ context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errStore
	}
	if event.ID == "" {
		event.ID = "generated"
	}
	e := *event
	r.events[e.ID] = &e
	return nil
}

func (r *memEventRepo) FindByID(_ context.Context, id string) (*entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRead {
		return nil, errStore
	}
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	out := *e
	out.Participants = slices.Clone(e.Participants)
	return &out, nil
}

// FindUpcoming deliberately returns unsorted, unfiltered rows so the service
// normalisation is exercised.
func (r *memEventRepo) FindUpcoming(_ context.Context, _ time.Time, _ int) ([]entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRead {
		return nil, errStore
	}
	out := make([]entities.Event, 0, len(r.events))
	for _, e := range r.events {
		c := *e
		c.Participants = slices.Clone(e.Participants)
		out = append(out, c)
	}
	return out, nil
}

func (r *memEventRepo) AddParticipant(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.failWrite {
		return errStore
	}
	e, ok := r.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	*e = e.WithParticipant(userID)
	return nil
}

func (r *memEventRepo) RemoveParticipant(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.failWrite {
		return errStore
	}
	e, ok := r.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	*e = e.WithoutParticipant(userID)
	return nil
}

func (r *memEventRepo) participants(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events[id].Participants)
}

// fakeIdentity records calls and fails on demand.
type fakeIdentity struct {
	calls          []string
	failCreate     bool
	failUpdateName bool
	failTerminate  bool
	users          map[string]*entities.User
	terminated     []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: make(map[string]*entities.User)}
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, _, displayName string) (*entities.User, error) {
	f.calls = append(f.calls, "CreateAccount")
	if f.failCreate {
		return nil, domain.ErrEmailExists
	}
	u := &entities.User{ID: "uid-" + email, Email: email}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeIdentity) UpdateDisplayName(_ context.Context, userID, displayName string) error {
	f.calls = append(f.calls, "UpdateDisplayName")
	if f.failUpdateName {
		return errStore
	}
	f.users[userID].DisplayName = displayName
	return nil
}

func (f *fakeIdentity) UpdateProfile(_ context.Context, userID, displayName, photoURL string) (*entities.User, error) {
	f.calls = append(f.calls, "UpdateProfile")
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.DisplayName, u.PhotoURL = displayName, photoURL
	return u, nil
}

func (f *fakeIdentity) Authenticate(_ context.Context, email, password string) (*entities.User, error) {
	f.calls = append(f.calls, "Authenticate")
	for _, u := range f.users {
		if u.Email == email && password == "secret123" {
			return u, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeIdentity) CurrentUser(_ context.Context, userID string) (*entities.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeIdentity) StartSession(_ context.Context, userID string) (string, error) {
	f.calls = append(f.calls, "StartSession")
	return "token-" + userID, nil
}

func (f *fakeIdentity) ResolveSession(context.Context, string) (*entities.Session, *entities.User, error) {
	return nil, nil, domain.ErrSessionNotFound
}

func (f *fakeIdentity) TerminateSession(_ context.Context, sessionID string) error {
	f.calls = append(f.calls, "TerminateSession")
	if f.failTerminate {
		return errStore
	}
	f.terminated = append(f.terminated, sessionID)
	return nil
}

func (f *fakeIdentity) IssueLinkCode(_ context.Context, userID string) (string, error) {
	return "code-" + userID, nil
}

func (f *fakeIdentity) RedeemLinkCode(_ context.Context, code, discordID string) (*entities.User, error) {
	for id, u := range f.users {
		if code == "code-"+id {
			u.DiscordID = discordID
			return u, nil
		}
	}
	return nil, domain.ErrLinkCodeInvalid
}

func (f *fakeIdentity) FindByDiscordID(_ context.Context, discordID string) (*entities.User, error) {
	for _, u := range f.users {
		if u.DiscordID != "" && u.DiscordID == discordID {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
