package application

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"runclub/internal/domain/entities"
	"runclub/internal/ports/input"
)

const (
	ActionJoin  = "join"
	ActionLeave = "leave"
)

// Card is the per-viewer rendering state of one event.
type Card struct {
	Event            entities.Event
	Joined           bool
	Action           string
	Disabled         bool
	ParticipantCount int
}

// Board is one viewer's local copy of the upcoming-runs feed. It is derived
// from the store: Load replaces it, Join and Leave patch it after the remote
// update succeeded. A failed update leaves the board as it was.
type Board struct {
	viewerID     string
	feed         input.FeedUseCase
	participants input.ParticipantUseCase
	now          func() time.Time
	logger       *slog.Logger

	mu     sync.Mutex
	events []entities.Event
}

func NewBoard(viewerID string, feed input.FeedUseCase, participants input.ParticipantUseCase, now func() time.Time, logger *slog.Logger) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{
		viewerID:     viewerID,
		feed:         feed,
		participants: participants,
		now:          now,
		logger:       logger,
	}
}

func (b *Board) ViewerID() string { return b.viewerID }

// Load replaces the board with a fresh feed.
func (b *Board) Load(ctx context.Context) []entities.Event {
	events := b.feed.Upcoming(ctx, b.now())
	b.mu.Lock()
	b.events = events
	b.mu.Unlock()
	return b.Events()
}

// Events returns a copy of the board.
func (b *Board) Events() []entities.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entities.Event, len(b.events))
	for i, e := range b.events {
		out[i] = e
		out[i].Participants = slices.Clone(e.Participants)
	}
	return out
}

func (b *Board) Join(ctx context.Context, eventID string) error {
	if err := b.participants.JoinEvent(ctx, eventID, b.viewerID); err != nil {
		b.logger.Error("Error joining event", "event_id", eventID, "user_id", b.viewerID, "error", err)
		return err
	}
	b.apply(eventID, func(e entities.Event) entities.Event { return e.WithParticipant(b.viewerID) })
	return nil
}

func (b *Board) Leave(ctx context.Context, eventID string) error {
	if err := b.participants.LeaveEvent(ctx, eventID, b.viewerID); err != nil {
		b.logger.Error("Error leaving event", "event_id", eventID, "user_id", b.viewerID, "error", err)
		return err
	}
	b.apply(eventID, func(e entities.Event) entities.Event { return e.WithoutParticipant(b.viewerID) })
	return nil
}

func (b *Board) apply(eventID string, fn func(entities.Event) entities.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.events {
		if b.events[i].ID == eventID {
			b.events[i] = fn(b.events[i])
		}
	}
}

// Cards derives the view model of every event on the board.
func (b *Board) Cards() []Card {
	events := b.Events()
	cards := make([]Card, len(events))
	for i, e := range events {
		cards[i] = CardFor(e, b.viewerID)
	}
	return cards
}

// CardFor derives the view model of one event for viewerID.
func CardFor(e entities.Event, viewerID string) Card {
	joined := e.HasParticipant(viewerID)
	action := ActionJoin
	if joined {
		action = ActionLeave
	}
	return Card{
		Event:            e,
		Joined:           joined,
		Action:           action,
		Disabled:         !e.CanToggle(viewerID),
		ParticipantCount: len(e.Participants),
	}
}
