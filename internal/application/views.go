package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/input"
)

// View is the client-side state kept for one viewer: the feed board and the
// leave confirmation gate.
type View struct {
	Board *Board
	Gate  *ConfirmationGate

	lastSeen time.Time
}

// RequestLeave opens the gate on event for the viewer. The organizer is
// rejected and any pending request is kept.
func (v *View) RequestLeave(event *entities.Event) error {
	if !event.CanToggle(v.Board.ViewerID()) {
		return domain.ErrCreatorParticipation
	}
	v.Gate.RequestLeave(event.ID)
	return nil
}

// Views keeps one View per viewer key (a session id, or "discord:<id>").
type Views struct {
	feed         input.FeedUseCase
	participants input.ParticipantUseCase
	now          func() time.Time
	logger       *slog.Logger

	mu    sync.Mutex
	views map[string]*View
}

func NewViews(feed input.FeedUseCase, participants input.ParticipantUseCase, now func() time.Time, logger *slog.Logger) *Views {
	if now == nil {
		now = time.Now
	}
	return &Views{
		feed:         feed,
		participants: participants,
		now:          now,
		logger:       logger,
		views:        make(map[string]*View),
	}
}

// Get returns the view for key, creating it for viewerID if needed.
func (v *Views) Get(key, viewerID string) *View {
	v.mu.Lock()
	defer v.mu.Unlock()
	view, ok := v.views[key]
	if !ok || view.Board.ViewerID() != viewerID {
		board := NewBoard(viewerID, v.feed, v.participants, v.now, v.logger)
		view = &View{Board: board, Gate: NewConfirmationGate(board)}
		v.views[key] = view
	}
	view.lastSeen = v.now()
	return view
}

func (v *Views) Drop(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.views, key)
}

func (v *Views) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.views)
}

// Sweep drops views not used for longer than idle and returns how many were dropped.
func (v *Views) Sweep(idle time.Duration) int {
	cutoff := v.now().Add(-idle)
	v.mu.Lock()
	defer v.mu.Unlock()
	dropped := 0
	for key, view := range v.views {
		if view.lastSeen.Before(cutoff) {
			delete(v.views, key)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle views every interval until ctx is done.
func (v *Views) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := v.Sweep(idle); n > 0 {
				v.logger.Debug("Idle views dropped", "count", n)
			}
		}
	}
}
