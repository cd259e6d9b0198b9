package input

import (
	"context"
	"time"

	"runclub/internal/domain/entities"
)

// FeedUseCase loads the upcoming-runs feed. It never fails: retrieval errors
// degrade to an empty feed.
type FeedUseCase interface {
	Upcoming(ctx context.Context, now time.Time) []entities.Event
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, event *entities.Event) error
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
}
