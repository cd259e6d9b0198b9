package output

import (
	"context"
	"time"

	"runclub/internal/domain/entities"
)

// EventRepository stores events. AddParticipant and RemoveParticipant are
// single atomic set-union / set-removal updates on the participant field and
// never touch other fields. Missing events yield domain.ErrEventNotFound.
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	FindUpcoming(ctx context.Context, after time.Time, limit int) ([]entities.Event, error)
	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
}
