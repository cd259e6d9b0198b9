package application

import (
	"context"
	"strings"
	"time"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/output"
)

type EventService struct {
	eventRepo output.EventRepository
	now       func() time.Time
}

func NewEventService(eventRepo output.EventRepository, now func() time.Time) *EventService {
	if now == nil {
		now = time.Now
	}
	return &EventService{
		eventRepo: eventRepo,
		now:       now,
	}
}

// CreateEvent validates and stores a new run. The creator is not added to the
// participant set.
func (s *EventService) CreateEvent(ctx context.Context, event *entities.Event) error {
	event.Title = strings.TrimSpace(event.Title)
	event.StartLocation = strings.TrimSpace(event.StartLocation)
	event.RecurrenceFrequency = strings.TrimSpace(event.RecurrenceFrequency)
	if event.Title == "" || event.StartLocation == "" || event.CreatorID == "" || event.ScheduledAt.IsZero() || event.DistanceKm < 0 {
		return domain.ErrInvalidEvent
	}
	if !event.ScheduledAt.After(s.now()) {
		return domain.ErrDateTimeInPast
	}
	if event.IsRecurrent() {
		if event.RecurrenceFrequency == "" {
			return domain.ErrMissingFrequency
		}
	} else {
		event.Recurrence = entities.RecurrenceSingle
		event.RecurrenceFrequency = ""
	}
	event.Participants = nil
	return s.eventRepo.Create(ctx, event)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}
