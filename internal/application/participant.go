package application

import (
	"context"
	"fmt"
	"log/slog"

	"runclub/internal/domain"
	"runclub/internal/ports/output"
)

const (
	opJoin  = "join"
	opLeave = "leave"
)

// ParticipantService adds and removes the caller from an event's participant
// set. Both operations are idempotent at the storage layer; concurrent calls
// for the same event rely on the store's atomic update.
type ParticipantService struct {
	eventRepo output.EventRepository
	metrics   output.Metrics
	logger    *slog.Logger
}

func NewParticipantService(eventRepo output.EventRepository, metrics output.Metrics, logger *slog.Logger) *ParticipantService {
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	return &ParticipantService{
		eventRepo: eventRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *ParticipantService) JoinEvent(ctx context.Context, eventID, userID string) error {
	err := s.mutate(ctx, opJoin, eventID, userID)
	s.metrics.ParticipationChanged(opJoin, err)
	return err
}

func (s *ParticipantService) LeaveEvent(ctx context.Context, eventID, userID string) error {
	err := s.mutate(ctx, opLeave, eventID, userID)
	s.metrics.ParticipationChanged(opLeave, err)
	return err
}

func (s *ParticipantService) mutate(ctx context.Context, op, eventID, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.IsCreator(userID) {
		return domain.ErrCreatorParticipation
	}
	switch op {
	case opJoin:
		err = s.eventRepo.AddParticipant(ctx, eventID, userID)
	default:
		err = s.eventRepo.RemoveParticipant(ctx, eventID, userID)
	}
	if err != nil {
		return fmt.Errorf("%s event: %w", op, err)
	}
	s.logger.Debug("Participation updated", "op", op, "event_id", eventID, "user_id", userID)
	return nil
}
