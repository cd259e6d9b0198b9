package input

import "context"

type ParticipantUseCase interface {
	JoinEvent(ctx context.Context, eventID, userID string) error
	LeaveEvent(ctx context.Context, eventID, userID string) error
}
