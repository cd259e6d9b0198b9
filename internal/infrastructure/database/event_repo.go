package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const eventColumns = `id, title, scheduled_at, start_location, distance_km, pace,
	recurrence, recurrence_frequency, creator_id, participants, avatar_url,
	created_at, updated_at`

// EventRepository implements output.EventRepository on PostgreSQL. The
// participant set is a TEXT[] column updated with array_append/array_remove.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	participants := event.Participants
	if participants == nil {
		participants = []string{}
	}
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (id, title, scheduled_at, start_location, distance_km, pace,
			recurrence, recurrence_frequency, creator_id, participants, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		event.ID, event.Title, timeToTimestamptz(event.ScheduledAt), event.StartLocation,
		event.DistanceKm, event.Pace, event.Recurrence, event.RecurrenceFrequency,
		event.CreatorID, participants, event.AvatarURL,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) FindUpcoming(ctx context.Context, after time.Time, limit int) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE scheduled_at > $1
		ORDER BY scheduled_at ASC
		LIMIT $2`, after, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	out := make([]entities.Event, 0, limit)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return out, nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET participants = array_append(participants, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(participants))`, eventID, userID)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.ensureExists(ctx, eventID)
	}
	return nil
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET participants = array_remove(participants, $2), updated_at = now()
		WHERE id = $1 AND $2 = ANY(participants)`, eventID, userID)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.ensureExists(ctx, eventID)
	}
	return nil
}

// ensureExists tells a no-op update apart from a missing event.
func (r *EventRepository) ensureExists(ctx context.Context, eventID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (entities.Event, error) {
	var (
		e                    entities.Event
		scheduledAt          pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&e.ID, &e.Title, &scheduledAt, &e.StartLocation, &e.DistanceKm, &e.Pace,
		&e.Recurrence, &e.RecurrenceFrequency, &e.CreatorID, &e.Participants, &e.AvatarURL,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return entities.Event{}, err
	}
	e.ScheduledAt = pgtypeTimestamptzToTime(scheduledAt)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return e, nil
}
