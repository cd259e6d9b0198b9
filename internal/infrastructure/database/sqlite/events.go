package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/output"
)

// Events returns the event repository view of the store.
func (s *Store) Events() output.EventRepository { return eventStore{s} }

type eventStore struct{ s *Store }

const eventColumns = `id, title, scheduled_at, start_location, distance_km, pace,
	recurrence, recurrence_frequency, creator_id, participants, avatar_url,
	created_at, updated_at`

func (es eventStore) Create(ctx context.Context, event *entities.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	participants := event.Participants
	if participants == nil {
		participants = []string{}
	}
	raw, err := json.Marshal(participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}
	now := es.s.now().UTC()
	_, err = es.s.sqlDB.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, toMillis(event.ScheduledAt), event.StartLocation,
		event.DistanceKm, event.Pace, event.Recurrence, event.RecurrenceFrequency,
		event.CreatorID, string(raw), event.AvatarURL, toMillis(now), toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = fromMillis(toMillis(now))
	event.UpdatedAt = event.CreatedAt
	return nil
}

func (es eventStore) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	row := es.s.sqlDB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (es eventStore) FindUpcoming(ctx context.Context, after time.Time, limit int) ([]entities.Event, error) {
	rows, err := es.s.sqlDB.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE scheduled_at > ?
		ORDER BY scheduled_at ASC
		LIMIT ?`, toMillis(after), limit)
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

func (es eventStore) AddParticipant(ctx context.Context, eventID, userID string) error {
	res, err := es.s.sqlDB.ExecContext(ctx, `
		UPDATE events
		SET participants = json_insert(participants, '$[#]', ?1), updated_at = ?3
		WHERE id = ?2
		  AND NOT EXISTS (SELECT 1 FROM json_each(events.participants) WHERE value = ?1)`,
		userID, eventID, toMillis(es.s.now()))
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return es.checkUpdated(ctx, res, eventID)
}

func (es eventStore) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	res, err := es.s.sqlDB.ExecContext(ctx, `
		UPDATE events
		SET participants = (
			SELECT COALESCE(json_group_array(value), '[]')
			FROM json_each(events.participants) WHERE value <> ?1
		), updated_at = ?3
		WHERE id = ?2
		  AND EXISTS (SELECT 1 FROM json_each(events.participants) WHERE value = ?1)`,
		userID, eventID, toMillis(es.s.now()))
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return es.checkUpdated(ctx, res, eventID)
}

// checkUpdated tells a no-op update apart from a missing event.
func (es eventStore) checkUpdated(ctx context.Context, res sql.Result, eventID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	var exists int
	if err := es.s.sqlDB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = ?)`, eventID).Scan(&exists); err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if exists == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (entities.Event, error) {
	var (
		e                                 entities.Event
		scheduledAt, createdAt, updatedAt int64
		participants                      string
	)
	err := row.Scan(
		&e.ID, &e.Title, &scheduledAt, &e.StartLocation, &e.DistanceKm, &e.Pace,
		&e.Recurrence, &e.RecurrenceFrequency, &e.CreatorID, &participants, &e.AvatarURL,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return entities.Event{}, err
	}
	if err := json.Unmarshal([]byte(participants), &e.Participants); err != nil {
		return entities.Event{}, fmt.Errorf("decode participants: %w", err)
	}
	e.ScheduledAt = fromMillis(scheduledAt)
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return e, nil
}
