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

var _ output.UserRepository = (*UserRepository)(nil)

const userColumns = `id, email, display_name, photo_url, password_hash, discord_id, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, display_name, photo_url, password_hash, discord_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.DisplayName, user.PhotoURL, user.PasswordHash, textOrNull(user.DiscordID),
	).Scan(&createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return domain.ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	user.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *UserRepository) FindByDiscordID(ctx context.Context, discordID string) (*entities.User, error) {
	return r.findOne(ctx, "discord_id", discordID)
}

// findOne looks a user up by a fixed column name; column is never user input.
func (r *UserRepository) findOne(ctx context.Context, column, value string) (*entities.User, error) {
	var (
		u                    entities.User
		discordID            pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.PasswordHash, &discordID, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	u.DiscordID = discordID.String
	u.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	u.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, displayName, photoURL string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET display_name = $2, photo_url = $3, updated_at = now()
		WHERE id = $1`, id, displayName, photoURL)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// LinkDiscord attaches discordID to the user, detaching it from any other
// account first.
func (r *UserRepository) LinkDiscord(ctx context.Context, id, discordID string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE users SET discord_id = NULL, updated_at = now() WHERE discord_id = $1 AND id <> $2`, discordID, id); err != nil {
			return fmt.Errorf("unlink discord: %w", err)
		}
		tag, err := tx.Exec(ctx, `UPDATE users SET discord_id = $2, updated_at = now() WHERE id = $1`, id, discordID)
		if err != nil {
			return fmt.Errorf("link discord: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

var _ output.SessionRepository = (*SessionRepository)(nil)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, s *entities.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		s.ID, s.UserID, timeToTimestamptz(s.CreatedAt), timeToTimestamptz(s.ExpiresAt))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entities.Session, error) {
	var (
		s                               entities.Session
		createdAt, expiresAt, revokedAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, created_at, expires_at, revoked_at
		FROM sessions WHERE id = $1`, id).Scan(&s.ID, &s.UserID, &createdAt, &expiresAt, &revokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	s.ExpiresAt = pgtypeTimestamptzToTime(expiresAt)
	s.RevokedAt = pgtypeTimestamptzToTime(revokedAt)
	return &s, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE sessions SET revoked_at = COALESCE(revoked_at, $2)
		WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
