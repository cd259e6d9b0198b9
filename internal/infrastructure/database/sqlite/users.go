package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/output"
)

// Users returns the user repository view of the store.
func (s *Store) Users() output.UserRepository { return userStore{s} }

// Sessions returns the session repository view of the store.
func (s *Store) Sessions() output.SessionRepository { return sessionStore{s} }

type userStore struct{ s *Store }

const userColumns = `id, email, display_name, photo_url, password_hash, discord_id, created_at, updated_at`

func (u userStore) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := u.s.now().UTC()
	_, err := u.s.sqlDB.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.DisplayName, user.PhotoURL, user.PasswordHash,
		nullString(user.DiscordID), toMillis(now), toMillis(now),
	)
	if isUniqueViolation(err) {
		return domain.ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = fromMillis(toMillis(now))
	user.UpdatedAt = user.CreatedAt
	return nil
}

func (u userStore) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return u.findOne(ctx, "id", id)
}

func (u userStore) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return u.findOne(ctx, "email", email)
}

func (u userStore) FindByDiscordID(ctx context.Context, discordID string) (*entities.User, error) {
	return u.findOne(ctx, "discord_id", discordID)
}

func (u userStore) findOne(ctx context.Context, column, value string) (*entities.User, error) {
	var (
		user                 entities.User
		discordID            sql.NullString
		createdAt, updatedAt int64
	)
	err := u.s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value).Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.PasswordHash, &discordID, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	user.DiscordID = discordID.String
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return &user, nil
}

func (u userStore) UpdateProfile(ctx context.Context, id, displayName, photoURL string) error {
	res, err := u.s.sqlDB.ExecContext(ctx, `
		UPDATE users SET display_name = ?, photo_url = ?, updated_at = ? WHERE id = ?`,
		displayName, photoURL, toMillis(u.s.now()), id)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return userAffected(res)
}

func (u userStore) LinkDiscord(ctx context.Context, id, discordID string) error {
	tx, err := u.s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := toMillis(u.s.now())
	if _, err := tx.ExecContext(ctx, `UPDATE users SET discord_id = NULL, updated_at = ? WHERE discord_id = ? AND id <> ?`, now, discordID, id); err != nil {
		return fmt.Errorf("unlink discord: %w", err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE users SET discord_id = ?, updated_at = ? WHERE id = ?`, discordID, now, id)
	if err != nil {
		return fmt.Errorf("link discord: %w", err)
	}
	if err := userAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func userAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type sessionStore struct{ s *Store }

func (ss sessionStore) Create(ctx context.Context, session *entities.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	_, err := ss.s.sqlDB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, toMillis(session.CreatedAt), toMillis(session.ExpiresAt))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (ss sessionStore) FindByID(ctx context.Context, id string) (*entities.Session, error) {
	var (
		session              entities.Session
		createdAt, expiresAt int64
		revokedAt            sql.NullInt64
	)
	err := ss.s.sqlDB.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.UserID, &createdAt, &expiresAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiresAt)
	session.RevokedAt = nullMillis(revokedAt)
	return &session, nil
}

func (ss sessionStore) Revoke(ctx context.Context, id string, at time.Time) error {
	res, err := ss.s.sqlDB.ExecContext(ctx, `
		UPDATE sessions SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?`, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
