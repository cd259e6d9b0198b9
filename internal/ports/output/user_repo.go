package output

import (
	"context"
	"time"

	"runclub/internal/domain/entities"
)

// UserRepository stores club accounts. Lookups of unknown users yield
// domain.ErrUserNotFound; a duplicate e-mail yields domain.ErrEmailExists.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByDiscordID(ctx context.Context, discordID string) (*entities.User, error)
	UpdateProfile(ctx context.Context, id, displayName, photoURL string) error
	LinkDiscord(ctx context.Context, id, discordID string) error
}

// SessionRepository stores issued sessions so they can be revoked.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByID(ctx context.Context, id string) (*entities.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}
