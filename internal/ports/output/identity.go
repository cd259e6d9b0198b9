package output

import (
	"context"

	"runclub/internal/domain/entities"
)

// IdentityProvider owns accounts, credentials and sessions.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (*entities.User, error)
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
	UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (*entities.User, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	CurrentUser(ctx context.Context, userID string) (*entities.User, error)

	// StartSession issues a session token for userID.
	StartSession(ctx context.Context, userID string) (string, error)
	// ResolveSession verifies a token and returns the active session and its user.
	ResolveSession(ctx context.Context, token string) (*entities.Session, *entities.User, error)
	TerminateSession(ctx context.Context, sessionID string) error

	IssueLinkCode(ctx context.Context, userID string) (string, error)
	RedeemLinkCode(ctx context.Context, code, discordID string) (*entities.User, error)
	FindByDiscordID(ctx context.Context, discordID string) (*entities.User, error)
}
