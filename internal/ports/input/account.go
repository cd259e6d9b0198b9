package input

import (
	"context"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
)

// RegistrationForm is the sign-up form as submitted.
type RegistrationForm struct {
	DisplayName     string
	Email           string
	Password        string
	PasswordConfirm string
}

// SignedIn is the outcome of a successful sign-up or log-in.
type SignedIn struct {
	Profile  entities.Profile
	Token    string
	Redirect domain.Route
}

type AccountUseCase interface {
	Register(ctx context.Context, form RegistrationForm) (*SignedIn, error)
	Login(ctx context.Context, email, password string) (*SignedIn, error)
	Logout(ctx context.Context, sessionID string) (domain.Route, error)
	Profile(ctx context.Context, userID string) (entities.Profile, error)
	UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (entities.Profile, error)

	IssueDiscordLinkCode(ctx context.Context, userID string) (string, error)
	LinkDiscord(ctx context.Context, code, discordID string) (entities.Profile, error)
	ResolveDiscordUser(ctx context.Context, discordID string) (entities.Profile, error)
}
