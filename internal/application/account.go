package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/input"
	"runclub/internal/ports/output"
)

type AccountService struct {
	identity output.IdentityProvider
	logger   *slog.Logger
}

func NewAccountService(identity output.IdentityProvider, logger *slog.Logger) *AccountService {
	return &AccountService{
		identity: identity,
		logger:   logger,
	}
}

// Register creates the account, applies the display name and signs the user
// in. A password mismatch or a blank name is reported without contacting the
// identity provider; every later failure is reported as ErrAccountCreation. An account
// whose name update failed is kept as is.
func (s *AccountService) Register(ctx context.Context, form input.RegistrationForm) (*input.SignedIn, error) {
	if form.Password != form.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}
	email := strings.TrimSpace(form.Email)
	name := strings.TrimSpace(form.DisplayName)
	if name == "" {
		return nil, domain.ErrInvalidProfile
	}

	user, err := s.identity.CreateAccount(ctx, email, form.Password, name)
	if err != nil {
		s.logger.Error("Registration failed", "email", email, "error", err)
		return nil, domain.ErrAccountCreation
	}
	if err := s.identity.UpdateDisplayName(ctx, user.ID, name); err != nil {
		s.logger.Error("Display name update failed", "user_id", user.ID, "error", err)
		return nil, domain.ErrAccountCreation
	}
	user.DisplayName = name

	token, err := s.identity.StartSession(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to start session", "user_id", user.ID, "error", err)
		return nil, domain.ErrAccountCreation
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &input.SignedIn{Profile: user.Profile(), Token: token, Redirect: domain.RouteHome}, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*input.SignedIn, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrLoginFailed
	}
	user, err := s.identity.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, domain.ErrLoginFailed
	}
	token, err := s.identity.StartSession(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to start session", "user_id", user.ID, "error", err)
		return nil, domain.ErrLoginFailed
	}
	s.logger.Info("User logged in", "user_id", user.ID)
	return &input.SignedIn{Profile: user.Profile(), Token: token, Redirect: domain.RouteHome}, nil
}

// Logout terminates the session and only then hands back the login route, so
// a failed logout never shows the login page to a signed-in user.
func (s *AccountService) Logout(ctx context.Context, sessionID string) (domain.Route, error) {
	if err := s.identity.TerminateSession(ctx, sessionID); err != nil {
		s.logger.Error("Logout failed", "session_id", sessionID, "error", err)
		return "", domain.ErrLogoutFailed
	}
	return domain.RouteLogin, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (entities.Profile, error) {
	user, err := s.identity.CurrentUser(ctx, userID)
	if err != nil {
		return entities.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (entities.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return entities.Profile{}, domain.ErrInvalidProfile
	}
	user, err := s.identity.UpdateProfile(ctx, userID, displayName, strings.TrimSpace(photoURL))
	if err != nil {
		return entities.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *AccountService) IssueDiscordLinkCode(ctx context.Context, userID string) (string, error) {
	return s.identity.IssueLinkCode(ctx, userID)
}

func (s *AccountService) LinkDiscord(ctx context.Context, code, discordID string) (entities.Profile, error) {
	user, err := s.identity.RedeemLinkCode(ctx, strings.TrimSpace(code), discordID)
	if err != nil {
		return entities.Profile{}, err
	}
	s.logger.Info("Discord account linked", "user_id", user.ID, "discord_id", discordID)
	return user.Profile(), nil
}

func (s *AccountService) ResolveDiscordUser(ctx context.Context, discordID string) (entities.Profile, error) {
	user, err := s.identity.FindByDiscordID(ctx, discordID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return entities.Profile{}, domain.ErrAccountNotLinked
	}
	if err != nil {
		return entities.Profile{}, err
	}
	return user.Profile(), nil
}
