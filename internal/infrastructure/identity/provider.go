// Package identity is the built-in identity provider: bcrypt credentials,
// JWT session tokens backed by revocable session rows, and Discord link codes.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/ports/output"
)

// LinkCodeTTL bounds how long a Discord link code can be redeemed.
const LinkCodeTTL = 10 * time.Minute

var _ output.IdentityProvider = (*Provider)(nil)

type Provider struct {
	users      output.UserRepository
	sessions   output.SessionRepository
	hasher     *Hasher
	tokens     *TokenManager
	sessionTTL time.Duration
	now        func() time.Time
}

type Options struct {
	Secret     string
	SessionTTL time.Duration
	BcryptCost int
	Now        func() time.Time
}

func NewProvider(users output.UserRepository, sessions output.SessionRepository, opts Options) *Provider {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Provider{
		users:      users,
		sessions:   sessions,
		hasher:     NewHasher(opts.BcryptCost),
		tokens:     NewTokenManager(opts.Secret, now),
		sessionTTL: opts.SessionTTL,
		now:        now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) CreateAccount(ctx context.Context, email, password, displayName string) (*entities.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if err := p.hasher.Validate(password); err != nil {
		return nil, err
	}
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *Provider) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return p.users.UpdateProfile(ctx, userID, displayName, user.PhotoURL)
}

func (p *Provider) UpdateProfile(ctx context.Context, userID, displayName, photoURL string) (*entities.User, error) {
	if err := p.users.UpdateProfile(ctx, userID, displayName, photoURL); err != nil {
		return nil, err
	}
	return p.users.FindByID(ctx, userID)
}

func (p *Provider) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := p.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := p.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *Provider) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return p.users.FindByID(ctx, userID)
}

func (p *Provider) StartSession(ctx context.Context, userID string) (string, error) {
	now := p.now()
	session := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(p.sessionTTL),
	}
	if err := p.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return p.tokens.Generate(userID, purposeSession, session.ID, p.sessionTTL)
}

func (p *Provider) ResolveSession(ctx context.Context, token string) (*entities.Session, *entities.User, error) {
	claims, err := p.tokens.Validate(token, purposeSession)
	if err != nil {
		return nil, nil, domain.ErrUnauthenticated
	}
	session, err := p.sessions.FindByID(ctx, claims.ID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}
	if session.UserID != claims.UserID || !session.Active(p.now()) {
		return nil, nil, domain.ErrSessionExpired
	}
	user, err := p.users.FindByID(ctx, session.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (p *Provider) TerminateSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrSessionNotFound
	}
	return p.sessions.Revoke(ctx, sessionID, p.now())
}

func (p *Provider) IssueLinkCode(ctx context.Context, userID string) (string, error) {
	if _, err := p.users.FindByID(ctx, userID); err != nil {
		return "", err
	}
	return p.tokens.Generate(userID, purposeDiscordLink, uuid.NewString(), LinkCodeTTL)
}

func (p *Provider) RedeemLinkCode(ctx context.Context, code, discordID string) (*entities.User, error) {
	if discordID == "" {
		return nil, domain.ErrLinkCodeInvalid
	}
	claims, err := p.tokens.Validate(code, purposeDiscordLink)
	if err != nil {
		return nil, domain.ErrLinkCodeInvalid
	}
	if err := p.users.LinkDiscord(ctx, claims.UserID, discordID); err != nil {
		return nil, err
	}
	return p.users.FindByID(ctx, claims.UserID)
}

func (p *Provider) FindByDiscordID(ctx context.Context, discordID string) (*entities.User, error) {
	if discordID == "" {
		return nil, domain.ErrUserNotFound
	}
	return p.users.FindByDiscordID(ctx, discordID)
}
