package entities

import "time"

// User is a club account.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PhotoURL     string
	PasswordHash string
	DiscordID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the read-only snapshot of a user handed to views.
type Profile struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

func (u *User) Profile() Profile {
	return Profile{
		UID:         u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
	}
}

// Session is one signed-in period of a user.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt time.Time // zero = not revoked
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt.IsZero() && now.Before(s.ExpiresAt)
}
