package discord

import (
	"context"
	"log/slog"
	"time"

	"runclub/internal/application"
	"runclub/internal/ports/input"
	"runclub/internal/ports/output"
)

const interactionTimeout = 10 * time.Second

// Translator renders messages and picks a supported locale for a Discord locale.
type Translator interface {
	output.T
	Match(acceptLanguage string) string
}

// Handler handles Discord interactions using use cases. Each Discord user gets
// a board and a confirmation gate from the shared view registry.
type Handler struct {
	accounts   input.AccountUseCase
	events     input.EventUseCase
	views      *application.Views
	translator Translator
	location   *time.Location
	channelID  string
	now        func() time.Time
	logger     *slog.Logger
}

type HandlerDeps struct {
	Accounts   input.AccountUseCase
	Events     input.EventUseCase
	Views      *application.Views
	Translator Translator
	Location   *time.Location
	ChannelID  string
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		accounts:   deps.Accounts,
		events:     deps.Events,
		views:      deps.Views,
		translator: deps.Translator,
		location:   loc,
		channelID:  deps.ChannelID,
		now:        now,
		logger:     deps.Logger,
	}
}

func viewKey(discordUserID string) string {
	return "discord:" + discordUserID
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), interactionTimeout)
}
