package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	guildID string
	handler *Handler
	logger  *slog.Logger
}

// NewBot creates a Bot for token; commands are registered in guildID, or
// globally when it is empty.
func NewBot(token, guildID string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	bot := &Bot{
		session: s,
		guildID: guildID,
		handler: handler,
		logger:  logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handler.HandleCommand(s, i)
	case discordgo.InteractionModalSubmit:
		b.handler.HandleModalSubmit(s, i)
	case discordgo.InteractionMessageComponent:
		b.handler.HandleComponent(s, i)
	}
}

// Start opens the gateway, registers the commands and blocks until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range b.handler.commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd); err != nil {
			b.logger.Warn("Discord command registration failed", "command", cmd.Name, "error", err)
		}
	}

	b.logger.Info("Discord bot online", "user", b.session.State.User.Username)
	<-ctx.Done()
	return nil
}
