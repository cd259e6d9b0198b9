package discord

import (
	"github.com/bwmarrin/discordgo"

	pkgdiscord "runclub/pkg/discord"
)

// interactionUser returns the invoking user for guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func (h *Handler) locale(i *discordgo.InteractionCreate) string {
	return h.translator.Match(string(i.Locale))
}

func (h *Handler) translate(locale, key string, data map[string]any) string {
	return h.translator.T(locale, key, data)
}

func (h *Handler) translateFunc(locale string) pkgdiscord.Translate {
	return func(key string, data map[string]any) string {
		return h.translator.T(locale, key, data)
	}
}

func (h *Handler) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.logger.Error("Discord respond failed", "error", err)
	}
}

func (h *Handler) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	h.respondEphemeral(s, i, h.translate(h.locale(i), pkgdiscord.ErrorKey(err), nil))
}

// updateMessage replaces the message the component belongs to.
func (h *Handler) updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	if data.Components == nil {
		data.Components = []discordgo.MessageComponent{}
	}
	if data.Embeds == nil {
		data.Embeds = []*discordgo.MessageEmbed{}
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err != nil {
		h.logger.Error("Discord message update failed", "error", err)
	}
}
