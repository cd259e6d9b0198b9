package discord

import (
	"time"

	"runclub/internal/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x2ECC71

// Translate renders a message key with optional template data.
type Translate func(key string, data map[string]any) string

// BuildEventEmbed renders one run as an embed. Participants are shown as a
// count only.
func BuildEventEmbed(e entities.Event, loc *time.Location, t Translate) *discordgo.MessageEmbed {
	kind := t("card.type_single", nil)
	if e.IsRecurrent() {
		kind = t("card.type_recurrent", nil)
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "📅", Value: t("card.date", map[string]any{"Date": FormatEventDateTime(e.ScheduledAt, loc)}), Inline: true},
		{Name: "📍", Value: t("card.location", map[string]any{"Location": e.StartLocation}), Inline: true},
		{Name: "🏃", Value: t("card.distance", map[string]any{"Km": FormatDistance(e.DistanceKm)}), Inline: true},
	}
	if e.Pace != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "⏱️", Value: t("card.pace", map[string]any{"Pace": e.Pace}), Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "🔁", Value: t("card.type", map[string]any{"Type": kind}), Inline: true})
	if e.IsRecurrent() {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "🗓️", Value: t("card.frequency", map[string]any{"Frequency": e.RecurrenceFrequency}), Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "👥", Value: t("card.participants", map[string]any{"Count": len(e.Participants)}), Inline: true})

	embed := &discordgo.MessageEmbed{
		Title:     e.Title,
		Color:     embedColor,
		Fields:    fields,
		Timestamp: e.ScheduledAt.UTC().Format(time.RFC3339),
	}
	if e.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.AvatarURL}
	}
	return embed
}
