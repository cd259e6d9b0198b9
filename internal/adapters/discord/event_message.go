package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"runclub/internal/application"
	pkgdiscord "runclub/pkg/discord"
)

const (
	customIDPrefix = "runclub"

	actionJoin         = "join"
	actionLeave        = "leave"
	actionLeaveConfirm = "leave_confirm"
	actionLeaveCancel  = "leave_cancel"
	modalCreateRun     = "runclub:create_run"
)

func componentID(action, eventID string) string {
	if eventID == "" {
		return customIDPrefix + ":" + action
	}
	return customIDPrefix + ":" + action + ":" + eventID
}

// parseComponentID splits "runclub:<action>[:<eventID>]".
func parseComponentID(customID string) (action, eventID string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) < 2 || parts[0] != customIDPrefix || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 3 {
		eventID = parts[2]
	}
	return parts[1], eventID, true
}

// feedMessage renders the viewer's board: one embed and one Join/Leave row per run.
func (h *Handler) feedMessage(locale string, cards []application.Card) *discordgo.InteractionResponseData {
	if len(cards) == 0 {
		return &discordgo.InteractionResponseData{
			Content: h.translate(locale, "feed.empty", nil),
			Flags:   discordgo.MessageFlagsEphemeral,
		}
	}
	t := h.translateFunc(locale)
	data := &discordgo.InteractionResponseData{
		Content: h.translate(locale, "feed.title", nil),
		Flags:   discordgo.MessageFlagsEphemeral,
	}
	for _, card := range cards {
		embed := pkgdiscord.BuildEventEmbed(card.Event, h.location, t)
		if card.Disabled {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: t("card.organizer", nil)}
		}
		data.Embeds = append(data.Embeds, embed)
		data.Components = append(data.Components, cardRow(t, card))
	}
	return data
}

func cardRow(t pkgdiscord.Translate, card application.Card) discordgo.ActionsRow {
	button := discordgo.Button{
		Label:    t("card.join", nil),
		Style:    discordgo.SuccessButton,
		CustomID: componentID(actionJoin, card.Event.ID),
		Disabled: card.Disabled,
	}
	if card.Action == application.ActionLeave {
		button.Label = t("card.leave", nil)
		button.Style = discordgo.DangerButton
		button.CustomID = componentID(actionLeave, card.Event.ID)
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{button}}
}

// leaveDialog is the confirm/cancel prompt shown while the gate is pending.
func (h *Handler) leaveDialog(locale, eventTitle string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Flags: discordgo.MessageFlagsEphemeral,
		Embeds: []*discordgo.MessageEmbed{{
			Title:       h.translate(locale, "leave.title", nil),
			Description: h.translate(locale, "leave.prompt", nil) + "\n\n**" + eventTitle + "**",
			Color:       0xE74C3C,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: h.translate(locale, "leave.cancel", nil), Style: discordgo.SecondaryButton, CustomID: componentID(actionLeaveCancel, "")},
				discordgo.Button{Label: h.translate(locale, "leave.confirm", nil), Style: discordgo.DangerButton, CustomID: componentID(actionLeaveConfirm, "")},
			}},
		},
	}
}
