package discord

import (
	"github.com/bwmarrin/discordgo"

	"runclub/internal/application"
)

// HandleComponent routes Join, Leave and the leave confirmation buttons.
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, eventID, ok := parseComponentID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}
	profile, ok := h.resolveViewer(s, i)
	if !ok {
		return
	}
	view := h.views.Get(viewKey(interactionUser(i).ID), profile.UID)

	switch action {
	case actionJoin:
		h.handleJoin(s, i, view, eventID)
	case actionLeave:
		h.handleLeave(s, i, view, eventID)
	case actionLeaveConfirm:
		h.handleLeaveConfirm(s, i, view)
	case actionLeaveCancel:
		view.Gate.Cancel()
		h.updateMessage(s, i, &discordgo.InteractionResponseData{
			Content: h.translate(h.locale(i), "leave.cancelled", nil),
		})
	default:
		h.respondEphemeral(s, i, h.translate(h.locale(i), "discord.unknown_action", nil))
	}
}

func (h *Handler) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, view *application.View, eventID string) {
	ctx, cancel := h.context()
	defer cancel()
	if err := view.Board.Join(ctx, eventID); err != nil {
		h.respondError(s, i, err)
		return
	}
	// The board flips the button to Leave in place.
	h.updateMessage(s, i, h.feedMessage(h.locale(i), view.Board.Cards()))
}

// handleLeave opens the confirmation gate; nothing is removed yet.
func (h *Handler) handleLeave(s *discordgo.Session, i *discordgo.InteractionCreate, view *application.View, eventID string) {
	ctx, cancel := h.context()
	defer cancel()
	event, err := h.events.GetEvent(ctx, eventID)
	if err != nil {
		h.respondError(s, i, err)
		return
	}
	if err := view.RequestLeave(event); err != nil {
		h.respondError(s, i, err)
		return
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: h.leaveDialog(h.locale(i), event.Title),
	})
	if err != nil {
		h.logger.Error("Discord respond failed", "action", actionLeave, "error", err)
	}
}

func (h *Handler) handleLeaveConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, view *application.View) {
	ctx, cancel := h.context()
	defer cancel()
	eventID, err := view.Gate.Confirm(ctx)
	if err != nil {
		h.respondError(s, i, err)
		return
	}
	title := eventID
	for _, e := range view.Board.Events() {
		if e.ID == eventID {
			title = e.Title
		}
	}
	h.updateMessage(s, i, &discordgo.InteractionResponseData{
		Content: h.translate(h.locale(i), "discord.left", map[string]any{"Title": title}),
	})
}
