package discord

import (
	"github.com/bwmarrin/discordgo"

	"runclub/internal/domain/entities"
	pkgdiscord "runclub/pkg/discord"
)

// HandleModalSubmit routes modal submissions by CustomID.
func (h *Handler) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if data.CustomID == modalCreateRun {
		h.handleCreateRunSubmit(s, i, data)
	}
}

// runFromModal builds the event described by the create modal.
func (h *Handler) runFromModal(values map[string]string, creatorID, avatarURL string) (*entities.Event, error) {
	scheduledAt, err := pkgdiscord.ParseEventDateTime(values["date"], values["time"], h.location, h.now())
	if err != nil {
		return nil, err
	}
	distance, err := pkgdiscord.ParseDistance(values["distance"])
	if err != nil {
		return nil, err
	}
	return &entities.Event{
		Title:         values["title"],
		ScheduledAt:   scheduledAt,
		StartLocation: values["location"],
		DistanceKm:    distance,
		Recurrence:    entities.RecurrenceSingle,
		CreatorID:     creatorID,
		AvatarURL:     avatarURL,
	}, nil
}

func (h *Handler) handleCreateRunSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) {
	profile, ok := h.resolveViewer(s, i)
	if !ok {
		return
	}
	locale := h.locale(i)
	avatar := profile.PhotoURL
	if avatar == "" {
		avatar = interactionUser(i).AvatarURL("256")
	}
	event, err := h.runFromModal(pkgdiscord.ModalValues(data), profile.UID, avatar)
	if err != nil {
		h.respondError(s, i, err)
		return
	}

	ctx, cancel := h.context()
	defer cancel()
	if err := h.events.CreateEvent(ctx, event); err != nil {
		h.logger.Error("Error creating event", "user_id", profile.UID, "error", err)
		h.respondError(s, i, err)
		return
	}
	h.respondEphemeral(s, i, h.translate(locale, "discord.event_created", map[string]any{"Title": event.Title}))

	if h.channelID == "" {
		return
	}
	embed := pkgdiscord.BuildEventEmbed(*event, h.location, h.translateFunc(locale))
	if _, err := s.ChannelMessageSendEmbed(h.channelID, embed); err != nil {
		h.logger.Error("Error announcing event", "channel_id", h.channelID, "error", err)
	}
}
