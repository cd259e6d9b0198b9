package discord

import (
	"github.com/bwmarrin/discordgo"

	"runclub/internal/domain/entities"
	pkgdiscord "runclub/pkg/discord"
)

const (
	commandRuns = "runs"
	commandRun  = "run"
	commandLink = "link"

	placeholderTitle    = "Sunday long run"
	placeholderDate     = "15/03/2026"
	placeholderTime     = "07:30"
	placeholderLocation = "Parc de Sceaux"
	placeholderDistance = "12.5"
)

// commands builds the slash commands with English descriptions and French
// localizations.
func (h *Handler) commands() []*discordgo.ApplicationCommand {
	describe := func(key string) (string, *map[discordgo.Locale]string) {
		return h.translate("en", key, nil), &map[discordgo.Locale]string{
			discordgo.French: h.translate("fr", key, nil),
		}
	}
	runsDesc, runsLoc := describe("command.runs")
	runDesc, runLoc := describe("command.run")
	linkDesc, linkLoc := describe("command.link")
	codeDesc, codeLoc := describe("command.link_code")

	return []*discordgo.ApplicationCommand{
		{Name: commandRuns, Description: runsDesc, DescriptionLocalizations: runsLoc},
		{Name: commandRun, Description: runDesc, DescriptionLocalizations: runLoc},
		{
			Name:                     commandLink,
			Description:              linkDesc,
			DescriptionLocalizations: linkLoc,
			Options: []*discordgo.ApplicationCommandOption{{
				Type:                     discordgo.ApplicationCommandOptionString,
				Name:                     "code",
				Description:              codeDesc,
				DescriptionLocalizations: *codeLoc,
				Required:                 true,
			}},
		},
	}
}

// HandleCommand routes slash commands.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case commandRuns:
		h.handleRuns(s, i)
	case commandRun:
		h.handleRunModal(s, i)
	case commandLink:
		h.handleLink(s, i)
	}
}

// resolveViewer maps the Discord user to a club profile.
func (h *Handler) resolveViewer(s *discordgo.Session, i *discordgo.InteractionCreate) (entities.Profile, bool) {
	user := interactionUser(i)
	if user == nil {
		h.respondEphemeral(s, i, h.translate(h.locale(i), "errors.unauthenticated", nil))
		return entities.Profile{}, false
	}
	ctx, cancel := h.context()
	defer cancel()
	profile, err := h.accounts.ResolveDiscordUser(ctx, user.ID)
	if err != nil {
		h.respondError(s, i, err)
		return entities.Profile{}, false
	}
	return profile, true
}

func (h *Handler) handleRuns(s *discordgo.Session, i *discordgo.InteractionCreate) {
	profile, ok := h.resolveViewer(s, i)
	if !ok {
		return
	}
	ctx, cancel := h.context()
	defer cancel()

	board := h.views.Get(viewKey(interactionUser(i).ID), profile.UID).Board
	board.Load(ctx)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: h.feedMessage(h.locale(i), board.Cards()),
	})
	if err != nil {
		h.logger.Error("Discord respond failed", "command", commandRuns, "error", err)
	}
}

func (h *Handler) handleRunModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := h.resolveViewer(s, i); !ok {
		return
	}
	locale := h.locale(i)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalCreateRun,
			Title:    h.translate(locale, "modal.title", nil),
			Components: []discordgo.MessageComponent{
				pkgdiscord.TextInputRow("title", h.translate(locale, "modal.field_title", nil), placeholderTitle, true),
				pkgdiscord.TextInputRow("date", h.translate(locale, "modal.field_date", nil), placeholderDate, true),
				pkgdiscord.TextInputRow("time", h.translate(locale, "modal.field_time", nil), placeholderTime, true),
				pkgdiscord.TextInputRow("location", h.translate(locale, "modal.field_location", nil), placeholderLocation, true),
				pkgdiscord.TextInputRow("distance", h.translate(locale, "modal.field_distance", nil), placeholderDistance, false),
			},
		},
	})
	if err != nil {
		h.logger.Error("Discord modal failed", "error", err)
	}
}

func (h *Handler) handleLink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	var code string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "code" {
			code = opt.StringValue()
		}
	}
	if user == nil || code == "" {
		h.respondEphemeral(s, i, h.translate(h.locale(i), "errors.link_code_invalid", nil))
		return
	}
	ctx, cancel := h.context()
	defer cancel()
	profile, err := h.accounts.LinkDiscord(ctx, code, user.ID)
	if err != nil {
		h.respondError(s, i, err)
		return
	}
	// The previous board belonged to whichever account was linked before.
	h.views.Drop(viewKey(user.ID))
	h.respondEphemeral(s, i, h.translate(h.locale(i), "discord.linked", map[string]any{"Name": profile.DisplayName}))
}
