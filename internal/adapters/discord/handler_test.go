package discord

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"runclub/internal/application"
	"runclub/internal/domain"
	"runclub/internal/domain/entities"
	"runclub/internal/infrastructure/i18n"
	pkgdiscord "runclub/pkg/discord"
)

func newTestHandler(now time.Time) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(HandlerDeps{
		Translator: i18n.NewTranslator("en", logger),
		Location:   time.UTC,
		Now:        func() time.Time { return now },
		Logger:     logger,
	})
}

func TestComponentIDRoundTrip(t *testing.T) {
	tests := []struct {
		id          string
		action, evt string
		ok          bool
	}{
		{componentID(actionJoin, "e1"), actionJoin, "e1", true},
		{componentID(actionLeaveConfirm, ""), actionLeaveConfirm, "", true},
		{"runclub:leave:with:colons", actionLeave, "with:colons", true},
		{"btn_join", "", "", false},
		{"other:join:e1", "", "", false},
		{"runclub:", "", "", false},
	}
	for _, tt := range tests {
		action, evt, ok := parseComponentID(tt.id)
		if action != tt.action || evt != tt.evt || ok != tt.ok {
			t.Errorf("parseComponentID(%q) = %q, %q, %v", tt.id, action, evt, ok)
		}
	}
}

func TestFeedMessage(t *testing.T) {
	h := newTestHandler(time.Now())
	at := time.Date(2026, 6, 7, 8, 0, 0, 0, time.UTC)
	member := entities.Event{ID: "e1", Title: "Easy", ScheduledAt: at, CreatorID: "owner", Participants: []string{"u1"}}
	other := entities.Event{ID: "e2", Title: "Tempo", ScheduledAt: at.Add(time.Hour), CreatorID: "owner"}
	own := entities.Event{ID: "e3", Title: "Mine", ScheduledAt: at.Add(2 * time.Hour), CreatorID: "u1"}

	data := h.feedMessage("en", []application.Card{
		application.CardFor(member, "u1"),
		application.CardFor(other, "u1"),
		application.CardFor(own, "u1"),
	})
	if data.Content != "Upcoming runs:" || len(data.Embeds) != 3 || len(data.Components) != 3 {
		t.Fatalf("feed = %+v", data)
	}

	buttonOf := func(i int) discordgo.Button {
		row := data.Components[i].(discordgo.ActionsRow)
		return row.Components[0].(discordgo.Button)
	}
	if b := buttonOf(0); b.Label != "Leave Event" || b.CustomID != "runclub:leave:e1" {
		t.Errorf("member button = %+v", b)
	}
	if b := buttonOf(1); b.Label != "Join Event" || b.CustomID != "runclub:join:e2" || b.Disabled {
		t.Errorf("join button = %+v", b)
	}
	if b := buttonOf(2); !b.Disabled {
		t.Errorf("organizer button should be disabled: %+v", b)
	}
	if data.Embeds[2].Footer == nil || data.Embeds[2].Footer.Text != "You organize this run" {
		t.Errorf("organizer footer = %+v", data.Embeds[2].Footer)
	}

	empty := h.feedMessage("fr", nil)
	if empty.Content != "Aucune sortie à venir." || len(empty.Components) != 0 {
		t.Errorf("empty feed = %+v", empty)
	}
}

func TestLeaveDialog(t *testing.T) {
	h := newTestHandler(time.Now())
	data := h.leaveDialog("en", "Sunday long run")
	if data.Embeds[0].Title != "Leave Event" {
		t.Errorf("title = %q", data.Embeds[0].Title)
	}
	row := data.Components[0].(discordgo.ActionsRow)
	cancel := row.Components[0].(discordgo.Button)
	confirm := row.Components[1].(discordgo.Button)
	if cancel.Label != "Cancel" || cancel.CustomID != "runclub:leave_cancel" {
		t.Errorf("cancel = %+v", cancel)
	}
	if confirm.Label != "Leave" || confirm.CustomID != "runclub:leave_confirm" {
		t.Errorf("confirm = %+v", confirm)
	}
}

func TestRunFromModal(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	h := newTestHandler(now)

	event, err := h.runFromModal(map[string]string{
		"title": "Hills", "date": "02/03/2026", "time": "07:00", "location": "Montmartre", "distance": "9,5",
	}, "u1", "https://img/u1.png")
	if err != nil {
		t.Fatalf("runFromModal: %v", err)
	}
	if !event.ScheduledAt.Equal(time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)) || event.DistanceKm != 9.5 || event.CreatorID != "u1" {
		t.Fatalf("event = %+v", event)
	}

	tests := []struct {
		values map[string]string
		want   error
	}{
		{map[string]string{"date": "2026-03-02", "time": "07:00"}, pkgdiscord.ErrInvalidDate},
		{map[string]string{"date": "02/03/2026", "time": "7am"}, pkgdiscord.ErrInvalidTime},
		{map[string]string{"date": "01/03/2026", "time": "07:00"}, domain.ErrDateTimeInPast},
		{map[string]string{"date": "02/03/2026", "time": "07:00", "distance": "far"}, pkgdiscord.ErrInvalidDistance},
	}
	for _, tt := range tests {
		if _, err := h.runFromModal(tt.values, "u1", ""); !errors.Is(err, tt.want) {
			t.Errorf("runFromModal(%v) = %v, want %v", tt.values, err, tt.want)
		}
	}
}

func TestCommandsAreLocalized(t *testing.T) {
	h := newTestHandler(time.Now())
	cmds := h.commands()
	if len(cmds) != 3 {
		t.Fatalf("commands = %d", len(cmds))
	}
	runs := cmds[0]
	if runs.Name != commandRuns || runs.Description != "Show the upcoming runs" {
		t.Errorf("runs = %+v", runs)
	}
	if got := (*runs.DescriptionLocalizations)[discordgo.French]; got != "Afficher les prochaines sorties" {
		t.Errorf("french description = %q", got)
	}
	link := cmds[2]
	if len(link.Options) != 1 || !link.Options[0].Required || link.Options[0].Name != "code" {
		t.Errorf("link options = %+v", link.Options)
	}
}
