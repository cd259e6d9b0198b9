package web

import (
	"strconv"
	"time"

	"runclub/internal/application"
	"runclub/internal/domain/entities"
)

type eventJSON struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	ScheduledAt         time.Time `json:"scheduled_at"`
	StartLocation       string    `json:"start_location"`
	DistanceKm          float64   `json:"distance_km"`
	Pace                string    `json:"pace,omitempty"`
	Recurrence          string    `json:"recurrence"`
	RecurrenceFrequency string    `json:"recurrence_frequency,omitempty"`
	CreatorID           string    `json:"creator_id"`
	Participants        []string  `json:"participants"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
}

type cardJSON struct {
	Event            eventJSON `json:"event"`
	Joined           bool      `json:"joined"`
	Action           string    `json:"action"`
	ActionLabel      string    `json:"action_label"`
	Disabled         bool      `json:"disabled"`
	ParticipantCount int       `json:"participant_count"`
	Details          []string  `json:"details"`
}

type profileJSON struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

func toEventJSON(e entities.Event) eventJSON {
	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	return eventJSON{
		ID:                  e.ID,
		Title:               e.Title,
		ScheduledAt:         e.ScheduledAt,
		StartLocation:       e.StartLocation,
		DistanceKm:          e.DistanceKm,
		Pace:                e.Pace,
		Recurrence:          e.Recurrence,
		RecurrenceFrequency: e.RecurrenceFrequency,
		CreatorID:           e.CreatorID,
		Participants:        participants,
		AvatarURL:           e.AvatarURL,
	}
}

func toProfileJSON(p entities.Profile) profileJSON {
	return profileJSON{UID: p.UID, DisplayName: p.DisplayName, Email: p.Email, PhotoURL: p.PhotoURL}
}

func (s *server) toCardJSON(locale string, card application.Card) cardJSON {
	label := "card.join"
	if card.Action == application.ActionLeave {
		label = "card.leave"
	}
	return cardJSON{
		Event:            toEventJSON(card.Event),
		Joined:           card.Joined,
		Action:           card.Action,
		ActionLabel:      s.Translator.T(locale, label, nil),
		Disabled:         card.Disabled,
		ParticipantCount: card.ParticipantCount,
		Details:          s.details(locale, card),
	}
}

// details renders the event lines shown under a card title.
func (s *server) details(locale string, card application.Card) []string {
	e := card.Event
	t := s.Translator.T
	lines := []string{
		t(locale, "card.distance", map[string]any{"Km": strconv.FormatFloat(e.DistanceKm, 'f', -1, 64)}),
	}
	if e.Pace != "" {
		lines = append(lines, t(locale, "card.pace", map[string]any{"Pace": e.Pace}))
	}
	kind := t(locale, "card.type_single", nil)
	if e.IsRecurrent() {
		kind = t(locale, "card.type_recurrent", nil)
	}
	lines = append(lines, t(locale, "card.type", map[string]any{"Type": kind}))
	if e.IsRecurrent() {
		lines = append(lines, t(locale, "card.frequency", map[string]any{"Frequency": e.RecurrenceFrequency}))
	}
	lines = append(lines, t(locale, "card.participants", map[string]any{"Count": card.ParticipantCount}))
	if card.Disabled {
		lines = append(lines, t(locale, "card.organizer", nil))
	}
	return lines
}
