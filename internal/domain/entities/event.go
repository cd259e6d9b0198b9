package entities

import (
	"slices"
	"time"
)

const (
	RecurrenceRecurrent = "recurrent"
	RecurrenceSingle    = "single"
)

// Event is a scheduled group run.
type Event struct {
	ID                  string
	Title               string
	ScheduledAt         time.Time
	StartLocation       string
	DistanceKm          float64
	Pace                string // min/km, e.g. "5:30"
	Recurrence          string
	RecurrenceFrequency string // only meaningful when Recurrence == RecurrenceRecurrent
	CreatorID           string
	Participants        []string
	AvatarURL           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (e *Event) IsRecurrent() bool {
	return e.Recurrence == RecurrenceRecurrent
}

func (e *Event) IsCreator(userID string) bool {
	return userID != "" && e.CreatorID == userID
}

func (e *Event) HasParticipant(userID string) bool {
	return slices.Contains(e.Participants, userID)
}

// CanToggle reports whether userID may join or leave the event themselves.
// The organizer never joins or leaves explicitly.
func (e *Event) CanToggle(userID string) bool {
	return userID != "" && !e.IsCreator(userID)
}

// WithParticipant returns a copy of the event with userID added to the
// participant set. Adding an id that is already present is a no-op.
func (e Event) WithParticipant(userID string) Event {
	out := e
	out.Participants = slices.Clone(e.Participants)
	if !slices.Contains(out.Participants, userID) {
		out.Participants = append(out.Participants, userID)
	}
	return out
}

// WithoutParticipant returns a copy of the event with every occurrence of
// userID removed from the participant set.
func (e Event) WithoutParticipant(userID string) Event {
	out := e
	out.Participants = slices.DeleteFunc(slices.Clone(e.Participants), func(id string) bool {
		return id == userID
	})
	return out
}
