package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"runclub/internal/application"
	"runclub/internal/domain/entities"
)

type createEventRequest struct {
	Title               string    `json:"title"`
	ScheduledAt         time.Time `json:"scheduled_at"`
	StartLocation       string    `json:"start_location"`
	DistanceKm          float64   `json:"distance_km"`
	Pace                string    `json:"pace"`
	Recurrence          string    `json:"recurrence"`
	RecurrenceFrequency string    `json:"recurrence_frequency"`
	AvatarURL           string    `json:"avatar_url"`
}

// view returns the board and gate of the current session.
func (s *server) view(c *gin.Context) *application.View {
	return s.Views.Get(sessionID(c), currentUser(c).ID)
}

func (s *server) upcoming(c *gin.Context) {
	locale := localeOf(c)
	board := s.view(c).Board
	board.Load(c.Request.Context())

	cards := board.Cards()
	out := make([]cardJSON, 0, len(cards))
	for _, card := range cards {
		out = append(out, s.toCardJSON(locale, card))
	}
	body := gin.H{
		"title":  s.Translator.T(locale, "feed.title", nil),
		"events": out,
	}
	if len(out) == 0 {
		body["empty"] = s.Translator.T(locale, "feed.empty", nil)
	}
	c.JSON(http.StatusOK, body)
}

func (s *server) createEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}
	user := currentUser(c)
	event := &entities.Event{
		Title:               req.Title,
		ScheduledAt:         req.ScheduledAt,
		StartLocation:       req.StartLocation,
		DistanceKm:          req.DistanceKm,
		Pace:                req.Pace,
		Recurrence:          strings.ToLower(strings.TrimSpace(req.Recurrence)),
		RecurrenceFrequency: req.RecurrenceFrequency,
		CreatorID:           user.ID,
		AvatarURL:           req.AvatarURL,
	}
	if event.AvatarURL == "" {
		event.AvatarURL = user.PhotoURL
	}
	if err := s.Events.CreateEvent(c.Request.Context(), event); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.toCardJSON(localeOf(c), application.CardFor(*event, user.ID)))
}

func (s *server) getEvent(c *gin.Context) {
	event, err := s.Events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.toCardJSON(localeOf(c), application.CardFor(*event, currentUser(c).ID)))
}

func (s *server) join(c *gin.Context) {
	view := s.view(c)
	eventID := c.Param("id")
	if err := view.Board.Join(c.Request.Context(), eventID); err != nil {
		s.respondError(c, err)
		return
	}
	s.respondCard(c, view, eventID)
}

// requestLeave opens the confirmation gate; nothing is removed until the
// leave is confirmed.
func (s *server) requestLeave(c *gin.Context) {
	eventID := c.Param("id")
	event, err := s.Events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	view := s.view(c)
	if err := view.RequestLeave(event); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, s.gateJSON(c, view.Gate))
}

func (s *server) leaveState(c *gin.Context) {
	c.JSON(http.StatusOK, s.gateJSON(c, s.view(c).Gate))
}

func (s *server) confirmLeave(c *gin.Context) {
	view := s.view(c)
	eventID, err := view.Gate.Confirm(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondCard(c, view, eventID)
}

func (s *server) cancelLeave(c *gin.Context) {
	gate := s.view(c).Gate
	gate.Cancel()
	c.JSON(http.StatusOK, s.gateJSON(c, gate))
}

func (s *server) gateJSON(c *gin.Context, gate *application.ConfirmationGate) gin.H {
	state, eventID := gate.State()
	body := gin.H{"state": state.String()}
	if state == application.GatePending {
		locale := localeOf(c)
		body["event_id"] = eventID
		body["dialog"] = gin.H{
			"title":   s.Translator.T(locale, "leave.title", nil),
			"prompt":  s.Translator.T(locale, "leave.prompt", nil),
			"cancel":  s.Translator.T(locale, "leave.cancel", nil),
			"confirm": s.Translator.T(locale, "leave.confirm", nil),
		}
	}
	return body
}

// respondCard answers with the board's copy of the event when it is on the
// board, and with the stored event otherwise.
func (s *server) respondCard(c *gin.Context, view *application.View, eventID string) {
	viewerID := view.Board.ViewerID()
	for _, e := range view.Board.Events() {
		if e.ID == eventID {
			c.JSON(http.StatusOK, s.toCardJSON(localeOf(c), application.CardFor(e, viewerID)))
			return
		}
	}
	event, err := s.Events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.toCardJSON(localeOf(c), application.CardFor(*event, viewerID)))
}
