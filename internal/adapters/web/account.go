package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runclub/internal/ports/input"
)

type signupRequest struct {
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

func (s *server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}
	signedIn, err := s.Accounts.Register(c.Request.Context(), input.RegistrationForm{
		DisplayName:     req.DisplayName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondSignedIn(c, http.StatusCreated, signedIn)
}

func (s *server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}
	signedIn, err := s.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondSignedIn(c, http.StatusOK, signedIn)
}

func (s *server) respondSignedIn(c *gin.Context, status int, signedIn *input.SignedIn) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, signedIn.Token, int(s.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(status, gin.H{
		"profile":  toProfileJSON(signedIn.Profile),
		"token":    signedIn.Token,
		"redirect": signedIn.Redirect,
	})
}

// logout ends the session. The client is only sent to the login page once the
// session is really terminated.
func (s *server) logout(c *gin.Context) {
	sid := sessionID(c)
	route, err := s.Accounts.Logout(c.Request.Context(), sid)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.Views.Drop(sid)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"redirect": route})
}

func (s *server) getProfile(c *gin.Context) {
	profile, err := s.Accounts.Profile(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileJSON(profile))
}

func (s *server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}
	profile, err := s.Accounts.UpdateProfile(c.Request.Context(), currentUser(c).ID, req.DisplayName, req.PhotoURL)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileJSON(profile))
}

func (s *server) discordLinkCode(c *gin.Context) {
	code, err := s.Accounts.IssueDiscordLinkCode(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": code})
}
