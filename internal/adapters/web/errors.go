package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runclub/internal/domain"
)

const (
	codeBadRequest = "bad_request"
	codeInternal   = "internal"
)

func statusFor(code string) int {
	switch code {
	case "event_not_found", "user_not_found":
		return http.StatusNotFound
	case "datetime_in_past", "invalid_event", "missing_frequency",
		"password_mismatch", "weak_password", "invalid_profile",
		"link_code_invalid", "account_creation", codeBadRequest:
		return http.StatusBadRequest
	case "creator_participation", "no_pending_leave", "email_exists":
		return http.StatusConflict
	case "login_failed", "invalid_credentials", "unauthenticated",
		"session_expired", "session_not_found":
		return http.StatusUnauthorized
	case "account_not_linked":
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// errorBody maps err to a status and a localized {"error","code"} body.
func (s *server) errorBody(c *gin.Context, err error) (int, gin.H) {
	code := domain.Code(err)
	if code == "" {
		code = codeInternal
	}
	return statusFor(code), gin.H{
		"error": s.Translator.T(localeOf(c), "errors."+code, nil),
		"code":  code,
	}
}

func (s *server) respondError(c *gin.Context, err error) {
	status, body := s.errorBody(c, err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, body)
}

func (s *server) abortWithError(c *gin.Context, err error) {
	status, body := s.errorBody(c, err)
	c.AbortWithStatusJSON(status, body)
}

func (s *server) respondBadRequest(c *gin.Context, err error) {
	s.Logger.Debug("Invalid request payload", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadRequest, gin.H{
		"error": s.Translator.T(localeOf(c), "errors."+codeBadRequest, nil),
		"code":  codeBadRequest,
	})
}
