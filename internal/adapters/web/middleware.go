package web

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
)

const (
	sessionCookie = "runclub_session"

	localeKey  = "locale"
	userKey    = "user"
	sessionKey = "session_id"
)

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if u := currentUser(c); u != nil {
			attrs = append(attrs, "user_id", u.ID)
		}
		if c.Writer.Status() >= 500 {
			logger.Error("HTTP request", attrs...)
			return
		}
		logger.Info("HTTP request", attrs...)
	}
}

func (s *server) locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeKey, s.Translator.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// authRequired resolves the session token from the Authorization header or
// the session cookie and stores the session id and user on the context.
func (s *server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(sessionCookie)
		}
		if token == "" {
			s.abortWithError(c, domain.ErrUnauthenticated)
			return
		}
		session, user, err := s.Identity.ResolveSession(c.Request.Context(), token)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Set(sessionKey, session.ID)
		c.Set(userKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func localeOf(c *gin.Context) string {
	return c.GetString(localeKey)
}

func currentUser(c *gin.Context) *entities.User {
	v, _ := c.Get(userKey)
	u, _ := v.(*entities.User)
	return u
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
