// Package web is the JSON HTTP surface of the club, built on gin.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"runclub/internal/application"
	"runclub/internal/ports/input"
	"runclub/internal/ports/output"
)

// Translator renders messages and negotiates a locale from Accept-Language.
type Translator interface {
	output.T
	Match(acceptLanguage string) string
}

// Pinger is satisfied by both storage backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsMiddleware provides the request instrumentation and the scrape handler.
type MetricsMiddleware interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

type Deps struct {
	Accounts   input.AccountUseCase
	Events     input.EventUseCase
	Identity   output.IdentityProvider
	Views      *application.Views
	Translator Translator
	Metrics    MetricsMiddleware
	Store      Pinger
	Logger     *slog.Logger
	SessionTTL time.Duration
}

type server struct {
	Deps
}

// NewRouter wires public endpoints and authenticated APIs.
// Public: /health, /ready, /metrics, /api/signup, /api/login
// Authenticated: everything else under /api
func NewRouter(deps Deps) *gin.Engine {
	s := &server{Deps: deps}

	r := gin.New()
	r.Use(gin.Recovery())
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware())
	}
	r.Use(requestLogger(s.Logger), s.locale())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/signup", s.signup)
	api.POST("/login", s.login)

	authed := api.Group("/")
	authed.Use(s.authRequired())

	authed.GET("/profile", s.getProfile)
	authed.PUT("/profile", s.updateProfile)
	authed.POST("/profile/discord-link", s.discordLinkCode)
	authed.POST("/logout", s.logout)

	authed.GET("/events/upcoming", s.upcoming)
	authed.POST("/events", s.createEvent)
	authed.GET("/events/:id", s.getEvent)
	authed.POST("/events/:id/join", s.join)
	authed.POST("/events/:id/leave", s.requestLeave)

	authed.GET("/leave", s.leaveState)
	authed.POST("/leave/confirm", s.confirmLeave)
	authed.POST("/leave/cancel", s.cancelLeave)

	return r
}
