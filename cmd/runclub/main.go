package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"runclub/internal/adapters/discord"
	"runclub/internal/adapters/web"
	"runclub/internal/application"
	"runclub/internal/config"
	"runclub/internal/infrastructure/database"
	"runclub/internal/infrastructure/database/sqlite"
	"runclub/internal/infrastructure/i18n"
	"runclub/internal/infrastructure/identity"
	"runclub/internal/infrastructure/metrics"
	"runclub/internal/ports/output"
	"runclub/pkg/logging"
	"runclub/pkg/tz"
)

const viewSweepInterval = 5 * time.Minute

// store bundles the repositories of one backend.
type store struct {
	events   output.EventRepository
	users    output.UserRepository
	sessions output.SessionRepository
	pinger   web.Pinger
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		st, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return &store{
			events:   st.Events(),
			users:    st.Users(),
			sessions: st.Sessions(),
			pinger:   st,
			close:    func() { _ = st.Close() },
		}, nil
	}

	if err := database.RunMigrations(config.DriverPostgres, cfg.DatabaseURL, logger); err != nil {
		return nil, err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	return &store{
		events:   database.NewEventRepository(pool),
		users:    database.NewUserRepository(pool),
		sessions: database.NewSessionRepository(pool),
		pinger:   pool,
		close:    pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("runclub stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := tz.Load(cfg.ClubTimezone)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	recorder := metrics.NewRecorder()
	translator := i18n.NewTranslator(cfg.DefaultLocale, logger)
	provider := identity.NewProvider(st.users, st.sessions, identity.Options{
		Secret:     cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
	})

	accounts := application.NewAccountService(provider, logger)
	events := application.NewEventService(st.events, time.Now)
	feed := application.NewFeedService(st.events, recorder, logger)
	participants := application.NewParticipantService(st.events, recorder, logger)
	views := application.NewViews(feed, participants, time.Now, logger)
	go views.Run(ctx, viewSweepInterval, cfg.ViewIdleTimeout)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: web.NewRouter(web.Deps{
			Accounts:   accounts,
			Events:     events,
			Identity:   provider,
			Views:      views,
			Translator: translator,
			Metrics:    recorder,
			Store:      st.pinger,
			Logger:     logger,
			SessionTTL: cfg.SessionTTL,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if cfg.DiscordEnabled() {
		handler := discord.NewHandler(discord.HandlerDeps{
			Accounts:   accounts,
			Events:     events,
			Views:      views,
			Translator: translator,
			Location:   loc,
			ChannelID:  cfg.DiscordChannelID,
			Logger:     logger,
		})
		bot, err := discord.NewBot(cfg.DiscordToken, cfg.DiscordGuildID, handler, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := bot.Start(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		stop()
		shutdown(srv, logger)
		return err
	}
	shutdown(srv, logger)
	return nil
}

func shutdown(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	logger.Info("runclub stopped")
}
