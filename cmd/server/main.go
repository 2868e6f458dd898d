package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/uzih05/DOMO/internal/adapter/driven/persistence/memory"
	"github.com/uzih05/DOMO/internal/adapter/driven/persistence/postgres"
	redisadapter "github.com/uzih05/DOMO/internal/adapter/driven/presence/redis"
	handler "github.com/uzih05/DOMO/internal/adapter/driving/http"
	"github.com/uzih05/DOMO/internal/config"
	"github.com/uzih05/DOMO/internal/core/port"
	"github.com/uzih05/DOMO/internal/core/service"
)

func main() {
	cfg := config.Load()

	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		l = l.Level(level)
	}

	ctx := context.Background()

	var (
		messages port.MessageRepository
		projects port.ProjectStore
		sessions port.SessionStore
		presence port.PresenceStore
	)

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			l.Fatal().Err(err).Msg("Failed to connect to postgres")
		}
		defer pool.Close()
		messages = postgres.NewMessageRepository(pool)
		projects = postgres.NewProjectStore(pool)
		sessions = postgres.NewSessionStore(pool)
		l.Info().Msg("Using postgres stores")
	} else {
		messages = memory.NewMessageRepository()
		projects = memory.NewOpenProjectStore()
		sessions = memory.NewSessionStore()
		l.Warn().Msg("No DATABASE_URL set, using in-memory stores")
	}

	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		presence = redisadapter.NewPresenceStore(rdb, cfg.PresenceTTL)
		sessions = redisadapter.NewSessionStore(rdb)
		l.Info().Str("addr", cfg.RedisAddr).Msg("Using redis presence and sessions")
	} else {
		presence = memory.NewPresenceStore(cfg.PresenceTTL)
	}

	// Voice and board are independent room universes: signaling bursts in a
	// voice room must not stall board fan-out.
	voiceRegistry := service.NewRegistry()
	voiceIndex := service.NewParticipantIndex()
	voiceDispatch := service.NewDispatcher(voiceRegistry, voiceIndex, l)
	voice := service.NewVoice(voiceRegistry, voiceIndex, voiceDispatch, l)

	boardRegistry := service.NewRegistry()
	boardDispatch := service.NewDispatcher(boardRegistry, nil, l)
	board := service.NewBoard(boardRegistry, boardDispatch, l)

	chat := service.NewChat(messages, 0, l)
	pres := service.NewPresence(presence, 0, l)

	h := handler.NewHandler(voice, board, chat, pres, sessions, projects, cfg.SessionCookie, l)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	voice.Shutdown()
	board.Shutdown()
	l.Info().Msg("Server exited")
}
