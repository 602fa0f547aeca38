package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/pollbooth/internal/adapters/events"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/events/amqp"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/session/redis"
	"github.com/vncsmyrnk/pollbooth/internal/config"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
	"github.com/vncsmyrnk/pollbooth/internal/core/services"
	"golang.org/x/time/rate"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pollStore, closeStore, err := openPollStore(cfg)
	if err != nil {
		slog.Error("failed to open poll store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	sessions, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	publisher, closePublisher, err := openPublisher(cfg)
	if err != nil {
		slog.Error("failed to open vote event publisher", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	caster := services.NewVoteCaster(pollStore, publisher)
	pollService := services.NewPollService(pollStore, sessions)
	voteService := services.NewVoteService(pollStore, sessions, caster)

	handler := http.NewHandler(
		http.NewPollHandler(pollService),
		http.NewVoteHandler(voteService),
		http.RouterOptions{
			Session: http.SessionOptions{
				CookieDomain: cfg.CookieDomain,
				CookieSecure: cfg.CookieSecure,
			},
			Verifier:  http.NewTokenVerifier(cfg.JWTSecret),
			VoteLimit: rate.Limit(float64(cfg.VoteRatePerMinute) / 60),
			VoteBurst: cfg.VoteRateBurst,
		},
	)
	server := &stdhttp.Server{Addr: "0.0.0.0:" + cfg.Port, Handler: handler}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func openPollStore(cfg config.Config) (ports.PollStore, func(), error) {
	if cfg.PollStore == "memory" {
		slog.Warn("using in-memory poll store, polls are lost on restart")
		return memory.NewPollStore(), func() {}, nil
	}

	pg := cfg.Postgres
	db, err := postgres.Connect(postgres.DSN(pg.User, pg.Password, pg.Host, pg.Port, pg.DB), 15*time.Second)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewPollStore(db, cfg.StoreTimeout), func() { _ = db.Close() }, nil
}

func openSessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR is empty, sessions are kept in process memory; use Redis outside development", "ttl", cfg.SessionTTL)
		return memory.NewSessionStore(cfg.SessionTTL), func() {}, nil
	}

	client, err := redis.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewSessionStore(client, cfg.SessionTTL, cfg.StoreTimeout), func() { _ = client.Close() }, nil
}

func openPublisher(cfg config.Config) (ports.VoteEventPublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		return events.Nop{}, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL, 5, 5*time.Second)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if err := amqp.DeclareQueue(ch, cfg.RabbitMQQueue); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return amqp.NewPublisher(ch, cfg.RabbitMQQueue), closeFn, nil
}
