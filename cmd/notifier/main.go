package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourorg/listings-proxy/internal/env"
	"github.com/yourorg/listings-proxy/internal/logger"
	"github.com/yourorg/listings-proxy/internal/metrics"
	"github.com/yourorg/listings-proxy/internal/notify"
	"github.com/yourorg/listings-proxy/internal/tokens"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(slog.LevelInfo)
	slog.SetDefault(log)

	amqpURL := env.Must("AMQP_URL")
	queue := env.Get("NOTIFY_QUEUE", "tour-status-changes")
	serverKey := env.Must("FCM_SERVER_KEY")
	policy := notify.FailurePolicy(env.Get("NOTIFY_FAILURE_POLICY", string(notify.PolicyIgnore)))
	metricsPort := env.GetInt("METRICS_PORT", 9091)

	if policy != notify.PolicyIgnore && policy != notify.PolicyRequeue {
		log.Error("unknown NOTIFY_FAILURE_POLICY", "policy", string(policy))
		os.Exit(1)
	}

	m := metrics.New()
	notifier := &notify.Notifier{
		Tokens:    openTokenStore(log),
		Messenger: notify.NewFCMMessenger(serverKey),
		Policy:    policy,
		Log:       log,
		OnResult:  m.ObserveNotification,
	}

	consumer, err := notify.NewConsumer(notify.ConsumerConfig{URL: amqpURL, Queue: queue}, notifier, log)
	if err != nil {
		log.Error("consumer setup failed", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), mux); err != nil {
			log.Warn("metrics listener stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("notifier consuming", "queue", queue, "policy", string(policy))
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
}

func openTokenStore(log *slog.Logger) notify.TokenStore {
	backend := strings.ToLower(env.Get("TOKEN_BACKEND", "postgres"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch backend {
	case "redis":
		st := tokens.OpenRedis(env.Must("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), env.GetInt("REDIS_DB", 0))
		if err := st.Ping(ctx); err != nil {
			log.Error("redis ping failed", "error", err)
			os.Exit(1)
		}
		return st
	case "postgres":
		st, err := tokens.OpenPostgres(env.Must("PG_DSN"))
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		if err := st.Ping(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
		if err := st.Migrate(ctx); err != nil {
			log.Error("postgres migrate failed", "error", err)
			os.Exit(1)
		}
		return st
	default:
		log.Error("unknown TOKEN_BACKEND", "backend", backend)
		os.Exit(1)
		return nil
	}
}
