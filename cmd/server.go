package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/arthurdotwork/socialchat/internal/adapters/primary/api"
	chatgrpc "github.com/arthurdotwork/socialchat/internal/adapters/primary/grpc"
	"github.com/arthurdotwork/socialchat/internal/adapters/primary/protocol"
	subscriber "github.com/arthurdotwork/socialchat/internal/adapters/primary/redis"
	"github.com/arthurdotwork/socialchat/internal/adapters/primary/websocket"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/broadcaster"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/identity"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/store"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/config"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/log"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/metrics"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/postgres"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/redis"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/runner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	grpcserver "google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

func Server(ctx context.Context, c *cobra.Command) error {
	configPath, _ := c.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log.Config(ctx, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("cfg.Validate: %w", err)
	}

	tokens, err := identity.NewTokenService(cfg.JWTSecretKey)
	if err != nil {
		return fmt.Errorf("identity.NewTokenService: %w", err)
	}

	friendStore, messageStore, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	recorder := metrics.New()
	registry := domain.NewConnectionRegistry()
	rooms := domain.NewRoomMembership()

	instanceID := uuid.NewString()
	dispatcherOpts := []domain.DispatcherOption{domain.WithDispatcherRecorder(recorder)}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(cfg.RedisAddr)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			return fmt.Errorf("redisClient.Ping: %w", err)
		}

		relay := broadcaster.NewBroadcaster(redisClient, cfg.RelayChannel)
		dispatcherOpts = append(dispatcherOpts, domain.WithRelay(relay, instanceID))
	}

	dispatcher := domain.NewDispatcher(registry, rooms, dispatcherOpts...)
	messageService := domain.NewMessageService(messageStore, dispatcher)
	friendService := domain.NewFriendService(friendStore, dispatcher)
	chatService := domain.NewChatService(
		domain.NewPresenceManager(registry, rooms, tokens, recorder),
		domain.NewRoomBroker(registry, rooms, dispatcher, recorder),
		rooms,
		messageService,
	)

	protocolHandler := protocol.NewHandler(chatService)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Config{
			Verifier:       tokens,
			Friends:        friendService,
			Messages:       messageService,
			Realtime:       websocket.NewHandler(protocolHandler, cfg.AllowedOrigins),
			Metrics:        recorder.Handler(),
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := grpcserver.NewServer()
	chatgrpc.RegisterRealtimeServer(srv, chatgrpc.NewChatServer(protocolHandler))

	slog.InfoContext(ctx, "starting server", "instance", instanceID, "http", cfg.HTTPAddr,
		"grpc", cfg.GRPCAddr(), "relay", redisClient != nil, "database", cfg.DatabaseURL != "")

	r := runner.New(ctx)

	r.Go("grpc", func(ctx context.Context) error {
		lis, err := net.Listen("tcp", cfg.GRPCAddr())
		if err != nil {
			return fmt.Errorf("net.Listen: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Serve(lis)
		}()

		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "context done, stopping grpc server")
			stopGRPC(srv)
			return nil
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("srv.Serve: %w", err)
			}

			return nil
		}
	})

	r.Go("http", func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "context done, stopping http server")

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.ErrorContext(ctx, "error shutting down http server", "error", err)
				_ = httpServer.Close()
			}

			return nil
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("httpServer.ListenAndServe: %w", err)
			}

			return nil
		}
	})

	if redisClient != nil {
		r.Go("relay", func(ctx context.Context) error {
			sub := subscriber.NewSubscriber(redisClient, dispatcher)
			if err := sub.Subscribe(ctx, cfg.RelayChannel); err != nil {
				return fmt.Errorf("sub.Subscribe: %w", err)
			}

			return nil
		})
	}

	if err := r.Wait(); err != nil {
		return fmt.Errorf("runner.Wait: %w", err)
	}

	slog.InfoContext(ctx, "server stopped")
	return nil
}

// stopGRPC lets open streams finish for a moment before cutting them.
func stopGRPC(srv *grpcserver.Server) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		srv.Stop()
	}
}

func openStores(ctx context.Context, cfg config.Config) (domain.FriendStore, domain.MessageStore, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.InfoContext(ctx, "no database configured, keeping friends and messages in memory")
		return store.NewMemoryFriendStore(), store.NewMemoryMessageStore(), func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.DefaultOptions())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("postgres.Open: %w", err)
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.ErrorContext(ctx, "error closing database", "error", err)
		}
	}

	if err := store.Migrate(ctx, db); err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("store.Migrate: %w", err)
	}

	return store.NewPostgresFriendStore(db), store.NewPostgresMessageStore(db), closeDB, nil
}
