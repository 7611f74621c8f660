package websocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/arthurdotwork/socialchat/internal/adapters/primary/protocol"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/messenger"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	maxPayloadBytes = 1 << 20
	pingInterval    = 15 * time.Second
	pongWait        = 45 * time.Second
	writeWait       = 10 * time.Second
)

// Handler upgrades GET /ws requests and runs the realtime protocol over
// JSON text frames.
type Handler struct {
	protocol *protocol.Handler
	upgrader websocket.Upgrader
}

func NewHandler(protocolHandler *protocol.Handler, allowedOrigins []string) *Handler {
	return &Handler{
		protocol: protocolHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  8192,
			WriteBufferSize: 8192,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}

				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.DebugContext(r.Context(), "error upgrading connection", "error", err)
		return
	}

	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	id := domain.ConnectionID(uuid.NewString())
	m := messenger.NewMessenger(id, func(_ context.Context, event domain.Event) error {
		b, err := messenger.EncodeJSON(event)
		if err != nil {
			return err
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, b)
	}, messenger.DefaultBufferSize)

	g.Go(func() error {
		if err := m.Run(ctx); err != nil {
			// Unblocks the reader below.
			_ = conn.Close()
			return fmt.Errorf("messenger.Run: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		keepAlive(ctx, conn)
		return nil
	})

	conn.SetReadLimit(maxPayloadBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	slog.DebugContext(ctx, "websocket connected", "connection", id, "remote", r.RemoteAddr)

	serveErr := h.protocol.Serve(ctx, m, func() (protocol.Frame, error) {
		return readFrame(conn)
	})

	m.Close()
	cancel()
	if err := g.Wait(); err != nil {
		serveErr = errors.Join(serveErr, err)
	}

	if serveErr != nil {
		slog.DebugContext(ctx, "websocket closed with error", "connection", id, "error", serveErr)
		return
	}

	slog.DebugContext(ctx, "websocket disconnected", "connection", id)
}

func readFrame(conn *websocket.Conn) (protocol.Frame, error) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return protocol.Frame{}, io.EOF
			}

			return protocol.Frame{}, fmt.Errorf("conn.ReadMessage: %w", err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		return protocol.DecodeJSON(data)
	}
}

func keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
