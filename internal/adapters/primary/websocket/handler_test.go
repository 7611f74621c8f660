package websocket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arthurdotwork/socialchat/internal/adapters/primary/protocol"
	ws "github.com/arthurdotwork/socialchat/internal/adapters/primary/websocket"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/store"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type staticVerifier map[string]domain.UserID

func (v staticVerifier) Verify(_ context.Context, token string) (domain.UserID, error) {
	userID, ok := v[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}

	return userID, nil
}

type frame struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

func newServer(t *testing.T) (*httptest.Server, *domain.ConnectionRegistry) {
	t.Helper()

	registry := domain.NewConnectionRegistry()
	rooms := domain.NewRoomMembership()
	dispatcher := domain.NewDispatcher(registry, rooms)
	verifier := staticVerifier{"alice-token": "alice", "bob-token": "bob"}

	chatService := domain.NewChatService(
		domain.NewPresenceManager(registry, rooms, verifier, nil),
		domain.NewRoomBroker(registry, rooms, dispatcher, nil),
		rooms,
		domain.NewMessageService(store.NewMemoryMessageStore(), dispatcher),
	)

	srv := httptest.NewServer(ws.NewHandler(protocol.NewHandler(chatService), []string{"http://localhost:3000"}))
	t.Cleanup(srv.Close)

	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, args ...any) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "args": args}))
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var f frame
	require.NoError(t, conn.ReadJSON(&f))

	return f
}

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("it should pair two users and relay their messages", func(t *testing.T) {
		srv, _ := newServer(t)
		alice := dial(t, srv, nil)
		bob := dial(t, srv, nil)

		send(t, alice, domain.EventRegisterUser, "alice-token")
		require.Equal(t, domain.EventRegistered, read(t, alice).Event)

		send(t, bob, domain.EventRegisterUser, "bob-token")
		require.Equal(t, domain.EventRegistered, read(t, bob).Event)

		send(t, alice, domain.EventRegisterRoom, "alice", "bob")

		aliceReady := read(t, alice)
		require.Equal(t, domain.EventRoomReady, aliceReady.Event)
		require.Equal(t, "bob", aliceReady.Payload["peerId"])

		bobReady := read(t, bob)
		require.Equal(t, domain.EventRoomReady, bobReady.Event)
		require.Equal(t, aliceReady.Payload["roomId"], bobReady.Payload["roomId"])

		send(t, bob, domain.EventSendMessage, bobReady.Payload["roomId"], "hello", "Bob")

		for _, conn := range []*websocket.Conn{alice, bob} {
			got := read(t, conn)
			require.Equal(t, domain.EventMessageReceived, got.Event)
			require.Equal(t, "hello", got.Payload["text"])
			require.Equal(t, "Bob", got.Payload["senderName"])
		}
	})

	t.Run("it should tell the requester the peer is offline", func(t *testing.T) {
		srv, _ := newServer(t)
		alice := dial(t, srv, nil)

		send(t, alice, domain.EventRegisterUser, "alice-token")
		require.Equal(t, domain.EventRegistered, read(t, alice).Event)

		send(t, alice, domain.EventRegisterRoom, "alice", "bob")

		got := read(t, alice)
		require.Equal(t, domain.EventPeerOffline, got.Event)
		require.Equal(t, "Your friend is offline or does not exist.", got.Payload["message"])
	})

	t.Run("it should answer malformed frames without closing", func(t *testing.T) {
		srv, _ := newServer(t)
		conn := dial(t, srv, nil)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		require.Equal(t, domain.EventError, read(t, conn).Event)

		send(t, conn, domain.EventRegisterUser, "unknown")
		require.Equal(t, domain.EventRegistrationFailed, read(t, conn).Event)
	})

	t.Run("it should unregister the user when the socket closes", func(t *testing.T) {
		srv, registry := newServer(t)
		conn := dial(t, srv, nil)

		send(t, conn, domain.EventRegisterUser, "alice-token")
		require.Equal(t, domain.EventRegistered, read(t, conn).Event)
		require.Len(t, registry.Lookup("alice"), 1)

		require.NoError(t, conn.Close())

		require.Eventually(t, func() bool {
			return len(registry.Lookup("alice")) == 0
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("it should refuse origins that are not allowed", func(t *testing.T) {
		srv, _ := newServer(t)

		url := "ws" + strings.TrimPrefix(srv.URL, "http")
		_, res, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://evil.test"}})
		require.Error(t, err)
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})
}
