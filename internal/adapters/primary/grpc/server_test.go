package grpc_test

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	chatgrpc "github.com/arthurdotwork/socialchat/internal/adapters/primary/grpc"
	"github.com/arthurdotwork/socialchat/internal/adapters/primary/protocol"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/store"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type staticVerifier map[string]domain.UserID

func (v staticVerifier) Verify(_ context.Context, token string) (domain.UserID, error) {
	userID, ok := v[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}

	return userID, nil
}

func newChatServer(t *testing.T) (*chatgrpc.ChatServer, *domain.ConnectionRegistry) {
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

	return chatgrpc.NewChatServer(protocol.NewHandler(chatService)), registry
}

func newServer(t *testing.T) (*bufconn.Listener, *domain.ConnectionRegistry) {
	t.Helper()

	chatServer, registry := newChatServer(t)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	chatgrpc.RegisterRealtimeServer(srv, chatServer)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis, registry
}

// brokenStream hands out one frame, fails every send and then blocks in
// RecvMsg until released, the way a stream whose peer stopped reading does.
type brokenStream struct {
	grpc.ServerStream

	ctx     context.Context
	first   *structpb.Struct
	read    bool
	release chan struct{}
}

func (s *brokenStream) Context() context.Context {
	return s.ctx
}

func (s *brokenStream) SendMsg(any) error {
	return errors.New("transport is closing")
}

func (s *brokenStream) RecvMsg(m any) error {
	if !s.read {
		s.read = true
		m.(*structpb.Struct).Fields = s.first.GetFields()
		return nil
	}

	<-s.release
	return io.EOF
}

func newClient(t *testing.T, ctx context.Context, lis *bufconn.Listener) *chatgrpc.Client {
	t.Helper()

	client, err := chatgrpc.NewClient(ctx, "passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestChatServer_Connect(t *testing.T) {
	t.Parallel()

	t.Run("it should pair two users and relay their messages", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		lis, _ := newServer(t)
		alice := newClient(t, ctx, lis)
		bob := newClient(t, ctx, lis)

		require.NoError(t, alice.Send(domain.EventRegisterUser, "alice-token"))
		registered, err := alice.Recv()
		require.NoError(t, err)
		require.Equal(t, domain.EventRegistered, registered.Name)
		require.Equal(t, "alice", registered.Payload["userId"])

		require.NoError(t, bob.Send(domain.EventRegisterUser, "bob-token"))
		registered, err = bob.Recv()
		require.NoError(t, err)
		require.Equal(t, domain.EventRegistered, registered.Name)

		require.NoError(t, bob.Send(domain.EventRegisterRoom, "bob", "alice"))

		ready, err := alice.Recv()
		require.NoError(t, err)
		require.Equal(t, domain.EventRoomReady, ready.Name)
		require.Equal(t, "bob", ready.Payload["peerId"])
		require.Equal(t, "You are chatting with bob", ready.Payload["message"])

		bobReady, err := bob.Recv()
		require.NoError(t, err)
		require.Equal(t, ready.Payload["roomId"], bobReady.Payload["roomId"])

		require.NoError(t, alice.Send(domain.EventSendMessage, ready.Payload["roomId"], "hi bob", "Alice"))

		for _, client := range []*chatgrpc.Client{alice, bob} {
			got, err := client.Recv()
			require.NoError(t, err)
			require.Equal(t, domain.EventMessageReceived, got.Name)
			require.Equal(t, "hi bob", got.Payload["text"])
		}
	})

	t.Run("it should reject a bad token", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		lis, _ := newServer(t)
		client := newClient(t, ctx, lis)

		require.NoError(t, client.Send(domain.EventRegisterUser, "forged"))

		got, err := client.Recv()
		require.NoError(t, err)
		require.Equal(t, domain.EventRegistrationFailed, got.Name)
	})

	t.Run("it should unregister the user when the stream ends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		lis, registry := newServer(t)
		client := newClient(t, ctx, lis)

		require.NoError(t, client.Send(domain.EventRegisterUser, "alice-token"))
		_, err := client.Recv()
		require.NoError(t, err)
		require.Len(t, registry.Lookup("alice"), 1)

		require.NoError(t, client.Close())

		require.Eventually(t, func() bool {
			return len(registry.Lookup("alice")) == 0
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("it should drop the connection when writing to the stream fails", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		chatServer, registry := newChatServer(t)

		first, err := protocol.NewFrame(domain.EventRegisterUser, "alice-token")
		require.NoError(t, err)
		msg, err := first.Struct()
		require.NoError(t, err)

		stream := &brokenStream{ctx: ctx, first: msg, release: make(chan struct{})}
		defer close(stream.release)

		done := make(chan error, 1)
		go func() { done <- chatServer.Connect(stream) }()

		select {
		case err := <-done:
			require.Error(t, err)
		case <-ctx.Done():
			t.Fatal("Connect did not return after the writer failed")
		}

		require.Eventually(t, func() bool {
			return len(registry.Lookup("alice")) == 0
		}, 2*time.Second, 10*time.Millisecond)
	})
}
