package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arthurdotwork/socialchat/internal/adapters/primary/protocol"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/messenger"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type ChatServer struct {
	protocol *protocol.Handler
}

func NewChatServer(protocolHandler *protocol.Handler) *ChatServer {
	return &ChatServer{
		protocol: protocolHandler,
	}
}

// Connect serves one realtime stream. The writer runs under an errgroup: when
// it fails the session is closed and Connect returns, which ends the pending
// RecvMsg. Connect never returns while the writer is still sending.
func (s *ChatServer) Connect(stream grpc.ServerStream) error {
	g, ctx := errgroup.WithContext(stream.Context())

	id := domain.ConnectionID(uuid.NewString())
	slog.DebugContext(ctx, "client connected", "connection", id)

	m := messenger.NewMessenger(id, func(_ context.Context, event domain.Event) error {
		msg, err := messenger.EncodeStruct(event)
		if err != nil {
			return err
		}

		return stream.SendMsg(msg)
	}, messenger.DefaultBufferSize)

	g.Go(func() error {
		if err := m.Run(ctx); err != nil {
			return fmt.Errorf("messenger.Run: %w", err)
		}

		return nil
	})

	served := make(chan error, 1)
	go func() {
		served <- s.protocol.Serve(ctx, m, func() (protocol.Frame, error) {
			msg := &structpb.Struct{}
			if err := stream.RecvMsg(msg); err != nil {
				if errors.Is(err, io.EOF) {
					return protocol.Frame{}, io.EOF
				}

				return protocol.Frame{}, fmt.Errorf("stream.RecvMsg: %w", err)
			}

			return protocol.DecodeStruct(msg)
		})
	}()

	var serveErr error
	select {
	case serveErr = <-served:
	case <-ctx.Done():
	}

	m.Close()
	if err := g.Wait(); err != nil {
		slog.DebugContext(ctx, "client dropped", "connection", id, "error", err)
		return err
	}

	if serveErr != nil {
		slog.ErrorContext(ctx, "error handling stream", "connection", id, "error", serveErr)
		return fmt.Errorf("protocol.Serve: %w", serveErr)
	}

	slog.DebugContext(ctx, "client disconnected", "connection", id)
	return nil
}
