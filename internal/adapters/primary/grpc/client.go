package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arthurdotwork/socialchat/internal/adapters/primary/protocol"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event is a server frame as seen by a client.
type Event struct {
	Name    string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

type Client struct {
	conn   *grpc.ClientConn
	stream grpc.ClientStream
}

func NewClient(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc.NewClient: %w", err)
	}

	stream, err := conn.NewStream(ctx, &ServiceDesc.Streams[0], ConnectMethod)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("conn.NewStream: %w", err)
	}

	return &Client{conn: conn, stream: stream}, nil
}

func (c *Client) Send(event string, args ...any) error {
	frame, err := protocol.NewFrame(event, args...)
	if err != nil {
		return fmt.Errorf("protocol.NewFrame: %w", err)
	}

	msg, err := frame.Struct()
	if err != nil {
		return fmt.Errorf("frame.Struct: %w", err)
	}

	if err := c.stream.SendMsg(msg); err != nil {
		return fmt.Errorf("stream.SendMsg: %w", err)
	}

	return nil
}

func (c *Client) Recv() (Event, error) {
	msg := &structpb.Struct{}
	if err := c.stream.RecvMsg(msg); err != nil {
		return Event{}, fmt.Errorf("stream.RecvMsg: %w", err)
	}

	b, err := json.Marshal(msg.AsMap())
	if err != nil {
		return Event{}, fmt.Errorf("json.Marshal: %w", err)
	}

	var event Event
	if err := json.Unmarshal(b, &event); err != nil {
		return Event{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return event, nil
}

// Close ends the stream and the underlying connection.
func (c *Client) Close() error {
	_ = c.stream.CloseSend()

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("conn.Close: %w", err)
	}

	return nil
}
