package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arthurdotwork/socialchat/internal/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMalformedFrame = errors.New("malformed frame")

// Frame is one client command: {"event": "...", "args": [...]}.
type Frame struct {
	Event string            `json:"event"`
	Args  []json.RawMessage `json:"args"`
}

func DecodeJSON(b []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(b, &frame); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}

	if frame.Event == "" {
		return Frame{}, fmt.Errorf("%w: missing event", ErrMalformedFrame)
	}

	return frame, nil
}

func DecodeStruct(msg *structpb.Struct) (Frame, error) {
	b, err := json.Marshal(msg.AsMap())
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}

	return DecodeJSON(b)
}

// NewFrame builds the frame a client sends for event.
func NewFrame(event string, args ...any) (Frame, error) {
	frame := Frame{Event: event, Args: make([]json.RawMessage, 0, len(args))}
	for _, arg := range args {
		b, err := json.Marshal(arg)
		if err != nil {
			return Frame{}, fmt.Errorf("json.Marshal: %w", err)
		}
		frame.Args = append(frame.Args, b)
	}

	return frame, nil
}

// Struct renders the frame for the gRPC transport.
func (f Frame) Struct() (*structpb.Struct, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("structpb.NewStruct: %w", err)
	}

	return msg, nil
}

func (f Frame) String(i int) (string, error) {
	if i >= len(f.Args) {
		return "", fmt.Errorf("%w: %s expects argument %d", ErrMalformedFrame, f.Event, i+1)
	}

	var s string
	if err := json.Unmarshal(f.Args[i], &s); err != nil {
		return "", fmt.Errorf("%w: %s argument %d must be a string", ErrMalformedFrame, f.Event, i+1)
	}

	return s, nil
}

type ChatService interface {
	Connect(ctx context.Context, conn domain.Connection) *domain.Session
	RegisterUser(ctx context.Context, session *domain.Session, token string) (domain.UserID, error)
	RegisterRoom(ctx context.Context, session *domain.Session, peer domain.UserID) (domain.RoomID, bool, error)
	SendMessage(ctx context.Context, session *domain.Session, roomID domain.RoomID, text string, senderName string) error
	Disconnect(ctx context.Context, session *domain.Session)
}

// Handler turns the frames read from one connection into chat service calls.
type Handler struct {
	chatService ChatService
}

func NewHandler(chatService ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// Serve owns the lifecycle of conn: it opens a session, handles every frame
// next returns, and closes the session once next fails or ctx is done, even
// while next is still blocked. Malformed frames are answered with an error
// event and do not end the connection.
func (h *Handler) Serve(ctx context.Context, conn domain.Connection, next func() (Frame, error)) error {
	session := h.chatService.Connect(ctx, conn)

	disconnect := func() {
		h.chatService.Disconnect(context.WithoutCancel(ctx), session)
	}
	stop := context.AfterFunc(ctx, disconnect)
	defer func() {
		if stop() {
			disconnect()
		}
	}()

	for {
		frame, err := next()
		if err != nil {
			if errors.Is(err, ErrMalformedFrame) {
				h.reply(ctx, session, domain.EventError, domain.Notice{Message: err.Error()})
				continue
			}

			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("next: %w", err)
		}

		h.Handle(ctx, session, frame)
	}
}

func (h *Handler) Handle(ctx context.Context, session *domain.Session, frame Frame) {
	var err error

	switch frame.Event {
	case domain.EventRegisterUser:
		err = h.registerUser(ctx, session, frame)
	case domain.EventRegisterRoom:
		err = h.registerRoom(ctx, session, frame)
	case domain.EventSendMessage:
		err = h.sendMessage(ctx, session, frame)
	default:
		err = fmt.Errorf("%w: unknown event %q", ErrMalformedFrame, frame.Event)
	}

	if err != nil {
		slog.DebugContext(ctx, "error handling frame", "event", frame.Event,
			"connection", session.Connection().ID(), "error", err)
		h.reply(ctx, session, domain.EventError, domain.Notice{Message: errorMessage(err)})
	}
}

func (h *Handler) registerUser(ctx context.Context, session *domain.Session, frame Frame) error {
	token, err := frame.String(0)
	if err != nil {
		return err
	}

	userID, err := h.chatService.RegisterUser(ctx, session, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			h.reply(ctx, session, domain.EventRegistrationFailed, domain.Notice{Message: "invalid token"})
			return nil
		}

		return fmt.Errorf("chatService.RegisterUser: %w", err)
	}

	h.reply(ctx, session, domain.EventRegistered, domain.Registered{UserID: userID})
	return nil
}

func (h *Handler) registerRoom(ctx context.Context, session *domain.Session, frame Frame) error {
	// The first argument is the requester id older clients send. The session's
	// verified identity is used instead.
	peer, err := frame.String(1)
	if err != nil {
		return err
	}

	if _, _, err := h.chatService.RegisterRoom(ctx, session, domain.UserID(peer)); err != nil {
		return fmt.Errorf("chatService.RegisterRoom: %w", err)
	}

	return nil
}

func (h *Handler) sendMessage(ctx context.Context, session *domain.Session, frame Frame) error {
	roomID, err := frame.String(0)
	if err != nil {
		return err
	}

	text, err := frame.String(1)
	if err != nil {
		return err
	}

	var senderName string
	if len(frame.Args) > 2 {
		if senderName, err = frame.String(2); err != nil {
			return err
		}
	}

	if err := h.chatService.SendMessage(ctx, session, domain.RoomID(roomID), text, senderName); err != nil {
		return fmt.Errorf("chatService.SendMessage: %w", err)
	}

	return nil
}

func (h *Handler) reply(ctx context.Context, session *domain.Session, name string, payload any) {
	if err := session.Connection().Send(ctx, domain.Event{Name: name, Payload: payload}); err != nil {
		slog.DebugContext(ctx, "error replying", "event", name, "connection", session.Connection().ID(), "error", err)
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotIdentified):
		return "register-user first"
	case errors.Is(err, domain.ErrNotRoomMember):
		return "not a member of this room"
	case errors.Is(err, domain.ErrSessionClosed):
		return "session closed"
	default:
		return err.Error()
	}
}
