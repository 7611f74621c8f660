package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

type FriendService interface {
	Request(ctx context.Context, requester domain.UserID, target domain.UserID) (domain.FriendRelationship, error)
	List(ctx context.Context, userID domain.UserID) ([]domain.FriendRelationship, error)
	UpdateStatus(ctx context.Context, actor domain.UserID, id string, status string) (domain.FriendRelationship, error)
	Delete(ctx context.Context, actor domain.UserID, id string) (domain.FriendRelationship, error)
}

type MessageService interface {
	Create(ctx context.Context, sender domain.UserID, receiver domain.UserID, text string) (domain.ChatMessage, error)
	History(ctx context.Context, a domain.UserID, b domain.UserID) ([]domain.ChatMessage, error)
	Delete(ctx context.Context, id string, sender domain.UserID) (domain.ChatMessage, error)
}

type Config struct {
	Verifier       domain.IdentityVerifier
	Friends        FriendService
	Messages       MessageService
	Realtime       http.Handler
	Metrics        http.Handler
	AllowedOrigins []string
}

// NewRouter mounts the REST glue, the websocket endpoint and the operational
// endpoints on one mux.
func NewRouter(cfg Config) http.Handler {
	h := &handler{
		verifier: cfg.Verifier,
		friends:  cfg.Friends,
		messages: cfg.Messages,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	if cfg.Realtime != nil {
		mux.Handle("GET /ws", cfg.Realtime)
	}

	mux.Handle("POST /api/friends", h.authenticated(h.createFriend))
	mux.Handle("GET /api/friends", h.authenticated(h.listFriends))
	mux.Handle("PUT /api/friends/{id}", h.authenticated(h.updateFriendStatus))
	mux.Handle("DELETE /api/friends/{id}", h.authenticated(h.deleteFriend))

	mux.Handle("POST /api/messages", h.authenticated(h.createMessage))
	mux.Handle("GET /api/messages/{peerId}", h.authenticated(h.listMessages))
	mux.Handle("DELETE /api/messages/{id}", h.authenticated(h.deleteMessage))

	return cors(cfg.AllowedOrigins, mux)
}

type handler struct {
	verifier domain.IdentityVerifier
	friends  FriendService
	messages MessageService
}

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, userID domain.UserID)

func (h *handler) authenticated(next authenticatedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeJSON(w, http.StatusUnauthorized, response{Message: "missing bearer token"})
			return
		}

		userID, err := h.verifier.Verify(r.Context(), strings.TrimSpace(token))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, response{Message: "invalid token"})
			return
		}

		next(w, r, userID)
	})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Message: "ok"})
}

type response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrAlreadyRequested),
		errors.Is(err, domain.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "error handling request", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, response{Message: "internal error"})
		return
	}

	writeJSON(w, status, response{Message: publicMessage(err)})
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyRequested):
		return "Friend request already sent"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid status"
	case errors.Is(err, domain.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	default:
		return err.Error()
	}
}

func cors(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
