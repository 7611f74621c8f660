package api

import (
	"encoding/json"
	"net/http"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

type createMessageRequest struct {
	Receiver domain.UserID `json:"receiver"`
	Message  string        `json:"message"`
}

func (h *handler) createMessage(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: "invalid body"})
		return
	}

	message, err := h.messages.Create(r.Context(), userID, req.Receiver, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Message: "Message created", Data: message})
}

func (h *handler) listMessages(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	messages, err := h.messages.History(r.Context(), userID, domain.UserID(r.PathValue("peerId")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: messages})
}

func (h *handler) deleteMessage(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	message, err := h.messages.Delete(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Message: "Message deleted", Data: message})
}
