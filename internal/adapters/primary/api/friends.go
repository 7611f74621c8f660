package api

import (
	"encoding/json"
	"net/http"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

type createFriendRequest struct {
	FriendID domain.UserID `json:"friendId"`
}

func (h *handler) createFriend(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	var req createFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: "invalid body"})
		return
	}

	friend, err := h.friends.Request(r.Context(), userID, req.FriendID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Message: "Friend request sent", Data: friend})
}

func (h *handler) listFriends(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	friends, err := h.friends.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: friends})
}

func (h *handler) updateFriendStatus(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	friend, err := h.friends.UpdateStatus(r.Context(), userID, r.PathValue("id"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Message: "Friend status updated", Data: friend})
}

func (h *handler) deleteFriend(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	if _, err := h.friends.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Message: "Friend removed"})
}
