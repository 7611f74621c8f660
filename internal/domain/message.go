package domain

import "time"

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    UserID    `json:"sender"`
	Receiver  UserID    `json:"receiver"`
	Text      string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
