package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arthurdotwork/socialchat/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS friends (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	friend_id  TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS friends_user_id_idx ON friends (user_id);
CREATE INDEX IF NOT EXISTS friends_friend_id_idx ON friends (friend_id);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	sender     TEXT NOT NULL,
	receiver   TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_pair_idx ON messages (sender, receiver, created_at);
`

// Migrate creates the tables the stores need when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

type PostgresFriendStore struct {
	db *sql.DB
}

func NewPostgresFriendStore(db *sql.DB) *PostgresFriendStore {
	return &PostgresFriendStore{db: db}
}

func (s *PostgresFriendStore) HasPending(ctx context.Context, requester domain.UserID, target domain.UserID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friends WHERE user_id = $1 AND friend_id = $2 AND status = $3
		)
	`, string(requester), string(target), string(domain.FriendPending)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("row.Scan: %w", err)
	}

	return exists, nil
}

func (s *PostgresFriendStore) Create(ctx context.Context, friend domain.FriendRelationship) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO friends (id, user_id, friend_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		friend.ID,
		string(friend.Requester),
		string(friend.Target),
		string(friend.Status),
		friend.CreatedAt,
		friend.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *PostgresFriendStore) Get(ctx context.Context, id string) (domain.FriendRelationship, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, friend_id, status, created_at, updated_at
		FROM friends WHERE id = $1
	`, id)

	return scanFriend(row)
}

func (s *PostgresFriendStore) UpdateStatus(ctx context.Context, id string, status domain.FriendStatus, updatedAt time.Time) (domain.FriendRelationship, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE friends SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, user_id, friend_id, status, created_at, updated_at
	`, id, string(status), updatedAt)

	return scanFriend(row)
}

func (s *PostgresFriendStore) Delete(ctx context.Context, id string) (domain.FriendRelationship, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM friends WHERE id = $1
		RETURNING id, user_id, friend_id, status, created_at, updated_at
	`, id)

	return scanFriend(row)
}

func (s *PostgresFriendStore) ListForUser(ctx context.Context, userID domain.UserID) ([]domain.FriendRelationship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, friend_id, status, created_at, updated_at
		FROM friends
		WHERE user_id = $1 OR friend_id = $1
		ORDER BY created_at
	`, string(userID))
	if err != nil {
		return nil, fmt.Errorf("db.QueryContext: %w", err)
	}
	defer rows.Close()

	friends := make([]domain.FriendRelationship, 0)
	for rows.Next() {
		friend, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return friends, nil
}

type PostgresMessageStore struct {
	db *sql.DB
}

func NewPostgresMessageStore(db *sql.DB) *PostgresMessageStore {
	return &PostgresMessageStore{db: db}
}

func (s *PostgresMessageStore) Create(ctx context.Context, message domain.ChatMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender, receiver, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		message.ID,
		string(message.Sender),
		string(message.Receiver),
		message.Text,
		message.CreatedAt,
		message.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *PostgresMessageStore) ListBetween(ctx context.Context, a domain.UserID, b domain.UserID) ([]domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, receiver, message, created_at, updated_at
		FROM messages
		WHERE (sender = $1 AND receiver = $2) OR (sender = $2 AND receiver = $1)
		ORDER BY created_at
	`, string(a), string(b))
	if err != nil {
		return nil, fmt.Errorf("db.QueryContext: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.ChatMessage, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return messages, nil
}

func (s *PostgresMessageStore) DeleteBySender(ctx context.Context, id string, sender domain.UserID) (domain.ChatMessage, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM messages WHERE id = $1 AND sender = $2
		RETURNING id, sender, receiver, message, created_at, updated_at
	`, id, string(sender))

	return scanMessage(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFriend(row scanner) (domain.FriendRelationship, error) {
	var (
		friend            domain.FriendRelationship
		requester, target string
		status            string
	)

	if err := row.Scan(&friend.ID, &requester, &target, &status, &friend.CreatedAt, &friend.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FriendRelationship{}, domain.ErrNotFound
		}

		return domain.FriendRelationship{}, fmt.Errorf("row.Scan: %w", err)
	}

	friend.Requester = domain.UserID(requester)
	friend.Target = domain.UserID(target)
	friend.Status = domain.FriendStatus(status)

	return friend, nil
}

func scanMessage(row scanner) (domain.ChatMessage, error) {
	var (
		message          domain.ChatMessage
		sender, receiver string
	)

	if err := row.Scan(&message.ID, &sender, &receiver, &message.Text, &message.CreatedAt, &message.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ChatMessage{}, domain.ErrNotFound
		}

		return domain.ChatMessage{}, fmt.Errorf("row.Scan: %w", err)
	}

	message.Sender = domain.UserID(sender)
	message.Receiver = domain.UserID(receiver)

	return message, nil
}
