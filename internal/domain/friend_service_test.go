package domain_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/arthurdotwork/socialchat/internal/domain/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFriendService_Request(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	friendStore := mocks.NewMockFriendStore(t)
	c := newCore(nil)
	friendService := domain.NewFriendService(friendStore, c.dispatcher)

	aliceConn, bobConn := newConn("c1"), newConn("c2")
	c.registry.Register("alice", aliceConn)
	c.registry.Register("bob", bobConn)

	t.Run("it should refuse a request to oneself", func(t *testing.T) {
		_, err := friendService.Request(ctx, "alice", "alice")
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("it should return an error if a request is already pending", func(t *testing.T) {
		friendStore.On("HasPending", ctx, domain.UserID("alice"), domain.UserID("bob")).Return(true, nil).Once()

		_, err := friendService.Request(ctx, "alice", "bob")
		require.ErrorIs(t, err, domain.ErrAlreadyRequested)
	})

	t.Run("it should not notify anyone if the request can not be persisted", func(t *testing.T) {
		friendStore.On("HasPending", ctx, domain.UserID("alice"), domain.UserID("bob")).Return(false, nil).Once()
		friendStore.On("Create", ctx, mock.AnythingOfType("domain.FriendRelationship")).Return(fmt.Errorf("error")).Once()

		_, err := friendService.Request(ctx, "alice", "bob")
		require.Error(t, err)

		require.Empty(t, aliceConn.received())
		require.Empty(t, bobConn.received())
	})

	t.Run("it should notify both users of the new request", func(t *testing.T) {
		friendStore.On("HasPending", ctx, domain.UserID("alice"), domain.UserID("bob")).Return(false, nil).Once()
		friendStore.On("Create", ctx, mock.MatchedBy(func(f domain.FriendRelationship) bool {
			return f.Requester == "alice" && f.Target == "bob" && f.Status == domain.FriendPending
		})).Return(nil).Once()

		friend, err := friendService.Request(ctx, "alice", "bob")
		require.NoError(t, err)

		require.Equal(t, []domain.Event{{
			Name:    domain.EventFriendRequestSent,
			Payload: domain.FriendNotification{Message: "New friend request sent", Data: friend},
		}}, aliceConn.received())
		require.Equal(t, []domain.Event{{
			Name:    domain.EventFriendRequestReceived,
			Payload: domain.FriendNotification{Message: "New friend request received", Data: friend},
		}}, bobConn.received())
	})
}

func TestFriendService_UpdateStatus(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pending := domain.FriendRelationship{ID: "f1", Requester: "alice", Target: "bob", Status: domain.FriendPending}

	setup := func(t *testing.T) (*mocks.MockFriendStore, *domain.FriendService, *recordingConn, *recordingConn) {
		friendStore := mocks.NewMockFriendStore(t)
		c := newCore(nil)
		aliceConn, bobConn := newConn("c1"), newConn("c2")
		c.registry.Register("alice", aliceConn)
		c.registry.Register("bob", bobConn)

		return friendStore, domain.NewFriendService(friendStore, c.dispatcher), aliceConn, bobConn
	}

	t.Run("it should reject an unknown status", func(t *testing.T) {
		_, friendService, _, _ := setup(t)

		_, err := friendService.UpdateStatus(ctx, "bob", "f1", "married")
		require.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("it should return an error if the relationship does not exist", func(t *testing.T) {
		friendStore, friendService, _, _ := setup(t)
		friendStore.On("Get", ctx, "f1").Return(domain.FriendRelationship{}, domain.ErrNotFound).Once()

		_, err := friendService.UpdateStatus(ctx, "bob", "f1", "accepted")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("it should forbid users outside the relationship", func(t *testing.T) {
		friendStore, friendService, _, _ := setup(t)
		friendStore.On("Get", ctx, "f1").Return(pending, nil).Once()

		_, err := friendService.UpdateStatus(ctx, "eve", "f1", "accepted")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("it should not notify anyone if the update fails", func(t *testing.T) {
		friendStore, friendService, aliceConn, bobConn := setup(t)
		friendStore.On("Get", ctx, "f1").Return(pending, nil).Once()
		friendStore.On("UpdateStatus", ctx, "f1", domain.FriendAccepted, mock.AnythingOfType("time.Time")).
			Return(domain.FriendRelationship{}, fmt.Errorf("error")).Once()

		_, err := friendService.UpdateStatus(ctx, "bob", "f1", "accepted")
		require.Error(t, err)
		require.Empty(t, aliceConn.received())
		require.Empty(t, bobConn.received())
	})

	for status, event := range map[domain.FriendStatus]string{
		domain.FriendAccepted: domain.EventFriendAccepted,
		domain.FriendBlocked:  domain.EventFriendBlocked,
	} {
		t.Run(fmt.Sprintf("it should notify both users when %s", status), func(t *testing.T) {
			friendStore, friendService, aliceConn, bobConn := setup(t)
			updated := pending
			updated.Status = status
			updated.UpdatedAt = time.Now()

			friendStore.On("Get", ctx, "f1").Return(pending, nil).Once()
			friendStore.On("UpdateStatus", ctx, "f1", status, mock.AnythingOfType("time.Time")).Return(updated, nil).Once()

			friend, err := friendService.UpdateStatus(ctx, "bob", "f1", string(status))
			require.NoError(t, err)
			require.Equal(t, updated, friend)

			for _, conn := range []*recordingConn{aliceConn, bobConn} {
				events := conn.received()
				require.Len(t, events, 1)
				require.Equal(t, event, events[0].Name)
				require.Equal(t, updated, events[0].Payload.(domain.FriendNotification).Data)
			}
		})
	}

	t.Run("it should stay silent when going back to pending", func(t *testing.T) {
		friendStore, friendService, aliceConn, bobConn := setup(t)
		friendStore.On("Get", ctx, "f1").Return(pending, nil).Once()
		friendStore.On("UpdateStatus", ctx, "f1", domain.FriendPending, mock.AnythingOfType("time.Time")).Return(pending, nil).Once()

		_, err := friendService.UpdateStatus(ctx, "alice", "f1", "pending")
		require.NoError(t, err)
		require.Empty(t, aliceConn.received())
		require.Empty(t, bobConn.received())
	})
}

func TestFriendService_Delete(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	friendStore := mocks.NewMockFriendStore(t)
	c := newCore(nil)
	friendService := domain.NewFriendService(friendStore, c.dispatcher)

	aliceConn, bobConn := newConn("c1"), newConn("c2")
	c.registry.Register("alice", aliceConn)
	c.registry.Register("bob", bobConn)

	friend := domain.FriendRelationship{ID: "f1", Requester: "alice", Target: "bob", Status: domain.FriendAccepted}

	t.Run("it should not notify anyone if the delete fails", func(t *testing.T) {
		friendStore.On("Get", ctx, "f1").Return(friend, nil).Once()
		friendStore.On("Delete", ctx, "f1").Return(domain.FriendRelationship{}, fmt.Errorf("error")).Once()

		_, err := friendService.Delete(ctx, "alice", "f1")
		require.Error(t, err)
		require.Empty(t, aliceConn.received())
	})

	t.Run("it should notify both users of the deletion", func(t *testing.T) {
		friendStore.On("Get", ctx, "f1").Return(friend, nil).Once()
		friendStore.On("Delete", ctx, "f1").Return(friend, nil).Once()

		_, err := friendService.Delete(ctx, "alice", "f1")
		require.NoError(t, err)

		expected := []domain.Event{{
			Name:    domain.EventFriendDeleted,
			Payload: domain.FriendNotification{Message: "Friend request deleted successfully", Data: friend},
		}}
		require.Equal(t, expected, aliceConn.received())
		require.Equal(t, expected, bobConn.received())
	})
}

func TestFriendService_List(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	friendStore := mocks.NewMockFriendStore(t)
	friendService := domain.NewFriendService(friendStore, newCore(nil).dispatcher)

	t.Run("it should return an error if the store fails", func(t *testing.T) {
		friendStore.On("ListForUser", ctx, domain.UserID("alice")).Return(nil, fmt.Errorf("error")).Once()

		_, err := friendService.List(ctx, "alice")
		require.Error(t, err)
	})

	t.Run("it should return the relationships of the user", func(t *testing.T) {
		friends := []domain.FriendRelationship{{ID: "f1", Requester: "alice", Target: "bob"}}
		friendStore.On("ListForUser", ctx, domain.UserID("alice")).Return(friends, nil).Once()

		got, err := friendService.List(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, friends, got)
	})
}
