package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	chatgrpc "github.com/arthurdotwork/socialchat/internal/adapters/primary/grpc"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func Client(ctx context.Context, c *cobra.Command) error {
	addr, _ := c.Flags().GetString("addr")

	client, err := chatgrpc.NewClient(ctx, addr)
	if err != nil {
		return fmt.Errorf("chatgrpc.NewClient: %w", err)
	}
	defer client.Close()

	tokenPrompt := promptui.Prompt{Label: "Token", Mask: '*'}
	token, err := tokenPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt.Run: %w", err)
	}

	if err := client.Send(domain.EventRegisterUser, token); err != nil {
		return fmt.Errorf("client.Send: %w", err)
	}

	registered, err := client.Recv()
	if err != nil {
		return fmt.Errorf("client.Recv: %w", err)
	}
	if registered.Name != domain.EventRegistered {
		return fmt.Errorf("registration refused: %v", registered.Payload["message"])
	}

	userID, _ := registered.Payload["userId"].(string)
	fmt.Printf("You are registered as %s\n", userID)

	friendPrompt := promptui.Prompt{Label: "Friend"}
	friend, err := friendPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt.Run: %w", err)
	}

	room := &currentRoom{}
	sink := make(chan error, 1)

	go receiveMessages(client, room, sink)

	if err := client.Send(domain.EventRegisterRoom, userID, friend); err != nil {
		return fmt.Errorf("client.Send: %w", err)
	}

	lines := make(chan string)
	go readLines(lines, sink)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sink:
			if err != nil {
				return fmt.Errorf("receiveMessages: %w", err)
			}

			return nil
		case line := <-lines:
			roomID := room.get()
			if roomID == "" {
				fmt.Println("Waiting for your friend to join...")
				continue
			}

			if err := client.Send(domain.EventSendMessage, roomID, line, userID); err != nil {
				return fmt.Errorf("client.Send: %w", err)
			}
		}
	}
}

type currentRoom struct {
	mu sync.Mutex
	id string
}

func (r *currentRoom) get() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.id
}

func (r *currentRoom) set(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.id = id
}

func readLines(lines chan<- string, sink chan error) {
	for {
		prompt := promptui.Prompt{Label: ">"}
		line, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				sink <- nil
				return
			}

			sink <- fmt.Errorf("prompt.Run: %w", err)
			return
		}

		if line != "" {
			lines <- line
		}
	}
}

func receiveMessages(client *chatgrpc.Client, room *currentRoom, sink chan error) {
	for {
		event, err := client.Recv()
		if err != nil {
			sink <- err
			return
		}

		switch event.Name {
		case domain.EventRoomReady:
			roomID, _ := event.Payload["roomId"].(string)
			room.set(roomID)
			fmt.Printf("%s\n", event.Payload["message"])
		case domain.EventPeerOffline:
			fmt.Printf("%s\n", event.Payload["message"])
		case domain.EventMessageReceived:
			fmt.Printf("%s: %s\n", event.Payload["senderName"], event.Payload["text"])
		case domain.EventError:
			fmt.Printf("error: %s\n", event.Payload["message"])
		default:
			fmt.Printf("%s: %v\n", event.Name, event.Payload)
		}
	}
}
