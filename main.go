package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthurdotwork/socialchat/cmd"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sig
		slog.DebugContext(ctx, "received signal, initiating shutdown")
		cancel()
	}()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		slog.ErrorContext(ctx, "error running command", "error", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "socialchat",
		Short:         "Presence and realtime routing for the social chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := &cobra.Command{
		Use:   "server",
		Short: "Run the realtime, REST and gRPC servers",
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.Server(c.Context(), c)
		},
	}
	server.Flags().String("config", "", "path to a YAML configuration file")

	client := &cobra.Command{
		Use:   "client",
		Short: "Chat from the terminal over gRPC",
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.Client(c.Context(), c)
		},
	}
	client.Flags().String("addr", "localhost:56000", "gRPC address of the server")

	token := &cobra.Command{
		Use:   "token",
		Short: "Mint a development identity token",
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.Token(c.Context(), c)
		},
	}
	token.Flags().String("config", "", "path to a YAML configuration file")
	token.Flags().String("user", "", "user id the token is issued for")
	token.Flags().Duration("ttl", 0, "token lifetime, defaults to the configured token_ttl")
	_ = token.MarkFlagRequired("user")

	root.AddCommand(server, client, token)

	return root
}
