package cmd_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arthurdotwork/socialchat/cmd"
	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/identity"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func tokenCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	c := &cobra.Command{Use: "token"}
	c.Flags().String("config", "", "")
	c.Flags().String("user", "", "")
	c.Flags().Duration("ttl", 0, "")
	require.NoError(t, c.ParseFlags(args))

	var out bytes.Buffer
	c.SetOut(&out)

	return c, &out
}

func TestToken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("it should mint a token the server accepts", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "secret")

		c, out := tokenCommand(t, "--user", "alice", "--ttl", "10m")
		require.NoError(t, cmd.Token(ctx, c))

		tokens, err := identity.NewTokenService("secret")
		require.NoError(t, err)

		userID, err := tokens.Verify(ctx, strings.TrimSpace(out.String()))
		require.NoError(t, err)
		require.Equal(t, domain.UserID("alice"), userID)
	})

	t.Run("it should require a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")

		c, _ := tokenCommand(t, "--user", "alice")
		require.ErrorIs(t, cmd.Token(ctx, c), identity.ErrMissingSecret)
	})

	t.Run("it should use the configured lifetime by default", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "secret")
		t.Setenv("TOKEN_TTL", time.Minute.String())

		c, out := tokenCommand(t, "--user", "bob")
		require.NoError(t, cmd.Token(ctx, c))
		require.NotEmpty(t, strings.TrimSpace(out.String()))
	})
}
