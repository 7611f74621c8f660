package cmd

import (
	"context"
	"fmt"

	"github.com/arthurdotwork/socialchat/internal/adapters/secondary/identity"
	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

func Token(ctx context.Context, c *cobra.Command) error {
	configPath, _ := c.Flags().GetString("config")
	userID, _ := c.Flags().GetString("user")
	ttl, _ := c.Flags().GetDuration("ttl")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if ttl <= 0 {
		ttl = cfg.TokenTTL
	}

	tokens, err := identity.NewTokenService(cfg.JWTSecretKey)
	if err != nil {
		return fmt.Errorf("identity.NewTokenService: %w", err)
	}

	token, err := tokens.Issue(domain.UserID(userID), ttl)
	if err != nil {
		return fmt.Errorf("tokens.Issue: %w", err)
	}

	fmt.Fprintln(c.OutOrStdout(), token)
	return nil
}
