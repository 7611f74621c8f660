package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSecret = errors.New("jwt secret is required")

// TokenService signs and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}

	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// Claims carries the user id both as the registered subject and as "id",
// the claim older clients put it in.
type Claims struct {
	UserID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

func (c Claims) userID() string {
	if sub := strings.TrimSpace(c.Subject); sub != "" {
		return sub
	}

	return strings.TrimSpace(c.UserID)
}

func (s *TokenService) Issue(userID domain.UserID, ttl time.Duration) (string, error) {
	if strings.TrimSpace(string(userID)) == "" {
		return "", fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	now := s.now()
	claims := Claims{
		UserID: string(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  string(userID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return token, nil
}

// Verify returns the user the token was issued for. Any malformed, expired,
// or foreign token yields domain.ErrInvalidToken.
func (s *TokenService) Verify(ctx context.Context, token string) (domain.UserID, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	userID := claims.userID()
	if userID == "" {
		return "", domain.ErrInvalidToken
	}

	return domain.UserID(userID), nil
}
