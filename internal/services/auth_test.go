package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventdesk/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	participants := newFakeParticipantRepo()
	p := participants.add("Alice", "alice@example.com")
	p.PasswordHash = "hashed:supersecret"
	p.Role = domain.RoleAdmin

	issuer := &fakeTokenIssuer{}
	svc := NewAuthService(participants, fakeHasher{}, issuer, time.Hour)

	t.Run("success", func(t *testing.T) {
		token, got, err := svc.Login(ctx, "  ALICE@example.com ", "supersecret")
		require.NoError(t, err)
		require.Equal(t, "token-"+p.ID, token)
		require.Equal(t, p.ID, got.ID)
		require.Equal(t, domain.RoleAdmin, issuer.lastRole)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		require.True(t, errors.Is(err, ErrInvalidCredentials))
	})
}
