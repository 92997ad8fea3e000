package httpapi

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/osu-tournament/internal/domain/user"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

func TestPrincipalFromContext_Missing(t *testing.T) {
	_, err := principalFromContext(context.Background())
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestOsuAccountFromContext(t *testing.T) {
	linked := withPrincipal(context.Background(), user.Principal{UserID: "u1", Osu: user.OsuConnection{ID: 100, Username: "captain"}})
	osu, err := osuAccountFromContext(linked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if osu.ID != 100 {
		t.Fatalf("osu id=%d want 100", osu.ID)
	}

	guest := withPrincipal(context.Background(), user.Principal{UserID: "u2"})
	if _, err := osuAccountFromContext(guest); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unlinked account, got %v", err)
	}
}
