package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/osu-tournament/internal/domain/user"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, error) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return p, nil
}

// osuAccountFromContext returns the caller's linked osu! account. Callers
// without one are rejected as bad input, not as unauthenticated.
func osuAccountFromContext(ctx context.Context) (user.OsuConnection, error) {
	p, err := principalFromContext(ctx)
	if err != nil {
		return user.OsuConnection{}, err
	}
	if !p.HasOsu() {
		return user.OsuConnection{}, fmt.Errorf("%w: an osu! account must be linked to register a team", usecase.ErrInvalidInput)
	}
	return p.Osu, nil
}
