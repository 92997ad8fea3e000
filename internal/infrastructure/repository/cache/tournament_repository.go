package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	basecache "github.com/riskibarqy/osu-tournament/internal/platform/cache"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tournamentKeyPrefix = "tournament:"

type cachedTournament struct {
	value  tournament.Tournament
	exists bool
}

// TournamentRepository caches tournament lookups by id or slug. Team rosters,
// slug checks and duplicate-player checks always reach the underlying store.
// Any write through the repository drops every cached tournament, and a
// context marked with basecache.Bypass reads straight from the store. Writes
// made by other processes are only seen once entries expire.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store[cachedTournament]
}

// NewTournamentRepository wraps next with a lookup cache. A zero ttl keeps
// entries until the next write.
func NewTournamentRepository(next tournament.Repository, ttl time.Duration) *TournamentRepository {
	return &TournamentRepository{next: next, cache: basecache.NewStore[cachedTournament](ttl)}
}

func (r *TournamentRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string) (tournament.Tournament, bool, error) {
	key := tournamentKeyPrefix + strings.TrimSpace(idOrSlug)
	cached, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTournament, error) {
		t, exists, err := r.next.GetByIDOrSlug(ctx, idOrSlug)
		if err != nil {
			return cachedTournament{}, err
		}
		return cachedTournament{value: t, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.next.SlugExists(ctx, slug)
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) (primitive.ObjectID, error) {
	id, err := r.next.Create(ctx, t)
	r.invalidate(ctx)
	return id, err
}

func (r *TournamentRepository) Update(ctx context.Context, id primitive.ObjectID, p tournament.Patch) (bool, error) {
	found, err := r.next.Update(ctx, id, p)
	r.invalidate(ctx)
	return found, err
}

func (r *TournamentRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	found, err := r.next.Delete(ctx, id)
	r.invalidate(ctx)
	return found, err
}

func (r *TournamentRepository) ListTeams(ctx context.Context, idOrSlug string) ([]tournament.Team, bool, error) {
	return r.next.ListTeams(ctx, idOrSlug)
}

func (r *TournamentRepository) DuplicatePlayers(ctx context.Context, id primitive.ObjectID, candidates []int32) ([]int32, error) {
	return r.next.DuplicatePlayers(ctx, id, candidates)
}

func (r *TournamentRepository) AppendTeams(ctx context.Context, id primitive.ObjectID, teams ...tournament.Team) (bool, error) {
	return r.next.AppendTeams(ctx, id, teams...)
}

func (r *TournamentRepository) RemoveTeams(ctx context.Context, id primitive.ObjectID, teamIDs []primitive.ObjectID) (bool, error) {
	return r.next.RemoveTeams(ctx, id, teamIDs)
}

// Slug and id keys for the same tournament are unrelated, so writes clear the
// whole prefix instead of guessing which keys are affected.
func (r *TournamentRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
}
