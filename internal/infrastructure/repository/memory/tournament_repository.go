package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentRepository keeps tournaments in process. Slugs are unique the
// same way the store's unique index keeps them unique.
type TournamentRepository struct {
	mu     sync.RWMutex
	items  map[primitive.ObjectID]tournament.Tournament
	orders []primitive.ObjectID
}

func NewTournamentRepository(tournaments ...tournament.Tournament) *TournamentRepository {
	r := &TournamentRepository{items: make(map[primitive.ObjectID]tournament.Tournament, len(tournaments))}
	for _, t := range tournaments {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		r.items[t.ID] = cloneTournament(t)
		r.orders = append(r.orders, t.ID)
	}
	return r
}

func (r *TournamentRepository) GetByIDOrSlug(_ context.Context, idOrSlug string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.lookup(idOrSlug)
	if !ok {
		return tournament.Tournament{}, false, nil
	}

	t.Teams = nil
	return cloneTournament(t), true, nil
}

func (r *TournamentRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.slugTaken(slug, docstore.SentinelID), nil
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(t.Slug, docstore.SentinelID) {
		return primitive.NilObjectID, &tournament.DuplicateError{Key: "slug"}
	}

	t.ID = primitive.NewObjectID()
	r.items[t.ID] = cloneTournament(t)
	r.orders = append(r.orders, t.ID)
	return t.ID, nil
}

func (r *TournamentRepository) Update(_ context.Context, id primitive.ObjectID, p tournament.Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return false, nil
	}

	updated := p.Apply(existing)
	if p.Has(tournament.Slug.Key) && r.slugTaken(updated.Slug, id) {
		return true, &tournament.DuplicateError{Key: "slug"}
	}

	r.items[id] = cloneTournament(updated)
	return true, nil
}

func (r *TournamentRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}

	delete(r.items, id)
	for i, candidate := range r.orders {
		if candidate == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *TournamentRepository) ListTeams(_ context.Context, idOrSlug string) ([]tournament.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.lookup(idOrSlug)
	if !ok {
		return nil, false, nil
	}

	return cloneTeams(t.Teams), true, nil
}

func (r *TournamentRepository) DuplicatePlayers(_ context.Context, id primitive.ObjectID, candidates []int32) ([]int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return []int32{}, nil
	}
	return tournament.DuplicatePlayers(t.Teams, candidates), nil
}

func (r *TournamentRepository) AppendTeams(_ context.Context, id primitive.ObjectID, teams ...tournament.Team) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return false, nil
	}

	t.Teams = append(cloneTeams(t.Teams), cloneTeams(teams)...)
	r.items[id] = t
	return true, nil
}

func (r *TournamentRepository) RemoveTeams(_ context.Context, id primitive.ObjectID, teamIDs []primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return false, nil
	}

	drop := make(map[primitive.ObjectID]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		drop[teamID] = struct{}{}
	}

	kept := make([]tournament.Team, 0, len(t.Teams))
	for _, team := range t.Teams {
		if _, ok := drop[team.ID]; ok {
			continue
		}
		kept = append(kept, cloneTeam(team))
	}

	t.Teams = kept
	r.items[id] = t
	return true, nil
}

func (r *TournamentRepository) lookup(idOrSlug string) (tournament.Tournament, bool) {
	if t, ok := r.items[docstore.NormalizeID(idOrSlug)]; ok {
		return t, true
	}
	for _, id := range r.orders {
		if t := r.items[id]; t.Slug == idOrSlug {
			return t, true
		}
	}
	return tournament.Tournament{}, false
}

func (r *TournamentRepository) slugTaken(slug string, except primitive.ObjectID) bool {
	for id, t := range r.items {
		if id != except && t.Slug == slug {
			return true
		}
	}
	return false
}

func cloneTournament(t tournament.Tournament) tournament.Tournament {
	copied := t
	if t.Teams != nil {
		copied.Teams = cloneTeams(t.Teams)
	}
	return copied
}

func cloneTeams(teams []tournament.Team) []tournament.Team {
	out := make([]tournament.Team, 0, len(teams))
	for _, team := range teams {
		out = append(out, cloneTeam(team))
	}
	return out
}

func cloneTeam(team tournament.Team) tournament.Team {
	copied := team
	copied.Players = append([]int32(nil), team.Players...)
	return copied
}
