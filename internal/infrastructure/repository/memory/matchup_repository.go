package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/osu-tournament/internal/domain/matchup"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MatchupRepository struct {
	mu     sync.RWMutex
	items  map[primitive.ObjectID]matchup.Matchup
	orders []primitive.ObjectID
}

func NewMatchupRepository() *MatchupRepository {
	return &MatchupRepository{items: make(map[primitive.ObjectID]matchup.Matchup)}
}

func (r *MatchupRepository) GetByID(_ context.Context, id primitive.ObjectID) (matchup.Matchup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return matchup.Matchup{}, false, nil
	}
	return cloneMatchup(m), true, nil
}

func (r *MatchupRepository) ListByTournament(_ context.Context, tournamentID primitive.ObjectID) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0)
	for _, id := range r.orders {
		if m := r.items[id]; m.TournamentID == tournamentID {
			out = append(out, cloneMatchup(m))
		}
	}
	return out, nil
}

func (r *MatchupRepository) Create(_ context.Context, m matchup.Matchup) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = primitive.NewObjectID()
	r.items[m.ID] = cloneMatchup(m)
	r.orders = append(r.orders, m.ID)
	return m.ID, nil
}

func (r *MatchupRepository) Update(_ context.Context, id primitive.ObjectID, p matchup.Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return false, nil
	}
	r.items[id] = cloneMatchup(p.Apply(existing))
	return true, nil
}

func (r *MatchupRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	r.orders = removeID(r.orders, id)
	return true, nil
}

func (r *MatchupRepository) AppendMaps(_ context.Context, id primitive.ObjectID, maps ...matchup.Map) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return false, nil
	}
	m.Maps = append(cloneMatchupMaps(m.Maps), cloneMatchupMaps(maps)...)
	r.items[id] = m
	return true, nil
}

func cloneMatchup(m matchup.Matchup) matchup.Matchup {
	copied := m
	if m.TeamRed != nil {
		red := *m.TeamRed
		copied.TeamRed = &red
	}
	if m.TeamBlue != nil {
		blue := *m.TeamBlue
		copied.TeamBlue = &blue
	}
	copied.Maps = cloneMatchupMaps(m.Maps)
	return copied
}

func cloneMatchupMaps(maps []matchup.Map) []matchup.Map {
	out := make([]matchup.Map, 0, len(maps))
	for _, mp := range maps {
		copied := mp
		if mp.TeamRedScores != nil {
			copied.TeamRedScores = append([]matchup.Score(nil), mp.TeamRedScores...)
		}
		if mp.TeamBlueScores != nil {
			copied.TeamBlueScores = append([]matchup.Score(nil), mp.TeamBlueScores...)
		}
		out = append(out, copied)
	}
	return out
}
