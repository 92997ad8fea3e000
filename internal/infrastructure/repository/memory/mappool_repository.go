package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MappoolRepository struct {
	mu     sync.RWMutex
	items  map[primitive.ObjectID]mappool.Mappool
	orders []primitive.ObjectID
}

func NewMappoolRepository() *MappoolRepository {
	return &MappoolRepository{items: make(map[primitive.ObjectID]mappool.Mappool)}
}

func (r *MappoolRepository) GetByID(_ context.Context, id primitive.ObjectID) (mappool.Mappool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return mappool.Mappool{}, false, nil
	}
	return cloneMappool(m), true, nil
}

func (r *MappoolRepository) ListByTournament(_ context.Context, tournamentID primitive.ObjectID) ([]mappool.Mappool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mappool.Mappool, 0)
	for _, id := range r.orders {
		if m := r.items[id]; m.TournamentID == tournamentID {
			out = append(out, cloneMappool(m))
		}
	}
	return out, nil
}

func (r *MappoolRepository) Create(_ context.Context, m mappool.Mappool) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = primitive.NewObjectID()
	r.items[m.ID] = cloneMappool(m)
	r.orders = append(r.orders, m.ID)
	return m.ID, nil
}

func (r *MappoolRepository) Update(_ context.Context, id primitive.ObjectID, p mappool.Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return false, nil
	}
	r.items[id] = cloneMappool(p.Apply(existing))
	return true, nil
}

func (r *MappoolRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	r.orders = removeID(r.orders, id)
	return true, nil
}

func (r *MappoolRepository) AppendMaps(_ context.Context, id primitive.ObjectID, maps ...mappool.Map) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return false, nil
	}
	m.Maps = append(append([]mappool.Map{}, m.Maps...), maps...)
	r.items[id] = m
	return true, nil
}

func (r *MappoolRepository) RemoveMap(_ context.Context, id primitive.ObjectID, pos int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return false, nil
	}
	if pos < 0 || pos >= len(m.Maps) {
		return true, fmt.Errorf("%w: position %d", mappool.ErrMapNotFound, pos)
	}

	maps := make([]mappool.Map, 0, len(m.Maps)-1)
	maps = append(maps, m.Maps[:pos]...)
	maps = append(maps, m.Maps[pos+1:]...)
	m.Maps = maps
	r.items[id] = m
	return true, nil
}

func cloneMappool(m mappool.Mappool) mappool.Mappool {
	copied := m
	copied.Maps = append([]mappool.Map{}, m.Maps...)
	return copied
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
