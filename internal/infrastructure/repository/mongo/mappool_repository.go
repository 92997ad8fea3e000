package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MappoolCollection = "osu_mappools"

type MappoolRepository struct {
	coll *docstore.Collection[mappool.Mappool]
}

func NewMappoolRepository(db *docstore.Database) *MappoolRepository {
	return &MappoolRepository{coll: docstore.CollectionOf[mappool.Mappool](db, MappoolCollection)}
}

func (r *MappoolRepository) GetByID(ctx context.Context, id primitive.ObjectID) (mappool.Mappool, bool, error) {
	m, found, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return mappool.Mappool{}, false, fmt.Errorf("find mappool: %w", err)
	}
	return m, found, nil
}

func (r *MappoolRepository) ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]mappool.Mappool, error) {
	out, err := r.coll.Find(ctx, bson.D{{Key: "tournament_id", Value: tournamentID}})
	if err != nil {
		return nil, fmt.Errorf("find mappools by tournament: %w", err)
	}
	return out, nil
}

func (r *MappoolRepository) Create(ctx context.Context, m mappool.Mappool) (primitive.ObjectID, error) {
	m.ID = primitive.NilObjectID
	if m.Maps == nil {
		m.Maps = []mappool.Map{}
	}

	id, err := r.coll.Insert(ctx, m)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert mappool: %w", err)
	}
	return id, nil
}

func (r *MappoolRepository) Update(ctx context.Context, id primitive.ObjectID, p mappool.Patch) (bool, error) {
	_, err := r.coll.UpdateByID(ctx, id, p)
	return writeResult("update mappool", err)
}

func (r *MappoolRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := r.coll.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete mappool: %w", err)
	}
	return true, nil
}

func (r *MappoolRepository) AppendMaps(ctx context.Context, id primitive.ObjectID, maps ...mappool.Map) (bool, error) {
	values := make([]any, 0, len(maps))
	for _, m := range maps {
		values = append(values, m)
	}
	_, err := r.coll.Push(ctx, docstore.ByID(id), "maps", values...)
	return writeResult("push mappool maps", err)
}

func (r *MappoolRepository) RemoveMap(ctx context.Context, id primitive.ObjectID, pos int) (bool, error) {
	_, err := r.coll.PullIndex(ctx, docstore.ByID(id), "maps", pos)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, docstore.ErrNotFound):
		return false, nil
	case errors.Is(err, docstore.ErrElementNotFound):
		return true, fmt.Errorf("%w: position %d", mappool.ErrMapNotFound, pos)
	default:
		return false, fmt.Errorf("remove mappool map: %w", err)
	}
}

// writeResult folds a docstore write error into the (found, error) shape of
// the repository ports.
func writeResult(op string, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, docstore.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}
}
