package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/osu-tournament/internal/domain/matchup"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MatchupCollection = "osu_matches"

type MatchupRepository struct {
	coll *docstore.Collection[matchup.Matchup]
}

func NewMatchupRepository(db *docstore.Database) *MatchupRepository {
	return &MatchupRepository{coll: docstore.CollectionOf[matchup.Matchup](db, MatchupCollection)}
}

func (r *MatchupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (matchup.Matchup, bool, error) {
	m, found, err := r.coll.FindByID(ctx, id)
	if err != nil {
		return matchup.Matchup{}, false, fmt.Errorf("find matchup: %w", err)
	}
	return m, found, nil
}

func (r *MatchupRepository) ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]matchup.Matchup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	out, err := r.coll.Find(ctx, bson.D{{Key: "tournament_id", Value: tournamentID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find matchups by tournament: %w", err)
	}
	return out, nil
}

func (r *MatchupRepository) Create(ctx context.Context, m matchup.Matchup) (primitive.ObjectID, error) {
	m.ID = primitive.NilObjectID
	if m.Maps == nil {
		m.Maps = []matchup.Map{}
	}

	id, err := r.coll.Insert(ctx, m)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert matchup: %w", err)
	}
	return id, nil
}

func (r *MatchupRepository) Update(ctx context.Context, id primitive.ObjectID, p matchup.Patch) (bool, error) {
	_, err := r.coll.UpdateByID(ctx, id, p)
	return writeResult("update matchup", err)
}

func (r *MatchupRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := r.coll.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete matchup: %w", err)
	}
	return true, nil
}

func (r *MatchupRepository) AppendMaps(ctx context.Context, id primitive.ObjectID, maps ...matchup.Map) (bool, error) {
	values := make([]any, 0, len(maps))
	for _, m := range maps {
		values = append(values, m)
	}
	_, err := r.coll.Push(ctx, docstore.ByID(id), "maps", values...)
	return writeResult("push matchup maps", err)
}
