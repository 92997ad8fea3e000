package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TournamentCollection = "osu_tournaments"

type TournamentRepository struct {
	coll *docstore.Collection[tournament.Tournament]
}

func NewTournamentRepository(db *docstore.Database) *TournamentRepository {
	return newTournamentRepository(docstore.CollectionOf[tournament.Tournament](db, TournamentCollection))
}

func newTournamentRepository(coll *docstore.Collection[tournament.Tournament]) *TournamentRepository {
	return &TournamentRepository{coll: coll}
}

func (r *TournamentRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string) (tournament.Tournament, bool, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: "teams", Value: 0}})
	t, found, err := r.coll.FindOne(ctx, docstore.IDOrSlug(idOrSlug), opts)
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("find tournament %q: %w", idOrSlug, err)
	}
	return t, found, nil
}

func (r *TournamentRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	exists, err := r.coll.Exists(ctx, bson.D{{Key: "slug", Value: slug}})
	if err != nil {
		return false, fmt.Errorf("check tournament slug: %w", err)
	}
	return exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) (primitive.ObjectID, error) {
	t.ID = primitive.NilObjectID
	id, err := r.coll.Insert(ctx, t)
	if err != nil {
		return primitive.NilObjectID, mapTournamentWriteErr("insert tournament", err)
	}
	return id, nil
}

func (r *TournamentRepository) Update(ctx context.Context, id primitive.ObjectID, p tournament.Patch) (bool, error) {
	if _, err := r.coll.UpdateByID(ctx, id, p); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return true, mapTournamentWriteErr("update tournament", err)
	}
	return true, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := r.coll.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete tournament: %w", err)
	}
	return true, nil
}

func (r *TournamentRepository) ListTeams(ctx context.Context, idOrSlug string) ([]tournament.Team, bool, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: "teams", Value: 1}})
	t, found, err := r.coll.FindOne(ctx, docstore.IDOrSlug(idOrSlug), opts)
	if err != nil {
		return nil, false, fmt.Errorf("find tournament teams %q: %w", idOrSlug, err)
	}
	if !found {
		return nil, false, nil
	}
	if t.Teams == nil {
		return []tournament.Team{}, true, nil
	}
	return t.Teams, true, nil
}

type duplicatePlayersRow struct {
	DuplicatePlayers []int32 `bson:"duplicatePlayers"`
}

// DuplicatePlayersPipeline finds which candidates already play in a team of
// tournament id.
func DuplicatePlayersPipeline(id primitive.ObjectID, candidates []int32) bson.A {
	return bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		bson.D{{Key: "$unwind", Value: "$teams"}},
		bson.D{{Key: "$unwind", Value: "$teams.players"}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "teams.players", Value: bson.D{{Key: "$in", Value: candidates}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "duplicatePlayers", Value: bson.D{{Key: "$addToSet", Value: "$teams.players"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "duplicatePlayers", Value: 1},
		}}},
	}
}

func (r *TournamentRepository) DuplicatePlayers(ctx context.Context, id primitive.ObjectID, candidates []int32) ([]int32, error) {
	if len(candidates) == 0 {
		return []int32{}, nil
	}

	rows, err := docstore.Aggregate[duplicatePlayersRow](ctx, r.coll, DuplicatePlayersPipeline(id, candidates))
	if err != nil {
		return nil, fmt.Errorf("aggregate duplicate players: %w", err)
	}
	if len(rows) == 0 || rows[0].DuplicatePlayers == nil {
		return []int32{}, nil
	}
	return rows[0].DuplicatePlayers, nil
}

func (r *TournamentRepository) AppendTeams(ctx context.Context, id primitive.ObjectID, teams ...tournament.Team) (bool, error) {
	values := make([]any, 0, len(teams))
	for _, team := range teams {
		values = append(values, team)
	}

	if _, err := r.coll.Push(ctx, docstore.ByID(id), "teams", values...); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("push tournament teams: %w", err)
	}
	return true, nil
}

func (r *TournamentRepository) RemoveTeams(ctx context.Context, id primitive.ObjectID, teamIDs []primitive.ObjectID) (bool, error) {
	if len(teamIDs) == 0 {
		exists, err := r.coll.Exists(ctx, docstore.ByID(id))
		if err != nil {
			return false, fmt.Errorf("check tournament: %w", err)
		}
		return exists, nil
	}

	cond := bson.D{{Key: "id", Value: bson.D{{Key: "$in", Value: teamIDs}}}}
	if _, err := r.coll.Pull(ctx, docstore.ByID(id), "teams", cond); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("pull tournament teams: %w", err)
	}
	return true, nil
}

func mapTournamentWriteErr(op string, err error) error {
	if errors.Is(err, docstore.ErrDuplicateKey) {
		return fmt.Errorf("%s: %w", op, &tournament.DuplicateError{Key: "slug"})
	}
	return fmt.Errorf("%s: %w", op, err)
}
