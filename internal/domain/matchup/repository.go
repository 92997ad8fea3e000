package matchup

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository describes matchup persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (Matchup, bool, error)
	ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]Matchup, error)
	Create(ctx context.Context, m Matchup) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, p Patch) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	AppendMaps(ctx context.Context, id primitive.ObjectID, maps ...Map) (bool, error)
}
