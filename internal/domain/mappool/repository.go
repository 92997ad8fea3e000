package mappool

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository describes mappool persistence needs from use cases.
// Lookups by a sentinel identifier report not found.
type Repository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (Mappool, bool, error)
	ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]Mappool, error)
	Create(ctx context.Context, m Mappool) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, p Patch) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	AppendMaps(ctx context.Context, id primitive.ObjectID, maps ...Map) (bool, error)
	// RemoveMap returns ErrMapNotFound when the mappool exists but has no map at pos.
	RemoveMap(ctx context.Context, id primitive.ObjectID, pos int) (bool, error)
}
