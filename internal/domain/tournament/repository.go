package tournament

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository describes tournament persistence needs from use cases.
// idOrSlug arguments match either the stored identifier or the slug.
type Repository interface {
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (Tournament, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, t Tournament) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, p Patch) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListTeams(ctx context.Context, idOrSlug string) ([]Team, bool, error)
	DuplicatePlayers(ctx context.Context, id primitive.ObjectID, candidates []int32) ([]int32, error)
	AppendTeams(ctx context.Context, id primitive.ObjectID, teams ...Team) (bool, error)
	RemoveTeams(ctx context.Context, id primitive.ObjectID, teamIDs []primitive.ObjectID) (bool, error)
}
