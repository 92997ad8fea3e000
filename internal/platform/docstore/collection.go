package docstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/osu-tournament/internal/platform/patch"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateResult distinguishes "matched but nothing changed" from a miss,
// which is reported as ErrNotFound instead.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Collection is typed access to one collection of records of type T.
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

func (c *Collection[T]) Raw() *mongo.Collection {
	return c.coll
}

// Find returns every record matching filter; no match is an empty slice.
func (c *Collection[T]) Find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreErr("find", c.Name(), err)
	}

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, wrapStoreErr("decode", c.Name(), err)
	}
	return out, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (T, bool, error) {
	var out T
	err := c.coll.FindOne(ctx, filter, opts...).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		var zero T
		return zero, false, nil
	case err != nil:
		var zero T
		return zero, false, wrapStoreErr("find one", c.Name(), err)
	}
	return out, true, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID, opts ...*options.FindOneOptions) (T, bool, error) {
	return c.FindOne(ctx, ByID(id), opts...)
}

// Insert stores record and returns the identifier assigned by the store.
func (c *Collection[T]) Insert(ctx context.Context, record T) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, wrapStoreErr("insert", c.Name(), err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, crerr.Newf("docstore insert %s: unexpected id type %T", c.Name(), res.InsertedID)
	}
	return id, nil
}

func (c *Collection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, p patch.Patch[T]) (UpdateResult, error) {
	return c.UpdateOne(ctx, ByID(id), p)
}

// UpdateOne writes only the attributes touched by p. An empty patch writes
// nothing and only reports whether filter matches a record.
func (c *Collection[T]) UpdateOne(ctx context.Context, filter any, p patch.Patch[T]) (UpdateResult, error) {
	if p.IsEmpty() {
		found, err := c.Exists(ctx, filter)
		if err != nil {
			return UpdateResult{}, err
		}
		if !found {
			return UpdateResult{}, notFound(c.Name())
		}
		return UpdateResult{Matched: 1}, nil
	}

	return c.update(ctx, "update", filter, UpdateDocument(p))
}

// Push appends values to the array at field without replacing it.
func (c *Collection[T]) Push(ctx context.Context, filter any, field string, values ...any) (UpdateResult, error) {
	if len(values) == 0 {
		return c.UpdateOne(ctx, filter, patch.New[T]())
	}

	update := bson.D{{Key: "$push", Value: bson.D{
		{Key: field, Value: bson.D{{Key: "$each", Value: values}}},
	}}}
	return c.update(ctx, "push", filter, update)
}

// Pull removes every element of the array at field matching cond.
func (c *Collection[T]) Pull(ctx context.Context, filter any, field string, cond any) (UpdateResult, error) {
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: field, Value: cond}}}}
	return c.update(ctx, "pull", filter, update)
}

// PullIndex removes the element at pos of the array at field in a single
// write. A record without that position yields ErrElementNotFound.
func (c *Collection[T]) PullIndex(ctx context.Context, filter any, field string, pos int) (UpdateResult, error) {
	if pos >= 0 {
		arr := bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, bson.A{}}}}
		update := mongo.Pipeline{
			{{Key: "$set", Value: bson.D{{Key: field, Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: bson.D{{Key: "$range", Value: bson.A{0, bson.D{{Key: "$size", Value: arr}}}}}},
					{Key: "as", Value: "i"},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$i", pos}}}},
				}}}},
				{Key: "as", Value: "i"},
				{Key: "in", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{arr, "$$i"}}}},
			}}}}}}},
		}
		positioned := bson.D{{Key: "$and", Value: bson.A{
			filter,
			bson.D{{Key: field + "." + strconv.Itoa(pos), Value: bson.D{{Key: "$exists", Value: true}}}},
		}}}

		res, err := c.update(ctx, "pull index", positioned, update)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return UpdateResult{}, err
		}
	}

	found, err := c.Exists(ctx, filter)
	if err != nil {
		return UpdateResult{}, err
	}
	if !found {
		return UpdateResult{}, notFound(c.Name())
	}
	return UpdateResult{Matched: 1}, fmt.Errorf("%w: %s.%d", ErrElementNotFound, field, pos)
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return c.DeleteOne(ctx, ByID(id))
}

func (c *Collection[T]) DeleteOne(ctx context.Context, filter any) error {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return wrapStoreErr("delete", c.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound(c.Name())
	}
	return nil
}

func (c *Collection[T]) Count(ctx context.Context, filter any) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapStoreErr("count", c.Name(), err)
	}
	return n, nil
}

func (c *Collection[T]) Exists(ctx context.Context, filter any) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, wrapStoreErr("exists", c.Name(), err)
	}
	return n > 0, nil
}

func (c *Collection[T]) update(ctx context.Context, op string, filter, update any) (UpdateResult, error) {
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateResult{}, wrapStoreErr(op, c.Name(), err)
	}
	if res.MatchedCount == 0 {
		return UpdateResult{}, notFound(c.Name())
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// Aggregate runs pipeline against c and decodes each output document as R.
func Aggregate[R, T any](ctx context.Context, c *Collection[T], pipeline any, opts ...*options.AggregateOptions) ([]R, error) {
	cursor, err := c.coll.Aggregate(ctx, pipeline, opts...)
	if err != nil {
		return nil, wrapStoreErr("aggregate", c.Name(), err)
	}

	out := make([]R, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, wrapStoreErr("decode", c.Name(), err)
	}
	return out, nil
}

// UpdateDocument renders p as a $set / $unset update.
func UpdateDocument[T any](p patch.Patch[T]) bson.D {
	set := bson.D{}
	unset := bson.D{}
	for _, entry := range p.Entries() {
		if entry.Cleared {
			unset = append(unset, bson.E{Key: entry.Key, Value: ""})
			continue
		}
		set = append(set, bson.E{Key: entry.Key, Value: entry.Value})
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}
