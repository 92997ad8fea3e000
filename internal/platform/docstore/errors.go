package docstore

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned by writes whose filter matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrElementNotFound is returned by PullIndex when the record exists but
	// the position is out of range.
	ErrElementNotFound = errors.New("array element not found")
	// ErrStoreUnavailable marks driver failures other than unique-index
	// rejections, which match ErrDuplicateKey instead.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrDuplicateKey marks writes rejected by a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// StoreError carries a driver failure together with the collection operation
// that produced it.
type StoreError struct {
	Op         string
	Collection string
	Err        error
	Duplicate  bool
}

func (e *StoreError) Error() string {
	return "docstore " + e.Op + " " + e.Collection + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrStoreUnavailable:
		return !e.Duplicate
	case ErrDuplicateKey:
		return e.Duplicate
	default:
		return false
	}
}

// LogFields exposes the failing operation to structured logging.
func (e *StoreError) LogFields() []any {
	return []any{"store_op", e.Op, "store_collection", e.Collection, "store_duplicate", e.Duplicate}
}

func wrapStoreErr(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return crerr.WithStack(&StoreError{
		Op:         op,
		Collection: collection,
		Err:        err,
		Duplicate:  mongo.IsDuplicateKeyError(err),
	})
}

func notFound(collection string) error {
	return crerr.Wrapf(ErrNotFound, "collection=%s", collection)
}
