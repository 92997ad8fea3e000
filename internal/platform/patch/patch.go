// Package patch expresses sparse change-sets over a record type.
//
// A Patch[T] only carries the attributes a caller actually touched. Each
// attribute is described once per record type with an Attr (required value)
// or an OptAttr (value that may be cleared), so the absent/value/cleared rule
// lives here and nowhere else.
package patch

import "errors"

// ErrNotNullable is returned when a request tries to clear a required attribute.
var ErrNotNullable = errors.New("attribute cannot be cleared")

// Change is one touched attribute of T.
type Change[T any] struct {
	key     string
	value   any
	cleared bool
	apply   func(*T)
}

// Key returns the stored attribute name.
func (c Change[T]) Key() string {
	return c.key
}

// Entry is the store-facing view of a Change.
type Entry struct {
	Key     string
	Value   any
	Cleared bool
}

// Attr describes a required attribute of T stored under Key.
type Attr[T, V any] struct {
	Key string
	Ref func(*T) *V
}

func (a Attr[T, V]) Set(value V) Change[T] {
	ref := a.Ref
	return Change[T]{
		key:   a.Key,
		value: value,
		apply: func(t *T) { *ref(t) = value },
	}
}

// OptAttr describes an optional attribute of T stored under Key.
type OptAttr[T, V any] struct {
	Key string
	Ref func(*T) **V
}

func (a OptAttr[T, V]) Set(value V) Change[T] {
	ref := a.Ref
	return Change[T]{
		key:   a.Key,
		value: value,
		apply: func(t *T) {
			copied := value
			*ref(t) = &copied
		},
	}
}

func (a OptAttr[T, V]) Clear() Change[T] {
	ref := a.Ref
	return Change[T]{
		key:     a.Key,
		cleared: true,
		apply:   func(t *T) { *ref(t) = nil },
	}
}

// Patch is an ordered change-set keyed by attribute name. A later change to
// the same key replaces the earlier one.
type Patch[T any] struct {
	changes []Change[T]
}

func New[T any](changes ...Change[T]) Patch[T] {
	return Patch[T]{}.With(changes...)
}

// With returns a copy of p extended by changes. p itself is not modified.
func (p Patch[T]) With(changes ...Change[T]) Patch[T] {
	out := make([]Change[T], 0, len(p.changes)+len(changes))
	out = append(out, p.changes...)

	for _, change := range changes {
		if change.key == "" || change.apply == nil {
			continue
		}

		replaced := false
		for i := range out {
			if out[i].key == change.key {
				out[i] = change
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, change)
		}
	}

	return Patch[T]{changes: out}
}

// Merge returns p extended by every change of other.
func (p Patch[T]) Merge(other Patch[T]) Patch[T] {
	return p.With(other.changes...)
}

func (p Patch[T]) IsEmpty() bool {
	return len(p.changes) == 0
}

func (p Patch[T]) Len() int {
	return len(p.changes)
}

func (p Patch[T]) Has(key string) bool {
	for _, change := range p.changes {
		if change.key == key {
			return true
		}
	}
	return false
}

func (p Patch[T]) Keys() []string {
	out := make([]string, 0, len(p.changes))
	for _, change := range p.changes {
		out = append(out, change.key)
	}
	return out
}

func (p Patch[T]) Entries() []Entry {
	out := make([]Entry, 0, len(p.changes))
	for _, change := range p.changes {
		out = append(out, Entry{
			Key:     change.key,
			Value:   change.value,
			Cleared: change.cleared,
		})
	}
	return out
}

// Apply returns existing with every touched attribute overwritten.
func (p Patch[T]) Apply(existing T) T {
	for _, change := range p.changes {
		change.apply(&existing)
	}
	return existing
}

// Assign adds field to p under attr. Absent fields leave p unchanged.
func Assign[T, V any](p Patch[T], attr Attr[T, V], field Field[V]) (Patch[T], error) {
	switch {
	case field.IsAbsent():
		return p, nil
	case field.IsNull():
		return p, &NotNullableError{Key: attr.Key}
	default:
		value, _ := field.Get()
		return p.With(attr.Set(value)), nil
	}
}

// AssignOpt adds field to p under attr; an explicit null clears the attribute.
func AssignOpt[T, V any](p Patch[T], attr OptAttr[T, V], field Field[V]) Patch[T] {
	switch {
	case field.IsAbsent():
		return p
	case field.IsNull():
		return p.With(attr.Clear())
	default:
		value, _ := field.Get()
		return p.With(attr.Set(value))
	}
}

type NotNullableError struct {
	Key string
}

func (e *NotNullableError) Error() string {
	return "attribute " + e.Key + " cannot be cleared"
}

func (e *NotNullableError) Is(target error) bool {
	return target == ErrNotNullable
}
