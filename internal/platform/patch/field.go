package patch

import (
	"bytes"

	sonic "github.com/bytedance/sonic"
)

type fieldState uint8

const (
	fieldAbsent fieldState = iota
	fieldPresent
	fieldNull
)

// Field is a request-level value that remembers whether it was sent at all.
// The zero Field is absent. When decoded from JSON, a missing key stays
// absent, an explicit null becomes null, and anything else is a value.
type Field[V any] struct {
	state fieldState
	value V
}

func Value[V any](value V) Field[V] {
	return Field[V]{state: fieldPresent, value: value}
}

func Null[V any]() Field[V] {
	return Field[V]{state: fieldNull}
}

func (f Field[V]) IsAbsent() bool {
	return f.state == fieldAbsent
}

func (f Field[V]) IsNull() bool {
	return f.state == fieldNull
}

func (f Field[V]) Get() (V, bool) {
	return f.value, f.state == fieldPresent
}

func (f *Field[V]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero V
		f.state = fieldNull
		f.value = zero
		return nil
	}

	var value V
	if err := sonic.Unmarshal(data, &value); err != nil {
		return err
	}
	f.state = fieldPresent
	f.value = value
	return nil
}

func (f Field[V]) MarshalJSON() ([]byte, error) {
	if f.state != fieldPresent {
		return []byte("null"), nil
	}
	return sonic.Marshal(f.value)
}
