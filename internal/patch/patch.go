// Package patch implements optional fields for partial update payloads
// and the merge helpers deciding field by field whether a stored value is
// kept or replaced.
package patch

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Value is a single field of a partial update payload.
// The zero Value is absent. A missing JSON key and an explicit JSON null
// both decode as absent.
type Value[T any] struct {
	value T
	set   bool
}

// Some returns a present Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// IsSet reports whether the field was supplied.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Get returns the held value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// OrElse returns the held value, or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.set {
		return fallback
	}

	return v.value
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*v = Value[T]{}
		return nil
	}

	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err //nolint:wrapcheck
	}

	*v = Some(decoded)

	return nil
}

// MarshalJSON implements json.Marshaler. Absent values encode as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return jsonNull, nil
	}

	return json.Marshal(v.value) //nolint:wrapcheck
}

// Replace returns the incoming value when it is present, otherwise existing.
func Replace[T any](existing T, incoming Value[T]) T {
	return incoming.OrElse(existing)
}

// ReplaceNonZero is Replace for required fields: a present zero value
// (e.g. an empty string) counts as absent so the field is never blanked.
func ReplaceNonZero[T comparable](existing T, incoming Value[T]) T {
	var zero T

	if v, ok := incoming.Get(); ok && v != zero {
		return v
	}

	return existing
}

// ReplaceBytes is Replace for binary blobs: an empty blob counts as absent.
func ReplaceBytes(existing []byte, incoming Value[[]byte]) []byte {
	if v, ok := incoming.Get(); ok && len(v) > 0 {
		return v
	}

	return existing
}
