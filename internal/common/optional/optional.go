// Package optional provides a JSON field wrapper that distinguishes between
// a field that is absent from the payload, one that is explicitly null, and
// one that carries a value. Update handlers use it so that absent fields are
// left untouched while explicit nulls clear nullable columns.
package optional

import "encoding/json"

// Field wraps a value of type T for use in update request payloads.
// The zero value represents an absent field.
type Field[T any] struct {
	value   T
	set     bool // present in the payload
	present bool // present and non-null
}

// Of returns a Field carrying the given value.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, set: true, present: true}
}

// Null returns a Field that was explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (f Field[T]) IsSet() bool {
	return f.set
}

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool {
	return f.set && !f.present
}

// Value returns the wrapped value and whether it is present (set and non-null).
func (f Field[T]) Value() (T, bool) {
	return f.value, f.present
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the field
// appears in the payload, which is what lets Field tell absent from null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if string(data) == "null" {
		f.present = false
		var zero T
		f.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.value); err != nil {
		return err
	}
	f.present = true
	return nil
}

// MarshalJSON implements json.Marshaler. Absent and null fields both encode
// as null; callers that need to omit absent fields should check IsSet first.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
