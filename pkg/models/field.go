package models

import "encoding/json"

// Field is one field of a partial update. The zero value keeps the current
// value; a field decoded from JSON is set only when the key is present with a
// non-null value.
type Field[T any] struct {
	Value T
	Set   bool
}

// SetTo returns a field that replaces the current value with v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Keep returns a field that retains the current value.
func Keep[T any]() Field[T] {
	return Field[T]{}
}

// Or returns the update value if set, otherwise current.
func (f Field[T]) Or(current T) T {
	if f.Set {
		return f.Value
	}
	return current
}

// UnmarshalJSON treats null the same as an absent key.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = v
	f.Set = true
	return nil
}

// MarshalJSON renders a kept field as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// orEmpty is the retention rule for nullable text columns: a kept value that
// was never set comes back as an empty string.
func orEmpty(f Field[string], current *string) *string {
	if f.Set {
		v := f.Value
		return &v
	}
	v := ""
	if current != nil {
		v = *current
	}
	return &v
}
