package schedule

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Key is the type-erased view of a FieldKey, used wherever keys of different
// value types are listed together (generator dependencies, column names).
type Key interface {
	Name() string
}

// FieldKey names a per-period value of type T. Keys are compared by name.
type FieldKey[T any] struct {
	name string
}

var (
	keyTypesMu sync.Mutex
	keyTypes   = map[string]reflect.Type{}
)

// NewFieldKey declares a key. Declaring the same name twice with the same
// type returns an equal key; declaring it with a different type panics.
func NewFieldKey[T any](name string) FieldKey[T] {
	if name == "" {
		panic("schedule: field key name must not be empty")
	}
	typ := reflect.TypeFor[T]()

	keyTypesMu.Lock()
	defer keyTypesMu.Unlock()
	if prev, ok := keyTypes[name]; ok && prev != typ {
		panic(fmt.Sprintf("schedule: field %q already declared as %s, not %s", name, prev, typ))
	}
	keyTypes[name] = typ
	return FieldKey[T]{name: name}
}

func (k FieldKey[T]) Name() string   { return k.name }
func (k FieldKey[T]) String() string { return k.name }

// Of binds v to the key.
func (k FieldKey[T]) Of(v T) Field {
	return Field{name: k.name, value: v}
}

// Get looks the key up in m.
func (k FieldKey[T]) Get(m FieldMap) (T, bool) {
	v, ok := m.values[k.name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// From looks the key up in the fields of p.
func (k FieldKey[T]) From(p SchedulePeriod) (T, bool) {
	return k.Get(p.fields)
}

// Require is From for fields a stage cannot do without; absence is a MissingFieldError.
func (k FieldKey[T]) Require(p SchedulePeriod) (T, error) {
	v, ok := k.Get(p.fields)
	if !ok {
		return v, &MissingFieldError{Field: k.name, Period: p.rng}
	}
	return v, nil
}

// Field is a key bound to a value of the key's type.
type Field struct {
	name  string
	value any
}

func (f Field) Name() string { return f.name }
func (f Field) Value() any   { return f.value }

// FieldMap is an immutable set of fields. The zero value is empty and usable.
type FieldMap struct {
	values map[string]any
}

// NewFieldMap builds a map from fields; later fields win on duplicate names.
func NewFieldMap(fields ...Field) FieldMap {
	return FieldMap{}.With(fields...)
}

// With returns a copy of m with fields set. m is not modified.
func (m FieldMap) With(fields ...Field) FieldMap {
	if len(fields) == 0 {
		return m
	}
	out := make(map[string]any, len(m.values)+len(fields))
	maps.Copy(out, m.values)
	for _, f := range fields {
		out[f.name] = f.value
	}
	return FieldMap{values: out}
}

// Merge returns a copy of m overlaid with other.
func (m FieldMap) Merge(other FieldMap) FieldMap {
	if len(other.values) == 0 {
		return m
	}
	out := make(map[string]any, len(m.values)+len(other.values))
	maps.Copy(out, m.values)
	maps.Copy(out, other.values)
	return FieldMap{values: out}
}

func (m FieldMap) Has(k Key) bool {
	_, ok := m.values[k.Name()]
	return ok
}

func (m FieldMap) Len() int { return len(m.values) }

// Names returns the field names, sorted.
func (m FieldMap) Names() []string {
	return slices.Sorted(maps.Keys(m.values))
}

// Value returns the untyped value stored under name.
func (m FieldMap) Value(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}
