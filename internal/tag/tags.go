// Package tag implements the per-individual tag bag. Tags are looked up by
// their Go type, so a type appears at most once in a bag.
package tag

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Tags is a type-indexed bag of values. The zero value is an empty bag.
type Tags struct {
	m map[reflect.Type]any
}

// Lookup returns the tag of type T and whether it is present.
func Lookup[T any](t Tags) (T, bool) {
	v, ok := t.m[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Get returns the tag of type T or its zero value.
func Get[T any](t Tags) T {
	v, _ := Lookup[T](t)
	return v
}

// Has reports whether a tag of type T is present.
func Has[T any](t Tags) bool {
	_, ok := t.m[reflect.TypeFor[T]()]
	return ok
}

// Put stores v, replacing any tag of the same type.
func Put[T any](t *Tags, v T) {
	if t.m == nil {
		t.m = make(map[reflect.Type]any, 4)
	}
	t.m[reflect.TypeFor[T]()] = v
}

// Update applies fn to the current value of T (zero when absent) and stores
// the result.
func Update[T any](t *Tags, fn func(T) T) {
	Put(t, fn(Get[T](*t)))
}

// Delete removes the tag of type T.
func Delete[T any](t *Tags) {
	delete(t.m, reflect.TypeFor[T]())
}

func (t Tags) Len() int {
	return len(t.m)
}

// Clone returns an independent copy of the bag. Tag values are copied
// shallowly.
func (t Tags) Clone() Tags {
	if len(t.m) == 0 {
		return Tags{}
	}
	m := make(map[reflect.Type]any, len(t.m))
	for k, v := range t.m {
		m[k] = v
	}
	return Tags{m: m}
}

func (t Tags) String() string {
	parts := make([]string, 0, len(t.m))
	for k, v := range t.m {
		parts = append(parts, fmt.Sprintf("%s=%v", k.Name(), v))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, " ") + "}"
}

// Initializer seeds a tag on a freshly created individual.
type Initializer func(*Tags)

// Default returns an Initializer that stores v.
func Default[T any](v T) Initializer {
	return func(t *Tags) {
		Put(t, v)
	}
}
