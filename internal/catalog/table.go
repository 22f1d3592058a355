package catalog

import (
	"fmt"
	"slices"
)

// table is an immutable master table indexed by id and slug. Lookups never
// fail loudly: a miss is reported with ok=false.
type table[T any] struct {
	items  []T
	byID   map[string]int
	bySlug map[string]int
}

func newTable[T any](name string, items []T, id, slug func(T) string) (table[T], error) {
	t := table[T]{
		items:  slices.Clone(items),
		byID:   make(map[string]int, len(items)),
		bySlug: make(map[string]int, len(items)),
	}
	for i, it := range t.items {
		k := id(it)
		if _, dup := t.byID[k]; dup {
			return table[T]{}, fmt.Errorf("%s: duplicate id %q", name, k)
		}
		t.byID[k] = i
		if slug == nil {
			continue
		}
		s := slug(it)
		if _, dup := t.bySlug[s]; dup {
			return table[T]{}, fmt.Errorf("%s: duplicate slug %q", name, s)
		}
		t.bySlug[s] = i
	}
	return t, nil
}

func (t table[T]) get(id string) (T, bool) {
	i, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.items[i], true
}

func (t table[T]) getBySlug(slug string) (T, bool) {
	i, ok := t.bySlug[slug]
	if !ok {
		var zero T
		return zero, false
	}
	return t.items[i], true
}

// all returns a copy in definition order.
func (t table[T]) all() []T {
	return slices.Clone(t.items)
}

func (t table[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range t.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (t table[T]) len() int {
	return len(t.items)
}
