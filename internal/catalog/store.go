package catalog

import "sync/atomic"

// Store holds the current catalog snapshot. Readers take one snapshot per
// request with Current; a reload replaces the whole snapshot with Swap.
type Store struct {
	cur atomic.Pointer[Catalog]
}

// NewStore creates a store holding c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.cur.Store(c)
	return s
}

// Current returns the active catalog.
func (s *Store) Current() *Catalog {
	return s.cur.Load()
}

// Swap installs c and returns the previous catalog.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.cur.Swap(c)
}
