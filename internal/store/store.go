// Package store provides memoized, read-only access to the unified fact
// table and its pivoted wide form. The underlying artifact is parsed once per
// data version and shared by all subsequent queries; refreshing is an
// explicit operation, never an implicit side effect.
package store

import (
	"fmt"
	"os"
	"time"

	"github.com/healthforge/gbdkit/internal/cache"
	"github.com/healthforge/gbdkit/internal/ingest"
	"github.com/healthforge/gbdkit/internal/model"
	"github.com/healthforge/gbdkit/internal/pivot"
)

// Store loads the CLEAN fact table and derives the wide burden table from
// it. Both are cached keyed by the artifact's content identity, so callers
// can hold one Store for the life of the process.
type Store struct {
	path  string
	cache cache.Cache
	ttl   time.Duration
}

// New creates a Store over the CLEAN artifact at path. A nil cache disables
// memoization; every call then re-reads the file.
func New(path string, c cache.Cache, ttl time.Duration) *Store {
	return &Store{path: path, cache: c, ttl: ttl}
}

// loaded is the cached unit: the fact table and its wide pivot, built
// together so they always describe the same data version.
type loaded struct {
	fact *model.FactTable
	wide []model.WideRecord
}

// Fact returns the unified long-form fact table. The result is shared and
// must be treated as read-only.
func (s *Store) Fact() (*model.FactTable, error) {
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return l.fact, nil
}

// Wide returns the pivoted burden table. The result is shared and must be
// treated as read-only.
func (s *Store) Wide() ([]model.WideRecord, error) {
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return l.wide, nil
}

// Refresh drops every cached table. The next access re-reads the artifact;
// this is the invalidation hook run after a new prepare cycle.
func (s *Store) Refresh() {
	if s.cache != nil {
		_ = s.cache.Clear()
	}
}

func (s *Store) load() (*loaded, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat fact table: %w", err)
	}

	var key string
	if s.cache != nil {
		key = cache.TableKey(s.path, info)
		if v, ok := s.cache.Get(key); ok {
			if l, ok := v.(*loaded); ok {
				return l, nil
			}
		}
	}

	fact, err := ingest.ReadTable(s.path)
	if err != nil {
		return nil, err
	}
	wide, err := pivot.Build(fact)
	if err != nil {
		return nil, err
	}

	l := &loaded{fact: fact, wide: wide}
	if s.cache != nil {
		_ = s.cache.Set(key, l, s.ttl)
	}
	return l, nil
}
