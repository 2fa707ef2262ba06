// Package product provides an in-memory product store and the tools over
// it. The store is local to the process and shares nothing with the
// external catalog.
package product

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Patch holds the fields of an update. Nil fields, and a blank name or
// description, are kept.
type Patch struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	IsActive    *bool
}

// Store is a concurrent-safe product map keyed by id. Ids start at 1 and
// are never reused, even after deletion.
type Store struct {
	items  sync.Map // int64 -> *models.ProductItem, never mutated after store
	nextID atomic.Int64
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Create adds a product and assigns it the next id. Prices are stored as
// given, negative included.
func (s *Store) Create(in models.ProductInput) models.ProductItem {
	item := &models.ProductItem{
		ID:          s.nextID.Add(1),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Description: in.Description,
		IsActive:    in.IsActive,
	}

	s.items.Store(item.ID, item)

	return *item
}

// Get returns the product with id, or nil.
func (s *Store) Get(id int64) *models.ProductItem {
	v, ok := s.items.Load(id)
	if !ok {
		return nil
	}

	item := *v.(*models.ProductItem)

	return &item
}

// List returns every product, newest (highest id) first.
func (s *Store) List() []models.ProductItem {
	out := make([]models.ProductItem, 0)

	s.items.Range(func(_, v any) bool {
		out = append(out, *v.(*models.ProductItem))

		return true
	})

	slices.SortFunc(out, func(a, b models.ProductItem) int {
		return cmp.Compare(b.ID, a.ID)
	})

	return out
}

// Update applies patch to the product with id. Returns nil if id is
// unknown.
func (s *Store) Update(id int64, patch Patch) *models.ProductItem {
	for {
		v, ok := s.items.Load(id)
		if !ok {
			return nil
		}

		current := v.(*models.ProductItem)
		next := *current

		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			next.Name = strings.TrimSpace(*patch.Name)
		}

		if patch.Price != nil {
			next.Price = *patch.Price
		}

		if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
			d := *patch.Description
			next.Description = &d
		}

		if patch.IsActive != nil {
			next.IsActive = *patch.IsActive
		}

		if s.items.CompareAndSwap(id, current, &next) {
			out := next

			return &out
		}
	}
}

// Delete removes the product with id and reports whether it existed.
func (s *Store) Delete(id int64) bool {
	_, loaded := s.items.LoadAndDelete(id)

	return loaded
}
