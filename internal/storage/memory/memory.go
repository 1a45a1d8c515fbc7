// Package memory is a map-backed stock store used in tests and local runs
// where no database is reachable.
package memory

import (
	"context"
	"sync"
)

type binKey struct {
	ItemCode  string
	Warehouse string
}

type Storage struct {
	mu   sync.RWMutex
	bins map[binKey]float64
}

func New() *Storage {
	return &Storage{bins: make(map[binKey]float64)}
}

// SetQty sets the on-hand quantity of a material in a warehouse.
func (s *Storage) SetQty(materialCode, warehouse string, qty float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bins[binKey{ItemCode: materialCode, Warehouse: warehouse}] = qty
}

// GetAvailableQty mirrors the database adapter: an unknown bin reads as zero.
func (s *Storage) GetAvailableQty(_ context.Context, materialCode, warehouse, _ string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bins[binKey{ItemCode: materialCode, Warehouse: warehouse}], nil
}
