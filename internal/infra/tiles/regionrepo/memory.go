package regionrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

// MemoryRepository is an in-memory RegionRepository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	regions map[uuid.UUID]tiles.Region
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{regions: make(map[uuid.UUID]tiles.Region)}
}

// Create implements tiles.RegionRepository.
func (r *MemoryRepository) Create(_ context.Context, region tiles.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.regions[region.ID]; exists {
		return fmt.Errorf("region %s already exists", region.ID)
	}
	r.regions[region.ID] = region
	return nil
}

// Update implements tiles.RegionRepository.
func (r *MemoryRepository) Update(_ context.Context, region tiles.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.regions[region.ID]; !exists {
		return fmt.Errorf("region %s not found", region.ID)
	}
	r.regions[region.ID] = region
	return nil
}

// Get implements tiles.RegionRepository.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (tiles.Region, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	region, ok := r.regions[id]
	return region, ok, nil
}

// List implements tiles.RegionRepository.
func (r *MemoryRepository) List(_ context.Context) ([]tiles.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]tiles.Region, 0, len(r.regions))
	for _, region := range r.regions {
		out = append(out, region)
	}
	return out, nil
}

// Delete implements tiles.RegionRepository.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.regions, id)
	return nil
}

// ListExpired implements tiles.RegionRepository.
func (r *MemoryRepository) ListExpired(_ context.Context, now time.Time) ([]tiles.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []tiles.Region
	for _, region := range r.regions {
		if region.ExpiresAt != nil && !region.ExpiresAt.After(now) {
			out = append(out, region)
		}
	}
	return out, nil
}

var _ tiles.RegionRepository = (*MemoryRepository)(nil)
