package property

import (
	"context"
	"sort"
	"sync"

	"github.com/propnest/propnest/internal/shared"
)

type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	storage map[int64]Property
}

// NewMemoryRepository constructs an in-memory repository for tests and local development.
func NewMemoryRepository() Repository {
	return &memoryRepository{nextID: 1, storage: make(map[int64]Property)}
}

func (r *memoryRepository) List(_ context.Context) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(Property) bool { return true }), nil
}

func (r *memoryRepository) Page(_ context.Context, page, size int) ([]Property, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sorted(func(Property) bool { return true })

	start := shared.Offset(page, size)
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.storage[id]
	if !ok {
		return Property{}, notFound(id)
	}
	return p, nil
}

func (r *memoryRepository) Create(_ context.Context, p Property) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.storage[p.ID] = p
	return p, nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, patch Patch) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.storage[id]
	if !ok {
		return Property{}, notFound(id)
	}
	p = patch.Apply(p)
	r.storage[id] = p
	return p, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.storage, id)
	return nil
}

func (r *memoryRepository) Search(_ context.Context, f Filter) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(f.Match), nil
}

// sorted returns the matching records ordered by id. Callers hold the lock.
func (r *memoryRepository) sorted(keep func(Property) bool) []Property {
	items := make([]Property, 0, len(r.storage))
	for _, p := range r.storage {
		if keep(p) {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
