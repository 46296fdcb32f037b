package repository

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simpleapi/simpleapi/internal/product"
)

var ErrNotFound = errors.New("product not found")

// MemoryRepo is the default in-memory product repository.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*product.Product
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*product.Product)}
}

func (m *MemoryRepo) Create(p *product.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	cp := *p
	m.store[p.ID] = &cp
	return p.ID, nil
}

func (m *MemoryRepo) Get(id string) (*product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

// List returns one page of products, newest last by creation time, filtered
// by a case-insensitive name substring when query is non-empty. page is
// 1-based and clamped.
func (m *MemoryRepo) List(page, pageSize int, query string) ([]*product.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*product.Product, 0, len(m.store))
	q := strings.ToLower(query)
	for _, p := range m.store {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			cp := *p
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*product.Product{}, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (m *MemoryRepo) Update(id, name, description string, price float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	p.Name = name
	p.Description = description
	p.Price = price
	return nil
}

func (m *MemoryRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
