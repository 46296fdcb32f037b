package service

import (
	"errors"

	"github.com/simpleapi/simpleapi/internal/product"
)

var ErrNotFound = errors.New("not found")

// Repository is the persistence contract the service depends on; satisfied
// by both the in-memory and the Mongo-backed repositories.
type Repository interface {
	Create(p *product.Product) (string, error)
	Get(id string) (*product.Product, error)
	List(page, pageSize int, query string) ([]*product.Product, error)
	Update(id, name, description string, price float64) error
	Delete(id string) error
}

// Service defines the product business operations used by the handler layer.
type Service interface {
	Create(p *product.Product) (string, error)
	Get(id string) (*product.Product, error)
	List(page, pageSize int, query string) ([]*product.Product, error)
	Update(id, name, description string, price float64) error
	Delete(id string) error
}

func New(repo Repository) Service {
	return &productService{repo: repo}
}

type productService struct {
	repo Repository
}

func (s *productService) Create(p *product.Product) (string, error) {
	return s.repo.Create(p)
}

func (s *productService) Get(id string) (*product.Product, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *productService) List(page, pageSize int, query string) ([]*product.Product, error) {
	return s.repo.List(page, pageSize, query)
}

func (s *productService) Update(id, name, description string, price float64) error {
	if err := s.repo.Update(id, name, description, price); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *productService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return ErrNotFound
	}
	return nil
}
