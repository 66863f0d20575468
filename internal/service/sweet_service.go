package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sweetshop/internal/cache"
	"sweetshop/internal/errors"
	"sweetshop/internal/metrics"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

const sweetCacheTTL = 5 * time.Minute

// CreateSweetInput carries the fields for creating a sweet. Pointer fields
// distinguish "absent" from an explicit zero.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    *float64
	Quantity *int
}

// UpdateSweetInput carries a partial update. Nil fields are left untouched.
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// SweetService handles catalog and inventory operations.
type SweetService interface {
	Create(ctx context.Context, in CreateSweetInput) (*model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, filter repository.SweetFilter) ([]model.Sweet, error)
	GetByID(ctx context.Context, id string) (*model.Sweet, error)
	Update(ctx context.Context, id string, in UpdateSweetInput) (*model.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string) (*model.Sweet, error)
	Restock(ctx context.Context, id string, quantity int) (*model.Sweet, error)
}

type sweetService struct {
	repo  repository.SweetRepository
	cache *cache.Client
}

// NewSweetService creates a new sweet service.
func NewSweetService(repo repository.SweetRepository, cache *cache.Client) SweetService {
	return &sweetService{repo: repo, cache: cache}
}

func (s *sweetService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("sweet:%s", id.String())
}

// parseID converts a path id into a UUID, reporting malformed ids distinctly
// from unknown ones.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidSweetID
	}
	return parsed, nil
}

// Create validates and persists a new sweet. Every violated field is
// reported, not just the first.
func (s *sweetService) Create(ctx context.Context, in CreateSweetInput) (*model.Sweet, error) {
	var violations []string
	if in.Name == "" {
		violations = append(violations, "Sweet name is required")
	}
	if in.Category == "" {
		violations = append(violations, "Sweet category is required")
	}
	if in.Price == nil {
		violations = append(violations, "Sweet price is required")
	} else if *in.Price < 0 {
		violations = append(violations, "Price cannot be negative")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		violations = append(violations, "Quantity cannot be negative")
	}
	if len(violations) > 0 {
		return nil, errors.NewValidation(violations...)
	}

	sweet := &model.Sweet{
		Name:     in.Name,
		Category: in.Category,
		Price:    *in.Price,
	}
	if in.Quantity != nil {
		sweet.Quantity = *in.Quantity
	}

	if err := s.repo.Create(ctx, sweet); err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}
	return sweet, nil
}

// List returns the whole catalog, newest first.
func (s *sweetService) List(ctx context.Context) ([]model.Sweet, error) {
	return s.repo.List(ctx)
}

// Search returns sweets matching the filter; an empty filter behaves as List.
func (s *sweetService) Search(ctx context.Context, filter repository.SweetFilter) ([]model.Sweet, error) {
	return s.repo.Search(ctx, filter)
}

// GetByID retrieves a sweet by id with read-through caching.
func (s *sweetService) GetByID(ctx context.Context, id string) (*model.Sweet, error) {
	sweetID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(sweetID)); data != nil {
		var cached model.Sweet
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	sweet, err := s.repo.FindByID(ctx, sweetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSweetNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(sweet); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(sweetID), payload, sweetCacheTTL)
	}

	return sweet, nil
}

// Update applies only the provided fields, leaving the rest untouched.
// Explicit zeros for price and quantity are valid values.
func (s *sweetService) Update(ctx context.Context, id string, in UpdateSweetInput) (*model.Sweet, error) {
	sweetID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var violations []string
	if in.Name != nil && *in.Name == "" {
		violations = append(violations, "Sweet name is required")
	}
	if in.Category != nil && *in.Category == "" {
		violations = append(violations, "Sweet category is required")
	}
	if in.Price != nil && *in.Price < 0 {
		violations = append(violations, "Price cannot be negative")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		violations = append(violations, "Quantity cannot be negative")
	}
	if len(violations) > 0 {
		return nil, errors.NewValidation(violations...)
	}

	sweet, err := s.repo.FindByID(ctx, sweetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSweetNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		sweet.Name = *in.Name
	}
	if in.Category != nil {
		sweet.Category = *in.Category
	}
	if in.Price != nil {
		sweet.Price = *in.Price
	}
	if in.Quantity != nil {
		sweet.Quantity = *in.Quantity
	}

	if err := s.repo.Update(ctx, sweet); err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(sweetID))
	return sweet, nil
}

// Delete removes a sweet from the catalog.
func (s *sweetService) Delete(ctx context.Context, id string) error {
	sweetID, err := parseID(id)
	if err != nil {
		return err
	}

	rows, err := s.repo.Delete(ctx, sweetID)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if rows == 0 {
		return errors.ErrSweetNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(sweetID))
	return nil
}

// Purchase decrements stock by one. The decrement is a single guarded UPDATE
// so concurrent purchases can never drive quantity below zero.
func (s *sweetService) Purchase(ctx context.Context, id string) (*model.Sweet, error) {
	sweetID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.DecrementQuantity(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("purchase sweet: %w", err)
	}
	if rows == 0 {
		// Either the sweet does not exist or the guard held at zero stock.
		if _, err := s.repo.FindByID(ctx, sweetID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrSweetNotFound
			}
			return nil, err
		}
		metrics.OutOfStockTotal.Inc()
		return nil, errors.ErrOutOfStock
	}

	_ = s.cache.Delete(ctx, s.cacheKey(sweetID))

	sweet, err := s.repo.FindByID(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("reload sweet: %w", err)
	}

	metrics.PurchasesTotal.Inc()
	return sweet, nil
}

// Restock increments stock by a positive amount.
func (s *sweetService) Restock(ctx context.Context, id string, quantity int) (*model.Sweet, error) {
	sweetID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errors.ErrInvalidRestockQuantity
	}

	rows, err := s.repo.IncrementQuantity(ctx, sweetID, quantity)
	if err != nil {
		return nil, fmt.Errorf("restock sweet: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrSweetNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(sweetID))

	sweet, err := s.repo.FindByID(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("reload sweet: %w", err)
	}

	metrics.RestocksTotal.Inc()
	return sweet, nil
}
