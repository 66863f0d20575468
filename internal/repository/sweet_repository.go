package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sweetshop/internal/model"
)

// SweetFilter holds optional search constraints. Nil price bounds impose no
// constraint; empty strings impose no constraint.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// SweetRepository defines catalog persistence operations.
type SweetRepository interface {
	Create(ctx context.Context, sweet *model.Sweet) error
	Update(ctx context.Context, sweet *model.Sweet) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]model.Sweet, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DecrementQuantity(ctx context.Context, id uuid.UUID) (int64, error)
	IncrementQuantity(ctx context.Context, id uuid.UUID, amount int) (int64, error)
}

type sweetRepository struct {
	db *gorm.DB
}

// NewSweetRepository creates a new sweet repository.
func NewSweetRepository(db *gorm.DB) SweetRepository {
	return &sweetRepository{db: db}
}

// Create creates a new sweet.
func (r *sweetRepository) Create(ctx context.Context, sweet *model.Sweet) error {
	return r.db.WithContext(ctx).Create(sweet).Error
}

// FindByID finds a sweet by ID.
func (r *sweetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sweet, error) {
	var sweet model.Sweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sweet).Error; err != nil {
		return nil, err
	}
	return &sweet, nil
}

// List returns all sweets, newest first.
func (r *sweetRepository) List(ctx context.Context) ([]model.Sweet, error) {
	var sweets []model.Sweet
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// Search returns sweets matching the filter, newest first. Name and category
// match case-insensitively as substrings; price bounds are inclusive.
func (r *sweetRepository) Search(ctx context.Context, filter SweetFilter) ([]model.Sweet, error) {
	q := r.db.WithContext(ctx).Model(&model.Sweet{})

	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		q = q.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	var sweets []model.Sweet
	if err := q.Order("created_at DESC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// Update saves all fields of an existing sweet.
func (r *sweetRepository) Update(ctx context.Context, sweet *model.Sweet) error {
	return r.db.WithContext(ctx).Save(sweet).Error
}

// Delete removes a sweet and returns the number of rows deleted.
func (r *sweetRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Sweet{})
	return res.RowsAffected, res.Error
}

// DecrementQuantity atomically decrements quantity by one, guarded so the
// value never goes below zero. Returns the number of rows updated: zero means
// the sweet was out of stock (or gone) at the time of the update.
func (r *sweetRepository) DecrementQuantity(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Sweet{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", 1))
	return res.RowsAffected, res.Error
}

// IncrementQuantity atomically increments quantity by amount. Returns the
// number of rows updated.
func (r *sweetRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, amount int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Sweet{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", amount))
	return res.RowsAffected, res.Error
}
