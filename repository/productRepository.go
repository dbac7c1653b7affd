package repository

import (
	"context"
	"fmt"

	"github.com/Kariqs/perfume-api/models"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a ProductRepository backed by gorm.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListActive(ctx context.Context, limit, offset int) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

func (r *productRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetByID does not filter on is_active.
func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return product, nil
	}
	if err := r.db.WithContext(ctx).Model(product).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *productRepository) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
