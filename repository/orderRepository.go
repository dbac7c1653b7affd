package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/perfume-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an OrderRepository backed by gorm.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the header and then one row per item. Any failure rolls the
// whole transaction back and the pooled connection is released either way.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Omit(clause.Associations).Create(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to insert order item %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (r *orderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("Items.Product")
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withItems(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	hydrate(&order)
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		countQuery = countQuery.Where("status = ?", filter.Status)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := r.withItems(ctx)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	orders := []models.Order{}
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}

	for i := range orders {
		hydrate(&orders[i])
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}

	err := r.db.WithContext(ctx).Model(&order).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, err)
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	var stats models.OrderStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS shipped_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM orders`,
		models.OrderStatusPending,
		models.OrderStatusApproved,
		models.OrderStatusCancelled,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}
	return &stats, nil
}

// hydrate copies display fields from the joined product and guarantees a
// non-nil item list.
func hydrate(order *models.Order) {
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.Product != nil {
			item.ProductName = item.Product.Name
			item.ImageURL = item.Product.ImageURL
		}
	}
}
