package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/perfume-api/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ProductRepository handles persistence for the catalog.
//
// ListActive and GetByID are deliberately different capabilities: browse paths
// only ever see active products, while GetByID resolves any product, including
// retired ones still referenced by orders.
type ProductRepository interface {
	ListActive(ctx context.Context, limit, offset int) ([]models.Product, error)
	CountActive(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Product, error)
	Deactivate(ctx context.Context, id uint) error
}

// OrderFilter selects a page of orders, optionally by exact status.
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// OrderRepository handles persistence for orders and their items.
type OrderRepository interface {
	// Create stores the order header and all of its items in one transaction.
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	Stats(ctx context.Context) (*models.OrderStats, error)
}

// UserRepository handles persistence for accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
