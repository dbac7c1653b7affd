package services

import (
	"context"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/stretchr/testify/mock"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) ListActive(ctx context.Context, limit, offset int) ([]models.Product, error) {
	args := m.Called(ctx, limit, offset)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockProductRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Product, error) {
	args := m.Called(ctx, id, fields)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockProductRepository) Deactivate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.OrderStats)
	return stats, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, event OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}
