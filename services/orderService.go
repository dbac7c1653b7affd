package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderNumberPrefix = "ORD-"

// NewOrderNumber returns "ORD-" followed by the first eight hex digits of a
// random UUID, upper-cased.
func NewOrderNumber() string {
	head, _, _ := strings.Cut(uuid.NewString(), "-")
	return orderNumberPrefix + strings.ToUpper(head)
}

type OrderLineInput struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required,oneof=10ml 35ml"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderInput struct {
	CustomerName string           `json:"customer_name" validate:"required"`
	Age          int              `json:"age" validate:"required,min=1"`
	School       string           `json:"school"`
	Address      string           `json:"address" validate:"required"`
	Email        string           `json:"email" validate:"omitempty,email"`
	PhoneNumber  string           `json:"phone_number" validate:"required"`
	Notes        string           `json:"notes"`
	Items        []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

func (in *PlaceOrderInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.School = strings.TrimSpace(in.School)
	in.Address = strings.TrimSpace(in.Address)
	in.Email = strings.TrimSpace(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Notes = strings.TrimSpace(in.Notes)
	for i := range in.Items {
		in.Items[i].Size = strings.TrimSpace(in.Items[i].Size)
	}
}

// OrderService places orders and serves the order read paths.
type OrderService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	notifiers *Notifiers
	validate  *validator.Validate

	newOrderNumber func() string
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, notifiers *Notifiers) *OrderService {
	return &OrderService{
		products:       products,
		orders:         orders,
		notifiers:      notifiers,
		validate:       newValidator(),
		newOrderNumber: NewOrderNumber,
	}
}

// PlaceOrder validates the request, prices every line from the catalog and
// stores the order with its items atomically. Nothing is written unless every
// line resolves.
//
// Product lookup goes through GetByID, so retired products can still be ordered.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	input.normalize()
	if err := validateStruct(s.validate, &input); err != nil {
		return nil, err
	}

	resolved := make(map[uint]*models.Product, len(input.Items))
	items := make([]models.OrderItem, 0, len(input.Items))
	total := decimal.Zero

	for _, line := range input.Items {
		product, ok := resolved[line.ProductID]
		if !ok {
			p, err := s.products.GetByID(ctx, line.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &ProductNotFoundError{ID: line.ProductID}
			}
			if err != nil {
				return nil, &PersistenceError{Op: "resolve product", Err: err}
			}
			product = p
			resolved[line.ProductID] = p
		}

		size, err := models.ParseSize(line.Size)
		if err != nil {
			return nil, err
		}
		unitPrice, err := UnitPrice(product, size)
		if err != nil {
			return nil, err
		}
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			Size:        size,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
		})
	}

	order := &models.Order{
		OrderNumber:  s.newOrderNumber(),
		CustomerName: input.CustomerName,
		Age:          input.Age,
		School:       optional(input.School),
		Address:      input.Address,
		Email:        optional(input.Email),
		PhoneNumber:  input.PhoneNumber,
		TotalAmount:  total,
		Status:       models.OrderStatusPending,
		Notes:        optional(input.Notes),
		Items:        items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, &PersistenceError{Op: "place order", Err: err}
	}

	s.notifiers.Publish(ctx, newOrderEvent(EventOrderPlaced, order))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get order", Err: err}
	}
	return order, nil
}

// ListOrders returns one page of orders, newest first, optionally restricted to
// an exact status.
func (s *OrderService) ListOrders(ctx context.Context, page utils.PageRequest, status string) ([]models.Order, utils.Pagination, error) {
	orders, total, err := s.orders.List(ctx, repository.OrderFilter{
		Status: strings.TrimSpace(status),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, utils.Pagination{}, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, utils.NewPagination(page, total), nil
}

// UpdateStatus overwrites the status with any of the five recognized values.
// Unrecognized values are rejected before the store is touched.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, err
	}

	order, err := s.orders.UpdateStatus(ctx, id, next)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "update order status", Err: err}
	}

	s.notifiers.Publish(ctx, newOrderEvent(EventOrderStatusChanged, order))
	return order, nil
}

func (s *OrderService) DashboardStats(ctx context.Context) (*models.OrderStats, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "order stats", Err: err}
	}
	products, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "count products", Err: err}
	}
	stats.TotalProducts = products
	return stats, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
