package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const defaultStock = 100

// ImageStore persists product images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type CreateProductInput struct {
	Name           string          `json:"name" validate:"required"`
	Description    string          `json:"description"`
	Price10ml      decimal.Decimal `json:"price_10ml"`
	Price35ml      decimal.Decimal `json:"price_35ml"`
	ImageURL       string          `json:"image_url"`
	Stock          *int            `json:"stock"`
	FragranceNotes []string        `json:"fragrance_notes"`
}

// UpdateProductInput changes only the fields that are present.
type UpdateProductInput struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price10ml      *decimal.Decimal `json:"price_10ml"`
	Price35ml      *decimal.Decimal `json:"price_35ml"`
	ImageURL       *string          `json:"image_url"`
	Stock          *int             `json:"stock"`
	IsActive       *bool            `json:"is_active"`
	FragranceNotes *[]string        `json:"fragrance_notes"`
}

type ProductService struct {
	products repository.ProductRepository
	images   ImageStore
	validate *validator.Validate
}

func NewProductService(products repository.ProductRepository, images ImageStore) *ProductService {
	return &ProductService{products: products, images: images, validate: newValidator()}
}

func (s *ProductService) ListActive(ctx context.Context, page utils.PageRequest) ([]models.Product, utils.Pagination, error) {
	products, err := s.products.ListActive(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, utils.Pagination{}, &PersistenceError{Op: "list products", Err: err}
	}
	total, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, utils.Pagination{}, &PersistenceError{Op: "count products", Err: err}
	}
	return products, utils.NewPagination(page, total), nil
}

// GetActive is the public product lookup; retired products read as not found.
func (s *ProductService) GetActive(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get product", Err: err}
	}
	if !product.IsActive {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *ProductService) Quote(ctx context.Context, id uint, size string, quantity int) (*PriceQuote, error) {
	parsed, err := models.ParseSize(strings.TrimSpace(size))
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, newValidationError("quantity", "must be at least 1")
	}
	product, err := s.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return Quote(product, parsed, quantity)
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(s.validate, &input); err != nil {
		return nil, err
	}
	if err := requirePositive(map[string]decimal.Decimal{
		"price_10ml": input.Price10ml,
		"price_35ml": input.Price35ml,
	}); err != nil {
		return nil, err
	}

	stock := defaultStock
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, newValidationError("stock", "must be at least 0")
		}
		stock = *input.Stock
	}

	notes, err := encodeNotes(input.FragranceNotes)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:           input.Name,
		Description:    strings.TrimSpace(input.Description),
		Price10ml:      input.Price10ml,
		Price35ml:      input.Price35ml,
		ImageURL:       optional(strings.TrimSpace(input.ImageURL)),
		FragranceNotes: notes,
		Stock:          stock,
		IsActive:       true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, &PersistenceError{Op: "create product", Err: err}
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput) (*models.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError("name", "is required")
		}
		fields["name"] = name
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	prices := map[string]decimal.Decimal{}
	if input.Price10ml != nil {
		prices["price_10ml"] = *input.Price10ml
		fields["price_10ml"] = *input.Price10ml
	}
	if input.Price35ml != nil {
		prices["price_35ml"] = *input.Price35ml
		fields["price_35ml"] = *input.Price35ml
	}
	if err := requirePositive(prices); err != nil {
		return nil, err
	}
	if input.ImageURL != nil {
		fields["image_url"] = optional(strings.TrimSpace(*input.ImageURL))
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, newValidationError("stock", "must be at least 0")
		}
		fields["stock"] = *input.Stock
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.FragranceNotes != nil {
		notes, err := encodeNotes(*input.FragranceNotes)
		if err != nil {
			return nil, err
		}
		fields["fragrance_notes"] = notes
	}

	product, err := s.products.Update(ctx, id, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "update product", Err: err}
	}
	return product, nil
}

// Deactivate retires a product. The row stays so past orders still resolve it.
func (s *ProductService) Deactivate(ctx context.Context, id uint) error {
	err := s.products.Deactivate(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &PersistenceError{Op: "deactivate product", Err: err}
	}
	return nil
}

// AttachImage uploads an image and points the product's image_url at it.
func (s *ProductService) AttachImage(ctx context.Context, id uint, filename string, body io.Reader, contentType string) (*models.Product, error) {
	if s.images == nil {
		return nil, ErrImageStorageDisabled
	}
	if _, err := s.products.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "get product", Err: err}
	}

	key := fmt.Sprintf("products/%d/%s-%s", id, uuid.NewString()[:8], filename)
	url, err := s.images.Upload(ctx, key, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return s.Update(ctx, id, UpdateProductInput{ImageURL: &url})
}

func requirePositive(prices map[string]decimal.Decimal) error {
	verr := &ValidationError{Fields: map[string]string{}}
	for field, price := range prices {
		if !price.IsPositive() {
			verr.Fields[field] = "must be a positive amount"
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func encodeNotes(notes []string) (datatypes.JSON, error) {
	if notes == nil {
		return nil, nil
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
