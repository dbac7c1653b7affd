package services

import (
	"github.com/Kariqs/perfume-api/models"
	"github.com/shopspring/decimal"
)

// UnitPrice resolves the price of one unit of product in the given size.
func UnitPrice(product *models.Product, size models.Size) (decimal.Decimal, error) {
	switch size {
	case models.Size10ml:
		return product.Price10ml, nil
	case models.Size35ml:
		return product.Price35ml, nil
	}
	return decimal.Zero, ErrInvalidSize
}

// PriceQuote is the answer to a calculate-price request.
type PriceQuote struct {
	Size       models.Size     `json:"size"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func Quote(product *models.Product, size models.Size, quantity int) (*PriceQuote, error) {
	unit, err := UnitPrice(product, size)
	if err != nil {
		return nil, err
	}
	return &PriceQuote{
		Size:       size,
		UnitPrice:  unit,
		Quantity:   quantity,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// SizePrices lists the price of every size, keyed by size token.
func SizePrices(product *models.Product) map[models.Size]decimal.Decimal {
	prices := make(map[models.Size]decimal.Decimal, len(models.Sizes))
	for _, size := range models.Sizes {
		prices[size], _ = UnitPrice(product, size)
	}
	return prices
}
