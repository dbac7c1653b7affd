package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Size is one of the two volume variants every product is sold in.
type Size string

const (
	Size10ml Size = "10ml"
	Size35ml Size = "35ml"
)

// Sizes lists the recognized sizes in display order.
var Sizes = []Size{Size10ml, Size35ml}

var ErrInvalidSize = fmt.Errorf("size must be either %q or %q", Size10ml, Size35ml)

func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case Size10ml, Size35ml:
		return Size(s), nil
	}
	return "", ErrInvalidSize
}

// Product rows are never removed. Retired products have IsActive=false and stay
// referenceable from historical order items.
type Product struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:255;not null"`
	Description    string          `json:"description" gorm:"type:text;not null;default:''"`
	Price10ml      decimal.Decimal `json:"price_10ml" gorm:"column:price_10ml;type:decimal(10,2);not null"`
	Price35ml      decimal.Decimal `json:"price_35ml" gorm:"column:price_35ml;type:decimal(10,2);not null"`
	ImageURL       *string         `json:"image_url" gorm:"size:512"`
	FragranceNotes datatypes.JSON  `json:"fragrance_notes"`
	Stock          int             `json:"stock" gorm:"not null;default:0"`
	IsActive       bool            `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
