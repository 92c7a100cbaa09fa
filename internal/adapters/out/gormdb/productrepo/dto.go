// Package productrepo persists products and the stock movement ledger.
package productrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey"`
	Code         string          `gorm:"size:50;not null;uniqueIndex"`
	Name         string          `gorm:"size:100;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock        int             `gorm:"not null"`
	StockMinimum int             `gorm:"not null"`
	Category     string          `gorm:"size:100"`
	Active       bool            `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

// MovementDTO is one row of the append-only stock ledger. order_id carries
// no foreign key: deleting an order keeps its movements.
type MovementDTO struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	ProductID   uuid.UUID   `gorm:"type:char(36);not null;index"`
	Product     *ProductDTO `gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	OrderID     *uuid.UUID  `gorm:"type:char(36);index"`
	Delta       int         `gorm:"not null"`
	StockBefore int         `gorm:"not null"`
	StockAfter  int         `gorm:"not null"`
	Reason      string      `gorm:"size:30;not null"`
	CreatedAt   time.Time   `gorm:"not null;index"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		Code:         p.Code(),
		Name:         p.Name(),
		Price:        p.Price().Decimal(),
		Stock:        p.Stock(),
		StockMinimum: p.StockMinimum(),
		Category:     p.Category(),
		Active:       p.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Code, dto.Name, price, dto.Stock, dto.StockMinimum, dto.Category, dto.Active)
}

func movementFromDomain(m product.Movement) MovementDTO {
	dto := MovementDTO{
		ID:          m.ID.Bytes(),
		ProductID:   m.ProductID.Bytes(),
		Delta:       m.Delta,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      string(m.Reason),
		CreatedAt:   m.CreatedAt,
	}
	if m.OrderID != nil {
		raw := m.OrderID.Bytes()
		dto.OrderID = &raw
	}
	return dto
}
