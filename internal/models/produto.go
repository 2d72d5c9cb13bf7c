package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Produto struct {
	ID         uint            `gorm:"primaryKey"`
	Nome       string          `gorm:"size:100;not null;unique"`
	PrecoVenda decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
