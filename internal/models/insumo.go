package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insumo: ingrediente/consumível controlado por quantidade em estoque
type Insumo struct {
	ID            uint            `gorm:"primaryKey"`
	Nome          string          `gorm:"size:100;not null;unique"`
	UnidadeMedida string          `gorm:"size:20;not null"`                      // kg, L, un etc.
	EstoqueAtual  decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"` // nunca fica negativo
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"` // ponto de reposição
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
