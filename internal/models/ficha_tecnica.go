package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FichaTecnica: receita do produto (exatamente uma por produto)
type FichaTecnica struct {
	ID        uint   `gorm:"primaryKey"`
	ProdutoID uint   `gorm:"uniqueIndex;not null"`
	Nome      string `gorm:"size:100"` // descrição livre, ex: "Receita padrão"
	CreatedAt time.Time
	UpdatedAt time.Time

	Itens []FichaTecnicaItem `gorm:"foreignKey:FichaTecnicaID;constraint:OnDelete:CASCADE"`
}

// FichaTecnicaItem: insumo consumido por UMA unidade vendida do produto
type FichaTecnicaItem struct {
	ID                   uint `gorm:"primaryKey"`
	FichaTecnicaID       uint `gorm:"not null;uniqueIndex:idx_ficha_insumo"`
	InsumoID             uint `gorm:"not null;uniqueIndex:idx_ficha_insumo"`
	Insumo               Insumo
	QuantidadeNecessaria decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
