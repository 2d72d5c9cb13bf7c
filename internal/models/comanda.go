package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ComandaStatus string

const (
	ComandaAberta    ComandaStatus = "aberta"
	ComandaPaga      ComandaStatus = "paga"
	ComandaCancelada ComandaStatus = "cancelada"
)

// Comanda: conta corrente de uma mesa, acumula itens até ser fechada.
// O fluxo garante no máximo uma comanda aberta por mesa.
type Comanda struct {
	ID             uint `gorm:"primaryKey"`
	MesaID         uint `gorm:"index;not null"`
	Mesa           Mesa
	Status         ComandaStatus   `gorm:"size:20;not null;default:aberta"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // atualizado a cada inclusão/remoção de item
	DataAbertura   time.Time       `gorm:"not null"`
	DataFechamento *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Itens []ComandaItem `gorm:"foreignKey:ComandaID;constraint:OnDelete:CASCADE"`
}

type ComandaItem struct {
	ID            uint `gorm:"primaryKey"`
	ComandaID     uint `gorm:"index;not null"`
	ProdutoID     uint `gorm:"index;not null"`
	Produto       Produto
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"` // preço do produto no momento da inclusão
	Observacoes   string          `gorm:"size:255"`                    // ex: "sem cebola"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
