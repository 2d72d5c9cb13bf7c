package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PagamentoDinheiro = "dinheiro"
	PagamentoCredito  = "credito"
	PagamentoDebito   = "debito"
	PagamentoPix      = "pix"
)

// Venda: fechamento de uma comanda. Criada uma única vez pelo fechamento e
// imutável depois disso; a comanda não pode ser excluída enquanto a venda
// existir (trilha de auditoria).
type Venda struct {
	ID             uint            `gorm:"primaryKey"`
	ComandaID      uint            `gorm:"uniqueIndex;not null"` // uma venda por comanda
	Comanda        Comanda         `gorm:"constraint:OnDelete:RESTRICT"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"` // soma dos itens da comanda no fechamento
	ValorPago      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Troco          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FormaPagamento string          `gorm:"size:30;not null"` // dinheiro, credito, debito, pix
	DataVenda      time.Time       `gorm:"index;not null"`
	CreatedAt      time.Time
}
