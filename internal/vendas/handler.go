package vendas

import (
	"errors"
	"time"

	"nexus-backend/internal/cardapio"
	"nexus-backend/internal/database"
	"nexus-backend/internal/estoque"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type FecharComandaRequest struct {
	ValorPago      decimal.Decimal `json:"valor_pago"`
	FormaPagamento string          `json:"forma_pagamento"`
}

type VendaResponse struct {
	ID             uint            `json:"id"`
	ComandaID      uint            `json:"comanda_id"`
	Total          decimal.Decimal `json:"total"`
	ValorPago      decimal.Decimal `json:"valor_pago"`
	Troco          decimal.Decimal `json:"troco"`
	FormaPagamento string          `json:"forma_pagamento"`
	DataVenda      string          `json:"data_venda"`
}

func toVendaResponse(v models.Venda) VendaResponse {
	return VendaResponse{
		ID:             v.ID,
		ComandaID:      v.ComandaID,
		Total:          v.Total,
		ValorPago:      v.ValorPago,
		Troco:          v.Troco,
		FormaPagamento: v.FormaPagamento,
		DataVenda:      v.DataVenda.Format(time.RFC3339),
	}
}

func formaPagamentoValida(f string) bool {
	switch f {
	case models.PagamentoDinheiro, models.PagamentoCredito, models.PagamentoDebito, models.PagamentoPix:
		return true
	}
	return false
}

// POST /api/comandas/:id/fechar
func FecharComandaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body FecharComandaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if !formaPagamentoValida(body.FormaPagamento) {
			return fiber.NewError(fiber.StatusBadRequest, "forma_pagamento deve ser dinheiro, credito, debito ou pix")
		}
		if body.ValorPago.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "valor_pago não pode ser negativo")
		}

		venda, err := FecharComanda(database.DB, uint(id), body.ValorPago, body.FormaPagamento)
		if err != nil {
			var faltaEstoque *estoque.EstoqueInsuficienteError
			switch {
			case errors.As(err, &faltaEstoque):
				// Rejeição de negócio: devolve a lista completa de déficits
				// para o caixa mostrar uma mensagem acionável
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error":  "Estoque insuficiente para fechar a comanda",
					"faltas": faltaEstoque.Faltas,
				})
			case errors.Is(err, ErrComandaNaoEncontrada),
				errors.Is(err, cardapio.ErrProdutoNaoEncontrado),
				errors.Is(err, estoque.ErrInsumoNaoEncontrado):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, ErrComandaNaoAberta):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, ErrPagamentoInsuficiente):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			// Falha de armazenamento: a transação já foi desfeita
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toVendaResponse(*venda))
	}
}

// GET /api/vendas
func ListVendasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lista []models.Venda
		if err := database.DB.Order("data_venda DESC").Find(&lista).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as vendas")
		}

		resp := make([]VendaResponse, len(lista))
		for i, v := range lista {
			resp[i] = toVendaResponse(v)
		}
		return c.JSON(resp)
	}
}

// GET /api/vendas/:id
func GetVendaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var venda models.Venda
		if err := database.DB.First(&venda, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		return c.JSON(toVendaResponse(venda))
	}
}
