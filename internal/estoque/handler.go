package estoque

import (
	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateInsumoRequest struct {
	Nome          string          `json:"nome"`
	UnidadeMedida string          `json:"unidade_medida"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
}

type UpdateInsumoRequest struct {
	Nome          string          `json:"nome"`
	UnidadeMedida string          `json:"unidade_medida"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
}

type InsumoResponse struct {
	ID            uint            `json:"id"`
	Nome          string          `json:"nome"`
	UnidadeMedida string          `json:"unidade_medida"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
}

func toInsumoResponse(i models.Insumo) InsumoResponse {
	return InsumoResponse{
		ID:            i.ID,
		Nome:          i.Nome,
		UnidadeMedida: i.UnidadeMedida,
		EstoqueAtual:  i.EstoqueAtual,
		EstoqueMinimo: i.EstoqueMinimo,
	}
}

// GET /api/insumos
func ListInsumosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var insumos []models.Insumo
		if err := database.DB.Order("nome").Find(&insumos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os insumos")
		}

		resp := make([]InsumoResponse, len(insumos))
		for i, insumo := range insumos {
			resp[i] = toInsumoResponse(insumo)
		}
		return c.JSON(resp)
	}
}

// GET /api/insumos/abaixo-minimo
func ListInsumosAbaixoMinimoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var insumos []models.Insumo
		err := database.DB.
			Where("estoque_atual <= estoque_minimo AND estoque_minimo > 0").
			Order("nome").
			Find(&insumos).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os insumos")
		}

		resp := make([]InsumoResponse, len(insumos))
		for i, insumo := range insumos {
			resp[i] = toInsumoResponse(insumo)
		}
		return c.JSON(resp)
	}
}

// POST /api/insumos
func CreateInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInsumoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Nome == "" || body.UnidadeMedida == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome e unidade_medida são obrigatórios")
		}
		if body.EstoqueAtual.IsNegative() || body.EstoqueMinimo.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Estoque não pode ser negativo")
		}

		insumo := models.Insumo{
			Nome:          body.Nome,
			UnidadeMedida: body.UnidadeMedida,
			EstoqueAtual:  body.EstoqueAtual,
			EstoqueMinimo: body.EstoqueMinimo,
		}

		if err := database.DB.Create(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o insumo")
		}

		return c.Status(fiber.StatusCreated).JSON(toInsumoResponse(insumo))
	}
}

// PUT /api/insumos/:id
func UpdateInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body UpdateInsumoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.EstoqueAtual.IsNegative() || body.EstoqueMinimo.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Estoque não pode ser negativo")
		}

		var insumo models.Insumo
		if err := database.DB.First(&insumo, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo não encontrado")
		}

		insumo.Nome = body.Nome
		insumo.UnidadeMedida = body.UnidadeMedida
		insumo.EstoqueAtual = body.EstoqueAtual
		insumo.EstoqueMinimo = body.EstoqueMinimo

		if err := database.DB.Save(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o insumo")
		}

		return c.JSON(toInsumoResponse(insumo))
	}
}

// DELETE /api/insumos/:id
func DeleteInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var insumo models.Insumo
		if err := database.DB.First(&insumo, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo não encontrado")
		}

		// Insumo em uso em alguma ficha técnica não pode ser excluído
		var emUso int64
		database.DB.Model(&models.FichaTecnicaItem{}).
			Where("insumo_id = ?", insumo.ID).
			Count(&emUso)
		if emUso > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Não é possível excluir. Este insumo está sendo usado em uma ficha técnica.")
		}

		if err := database.DB.Delete(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o insumo")
		}

		return c.JSON(fiber.Map{"message": "Insumo excluído com sucesso"})
	}
}
