package cardapio

import (
	"errors"

	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateFichaTecnicaRequest struct {
	Nome string `json:"nome"`
}

type AddFichaTecnicaItemRequest struct {
	InsumoID             uint            `json:"insumo_id"`
	QuantidadeNecessaria decimal.Decimal `json:"quantidade_necessaria"`
}

type UpdateFichaTecnicaItemRequest struct {
	QuantidadeNecessaria decimal.Decimal `json:"quantidade_necessaria"`
}

type FichaTecnicaItemResponse struct {
	ID                   uint            `json:"id"`
	InsumoID             uint            `json:"insumo_id"`
	InsumoNome           string          `json:"insumo_nome"`
	UnidadeMedida        string          `json:"unidade_medida"`
	QuantidadeNecessaria decimal.Decimal `json:"quantidade_necessaria"`
}

type FichaTecnicaResponse struct {
	ID        uint                       `json:"id"`
	ProdutoID uint                       `json:"produto_id"`
	Nome      string                     `json:"nome"`
	Itens     []FichaTecnicaItemResponse `json:"itens"`
}

// GET /api/produtos/:id/ficha-tecnica
func GetFichaTecnicaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		produtoID, err := c.ParamsInt("id")
		if err != nil || produtoID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var produto models.Produto
		if err := database.DB.First(&produto, produtoID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		var ficha models.FichaTecnica
		err = database.DB.Preload("Itens.Insumo").Where("produto_id = ?", produto.ID).First(&ficha).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Produto não possui ficha técnica cadastrada")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar a ficha técnica")
		}

		itens := make([]FichaTecnicaItemResponse, len(ficha.Itens))
		for i, item := range ficha.Itens {
			itens[i] = FichaTecnicaItemResponse{
				ID:                   item.ID,
				InsumoID:             item.InsumoID,
				InsumoNome:           item.Insumo.Nome,
				UnidadeMedida:        item.Insumo.UnidadeMedida,
				QuantidadeNecessaria: item.QuantidadeNecessaria,
			}
		}

		return c.JSON(FichaTecnicaResponse{
			ID:        ficha.ID,
			ProdutoID: ficha.ProdutoID,
			Nome:      ficha.Nome,
			Itens:     itens,
		})
	}
}

// POST /api/produtos/:id/ficha-tecnica
func CreateFichaTecnicaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		produtoID, err := c.ParamsInt("id")
		if err != nil || produtoID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body CreateFichaTecnicaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		var produto models.Produto
		if err := database.DB.First(&produto, produtoID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		// Uma ficha técnica por produto
		var existente int64
		database.DB.Model(&models.FichaTecnica{}).
			Where("produto_id = ?", produto.ID).
			Count(&existente)
		if existente > 0 {
			return fiber.NewError(fiber.StatusConflict, "Produto já possui ficha técnica")
		}

		ficha := models.FichaTecnica{ProdutoID: produto.ID, Nome: body.Nome}
		if err := database.DB.Create(&ficha).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a ficha técnica")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":         ficha.ID,
			"produto_id": ficha.ProdutoID,
			"nome":       ficha.Nome,
		})
	}
}

// POST /api/produtos/:id/ficha-tecnica/itens
func AddFichaTecnicaItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		produtoID, err := c.ParamsInt("id")
		if err != nil || produtoID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body AddFichaTecnicaItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.InsumoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "insumo_id é obrigatório")
		}
		if !body.QuantidadeNecessaria.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "quantidade_necessaria deve ser maior que zero")
		}

		var ficha models.FichaTecnica
		err = database.DB.Where("produto_id = ?", produtoID).First(&ficha).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Produto não possui ficha técnica cadastrada")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar a ficha técnica")
		}

		var insumo models.Insumo
		if err := database.DB.First(&insumo, body.InsumoID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo não encontrado")
		}

		// Um insumo só entra uma vez por ficha
		var repetido int64
		database.DB.Model(&models.FichaTecnicaItem{}).
			Where("ficha_tecnica_id = ? AND insumo_id = ?", ficha.ID, insumo.ID).
			Count(&repetido)
		if repetido > 0 {
			return fiber.NewError(fiber.StatusConflict, "Insumo já faz parte desta ficha técnica")
		}

		item := models.FichaTecnicaItem{
			FichaTecnicaID:       ficha.ID,
			InsumoID:             insumo.ID,
			QuantidadeNecessaria: body.QuantidadeNecessaria,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível adicionar o insumo à ficha")
		}

		return c.Status(fiber.StatusCreated).JSON(FichaTecnicaItemResponse{
			ID:                   item.ID,
			InsumoID:             insumo.ID,
			InsumoNome:           insumo.Nome,
			UnidadeMedida:        insumo.UnidadeMedida,
			QuantidadeNecessaria: item.QuantidadeNecessaria,
		})
	}
}

// PUT /api/fichas-tecnicas/itens/:id
func UpdateFichaTecnicaItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body UpdateFichaTecnicaItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if !body.QuantidadeNecessaria.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "quantidade_necessaria deve ser maior que zero")
		}

		var item models.FichaTecnicaItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item da ficha técnica não encontrado")
		}

		item.QuantidadeNecessaria = body.QuantidadeNecessaria
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o item")
		}

		return c.JSON(fiber.Map{
			"id":                    item.ID,
			"insumo_id":             item.InsumoID,
			"quantidade_necessaria": item.QuantidadeNecessaria,
		})
	}
}

// DELETE /api/fichas-tecnicas/itens/:id
func DeleteFichaTecnicaItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var item models.FichaTecnicaItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item da ficha técnica não encontrado")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o item")
		}

		return c.JSON(fiber.Map{"message": "Item removido da ficha técnica"})
	}
}
