package cardapio

import (
	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProdutoRequest struct {
	Nome       string          `json:"nome"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
}

type ProdutoResponse struct {
	ID         uint            `json:"id"`
	Nome       string          `json:"nome"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
}

func toProdutoResponse(p models.Produto) ProdutoResponse {
	return ProdutoResponse{ID: p.ID, Nome: p.Nome, PrecoVenda: p.PrecoVenda}
}

// GET /api/produtos
func ListProdutosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var produtos []models.Produto
		if err := database.DB.Order("nome").Find(&produtos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os produtos")
		}

		resp := make([]ProdutoResponse, len(produtos))
		for i, p := range produtos {
			resp[i] = toProdutoResponse(p)
		}
		return c.JSON(resp)
	}
}

// POST /api/produtos
func CreateProdutoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProdutoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}
		if !body.PrecoVenda.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "preco_venda deve ser maior que zero")
		}

		produto := models.Produto{Nome: body.Nome, PrecoVenda: body.PrecoVenda}
		if err := database.DB.Create(&produto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o produto")
		}

		return c.Status(fiber.StatusCreated).JSON(toProdutoResponse(produto))
	}
}

// PUT /api/produtos/:id
func UpdateProdutoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body CreateProdutoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if !body.PrecoVenda.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "preco_venda deve ser maior que zero")
		}

		var produto models.Produto
		if err := database.DB.First(&produto, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		produto.Nome = body.Nome
		produto.PrecoVenda = body.PrecoVenda
		if err := database.DB.Save(&produto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o produto")
		}

		return c.JSON(toProdutoResponse(produto))
	}
}

// DELETE /api/produtos/:id
func DeleteProdutoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var produto models.Produto
		if err := database.DB.First(&produto, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		// Produto já lançado em comanda não pode ser excluído
		var emComanda int64
		database.DB.Model(&models.ComandaItem{}).
			Where("produto_id = ?", produto.ID).
			Count(&emComanda)
		if emComanda > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Não é possível excluir. Este produto já foi lançado em comandas.")
		}

		// A ficha técnica do produto cai junto
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var ficha models.FichaTecnica
			if err := tx.Where("produto_id = ?", produto.ID).First(&ficha).Error; err == nil {
				if err := tx.Where("ficha_tecnica_id = ?", ficha.ID).Delete(&models.FichaTecnicaItem{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&ficha).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&produto).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o produto")
		}

		return c.JSON(fiber.Map{"message": "Produto excluído com sucesso"})
	}
}
