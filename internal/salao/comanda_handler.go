package salao

import (
	"time"

	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AbrirComandaRequest struct {
	MesaID uint `json:"mesa_id"`
}

type AddComandaItemRequest struct {
	ProdutoID   uint   `json:"produto_id"`
	Quantidade  int    `json:"quantidade"`
	Observacoes string `json:"observacoes"`
}

type ComandaItemResponse struct {
	ID            uint            `json:"id"`
	ProdutoID     uint            `json:"produto_id"`
	ProdutoNome   string          `json:"produto_nome"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Observacoes   string          `json:"observacoes"`
}

type ComandaResponse struct {
	ID             uint                  `json:"id"`
	MesaID         uint                  `json:"mesa_id"`
	MesaNumero     int                   `json:"mesa_numero"`
	Status         string                `json:"status"`
	Total          decimal.Decimal       `json:"total"`
	DataAbertura   string                `json:"data_abertura"`
	DataFechamento *string               `json:"data_fechamento"`
	Itens          []ComandaItemResponse `json:"itens,omitempty"`
}

func toComandaResponse(cm models.Comanda, comItens bool) ComandaResponse {
	resp := ComandaResponse{
		ID:           cm.ID,
		MesaID:       cm.MesaID,
		MesaNumero:   cm.Mesa.Numero,
		Status:       string(cm.Status),
		Total:        cm.Total,
		DataAbertura: cm.DataAbertura.Format(time.RFC3339),
	}
	if cm.DataFechamento != nil {
		f := cm.DataFechamento.Format(time.RFC3339)
		resp.DataFechamento = &f
	}
	if comItens {
		resp.Itens = make([]ComandaItemResponse, len(cm.Itens))
		for i, item := range cm.Itens {
			resp.Itens[i] = ComandaItemResponse{
				ID:            item.ID,
				ProdutoID:     item.ProdutoID,
				ProdutoNome:   item.Produto.Nome,
				Quantidade:    item.Quantidade,
				PrecoUnitario: item.PrecoUnitario,
				Subtotal:      item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))),
				Observacoes:   item.Observacoes,
			}
		}
	}
	return resp
}

// POST /api/comandas
func AbrirComandaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AbrirComandaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.MesaID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "mesa_id é obrigatório")
		}

		var comanda models.Comanda
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var mesa models.Mesa
			if err := tx.First(&mesa, body.MesaID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Mesa não encontrada")
			}

			// No máximo uma comanda aberta por mesa
			var abertas int64
			tx.Model(&models.Comanda{}).
				Where("mesa_id = ? AND status = ?", mesa.ID, models.ComandaAberta).
				Count(&abertas)
			if abertas > 0 {
				return fiber.NewError(fiber.StatusConflict, "Mesa já possui comanda aberta")
			}
			if mesa.Status == models.MesaSuja {
				return fiber.NewError(fiber.StatusConflict, "Mesa precisa ser liberada antes de receber clientes")
			}

			comanda = models.Comanda{
				MesaID:       mesa.ID,
				Status:       models.ComandaAberta,
				Total:        decimal.Zero,
				DataAbertura: time.Now(),
			}
			if err := tx.Create(&comanda).Error; err != nil {
				return err
			}

			if err := tx.Model(&mesa).Update("status", models.MesaOcupada).Error; err != nil {
				return err
			}

			comanda.Mesa = mesa
			return nil
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível abrir a comanda")
		}

		return c.Status(fiber.StatusCreated).JSON(toComandaResponse(comanda, false))
	}
}

// GET /api/comandas?status=aberta
func ListComandasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Mesa").Order("data_abertura DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var comandas []models.Comanda
		if err := q.Find(&comandas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as comandas")
		}

		resp := make([]ComandaResponse, len(comandas))
		for i, cm := range comandas {
			resp[i] = toComandaResponse(cm, false)
		}
		return c.JSON(resp)
	}
}

// GET /api/comandas/:id
func GetComandaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var comanda models.Comanda
		if err := database.DB.Preload("Mesa").Preload("Itens.Produto").First(&comanda, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Comanda não encontrada")
		}

		return c.JSON(toComandaResponse(comanda, true))
	}
}

// POST /api/comandas/:id/itens
func AddComandaItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body AddComandaItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.ProdutoID == 0 || body.Quantidade <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "produto_id é obrigatório e quantidade deve ser maior que zero")
		}

		var item models.ComandaItem
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var comanda models.Comanda
			if err := tx.First(&comanda, id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Comanda não encontrada")
			}
			if comanda.Status != models.ComandaAberta {
				return fiber.NewError(fiber.StatusConflict, "Comanda não está aberta")
			}

			var produto models.Produto
			if err := tx.First(&produto, body.ProdutoID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
			}

			// Preço congelado no momento da inclusão
			item = models.ComandaItem{
				ComandaID:     comanda.ID,
				ProdutoID:     produto.ID,
				Quantidade:    body.Quantidade,
				PrecoUnitario: produto.PrecoVenda,
				Observacoes:   body.Observacoes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			subtotal := produto.PrecoVenda.Mul(decimal.NewFromInt(int64(body.Quantidade)))
			novoTotal := comanda.Total.Add(subtotal)
			if err := tx.Model(&comanda).Update("total", novoTotal).Error; err != nil {
				return err
			}

			item.Produto = produto
			return nil
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível adicionar o item")
		}

		return c.Status(fiber.StatusCreated).JSON(ComandaItemResponse{
			ID:            item.ID,
			ProdutoID:     item.ProdutoID,
			ProdutoNome:   item.Produto.Nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Subtotal:      item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))),
			Observacoes:   item.Observacoes,
		})
	}
}

// DELETE /api/comandas/:id/itens/:itemId
func RemoveComandaItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}
		itemID, err := c.ParamsInt("itemId")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID do item inválido")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var comanda models.Comanda
			if err := tx.First(&comanda, id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Comanda não encontrada")
			}
			if comanda.Status != models.ComandaAberta {
				return fiber.NewError(fiber.StatusConflict, "Comanda não está aberta")
			}

			var item models.ComandaItem
			if err := tx.Where("id = ? AND comanda_id = ?", itemID, comanda.ID).First(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Item não encontrado nesta comanda")
			}

			subtotal := item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade)))
			if err := tx.Model(&comanda).Update("total", comanda.Total.Sub(subtotal)).Error; err != nil {
				return err
			}

			return tx.Delete(&item).Error
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o item")
		}

		return c.JSON(fiber.Map{"message": "Item removido da comanda"})
	}
}

// POST /api/comandas/:id/cancelar
func CancelarComandaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var comanda models.Comanda
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&comanda, id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Comanda não encontrada")
			}
			if comanda.Status != models.ComandaAberta {
				return fiber.NewError(fiber.StatusConflict, "Comanda não está aberta")
			}

			agora := time.Now()
			updates := map[string]interface{}{
				"status":          models.ComandaCancelada,
				"data_fechamento": agora,
			}
			if err := tx.Model(&comanda).Updates(updates).Error; err != nil {
				return err
			}

			// Mesa volta para o salão depois da limpeza
			return tx.Model(&models.Mesa{}).
				Where("id = ?", comanda.MesaID).
				Update("status", models.MesaSuja).Error
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cancelar a comanda")
		}

		return c.JSON(fiber.Map{"message": "Comanda cancelada", "id": comanda.ID})
	}
}
