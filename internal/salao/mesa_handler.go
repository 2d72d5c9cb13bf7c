package salao

import (
	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMesaRequest struct {
	Numero      int    `json:"numero"`
	Capacidade  int    `json:"capacidade"`
	Localizacao string `json:"localizacao"`
}

type UpdateMesaStatusRequest struct {
	Status string `json:"status"`
}

type MesaResponse struct {
	ID          uint   `json:"id"`
	Numero      int    `json:"numero"`
	Capacidade  int    `json:"capacidade"`
	Localizacao string `json:"localizacao"`
	Status      string `json:"status"`
}

func toMesaResponse(m models.Mesa) MesaResponse {
	return MesaResponse{
		ID:          m.ID,
		Numero:      m.Numero,
		Capacidade:  m.Capacidade,
		Localizacao: m.Localizacao,
		Status:      string(m.Status),
	}
}

func statusMesaValido(s string) bool {
	switch models.MesaStatus(s) {
	case models.MesaDisponivel, models.MesaOcupada, models.MesaSuja, models.MesaReservada:
		return true
	}
	return false
}

// GET /api/mesas
func ListMesasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var mesas []models.Mesa
		if err := database.DB.Order("numero").Find(&mesas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as mesas")
		}

		resp := make([]MesaResponse, len(mesas))
		for i, m := range mesas {
			resp[i] = toMesaResponse(m)
		}
		return c.JSON(resp)
	}
}

// POST /api/mesas
func CreateMesaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMesaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Numero <= 0 || body.Capacidade <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "numero e capacidade devem ser maiores que zero")
		}

		mesa := models.Mesa{
			Numero:      body.Numero,
			Capacidade:  body.Capacidade,
			Localizacao: body.Localizacao,
			Status:      models.MesaDisponivel,
		}
		if err := database.DB.Create(&mesa).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar a mesa")
		}

		return c.Status(fiber.StatusCreated).JSON(toMesaResponse(mesa))
	}
}

// PUT /api/mesas/:id
func UpdateMesaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body CreateMesaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Numero <= 0 || body.Capacidade <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "numero e capacidade devem ser maiores que zero")
		}

		var mesa models.Mesa
		if err := database.DB.First(&mesa, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mesa não encontrada")
		}

		mesa.Numero = body.Numero
		mesa.Capacidade = body.Capacidade
		mesa.Localizacao = body.Localizacao
		if err := database.DB.Save(&mesa).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a mesa")
		}

		return c.JSON(toMesaResponse(mesa))
	}
}

// PUT /api/mesas/:id/status
func UpdateMesaStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var body UpdateMesaStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if !statusMesaValido(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "status deve ser disponivel, ocupada, suja ou reservada")
		}

		var mesa models.Mesa
		if err := database.DB.First(&mesa, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mesa não encontrada")
		}

		// Mesa com comanda aberta não pode voltar a disponível na mão
		if models.MesaStatus(body.Status) != models.MesaOcupada {
			var abertas int64
			database.DB.Model(&models.Comanda{}).
				Where("mesa_id = ? AND status = ?", mesa.ID, models.ComandaAberta).
				Count(&abertas)
			if abertas > 0 {
				return fiber.NewError(fiber.StatusConflict, "Mesa possui comanda aberta; feche ou cancele a comanda primeiro")
			}
		}

		mesa.Status = models.MesaStatus(body.Status)
		if err := database.DB.Save(&mesa).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o status da mesa")
		}

		return c.JSON(toMesaResponse(mesa))
	}
}

// DELETE /api/mesas/:id
func DeleteMesaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var mesa models.Mesa
		if err := database.DB.First(&mesa, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mesa não encontrada")
		}

		var comandas int64
		database.DB.Model(&models.Comanda{}).
			Where("mesa_id = ?", mesa.ID).
			Count(&comandas)
		if comandas > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Não é possível excluir. A mesa possui comandas registradas.")
		}

		if err := database.DB.Delete(&mesa).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a mesa")
		}

		return c.JSON(fiber.Map{"message": "Mesa excluída com sucesso"})
	}
}
