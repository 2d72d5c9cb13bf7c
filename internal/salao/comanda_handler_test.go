package salao

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexus-backend/internal/database"
	"nexus-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir banco de teste: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrar banco de teste: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = newTestDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/comandas", AbrirComandaHandler())
	app.Post("/comandas/:id/itens", AddComandaItemHandler())
	app.Delete("/comandas/:id/itens/:itemId", RemoveComandaItemHandler())
	app.Post("/comandas/:id/cancelar", CancelarComandaHandler())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	return resp
}

func TestAbrirComandaOcupaMesa(t *testing.T) {
	app := newTestApp(t)

	mesa := models.Mesa{Numero: 1, Capacidade: 4, Status: models.MesaDisponivel}
	if err := database.DB.Create(&mesa).Error; err != nil {
		t.Fatalf("criar mesa: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/comandas", fmt.Sprintf(`{"mesa_id": %d}`, mesa.ID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, esperado 201", resp.StatusCode)
	}

	var atualizada models.Mesa
	database.DB.First(&atualizada, mesa.ID)
	if atualizada.Status != models.MesaOcupada {
		t.Errorf("status da mesa = %s, esperado ocupada", atualizada.Status)
	}

	// Segunda comanda na mesma mesa é rejeitada
	resp = doJSON(t, app, http.MethodPost, "/comandas", fmt.Sprintf(`{"mesa_id": %d}`, mesa.ID))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status da segunda abertura = %d, esperado 409", resp.StatusCode)
	}

	var abertas int64
	database.DB.Model(&models.Comanda{}).
		Where("mesa_id = ? AND status = ?", mesa.ID, models.ComandaAberta).
		Count(&abertas)
	if abertas != 1 {
		t.Errorf("comandas abertas na mesa = %d, esperado 1", abertas)
	}
}

func TestAbrirComandaMesaInexistente(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/comandas", `{"mesa_id": 999}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, esperado 404", resp.StatusCode)
	}
}

func TestAddItemCongelaPrecoEAtualizaTotal(t *testing.T) {
	app := newTestApp(t)

	mesa := models.Mesa{Numero: 2, Capacidade: 2, Status: models.MesaOcupada}
	database.DB.Create(&mesa)
	comanda := models.Comanda{MesaID: mesa.ID, Status: models.ComandaAberta, Total: decimal.Zero}
	database.DB.Create(&comanda)
	burger := models.Produto{Nome: "Hambúrguer", PrecoVenda: dec("25.00")}
	database.DB.Create(&burger)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/comandas/%d/itens", comanda.ID),
		fmt.Sprintf(`{"produto_id": %d, "quantidade": 2, "observacoes": "sem cebola"}`, burger.ID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, esperado 201", resp.StatusCode)
	}

	// Preço do produto sobe depois; o item mantém o preço da inclusão
	database.DB.Model(&burger).Update("preco_venda", dec("30.00"))

	var item models.ComandaItem
	if err := database.DB.Where("comanda_id = ?", comanda.ID).First(&item).Error; err != nil {
		t.Fatalf("reler item: %v", err)
	}
	if !item.PrecoUnitario.Equal(dec("25.00")) {
		t.Errorf("preco_unitario = %s, esperado 25.00 (congelado)", item.PrecoUnitario)
	}

	var atualizada models.Comanda
	database.DB.First(&atualizada, comanda.ID)
	if !atualizada.Total.Equal(dec("50.00")) {
		t.Errorf("total da comanda = %s, esperado 50.00", atualizada.Total)
	}
}

func TestRemoverItemAbateTotal(t *testing.T) {
	app := newTestApp(t)

	mesa := models.Mesa{Numero: 3, Capacidade: 2, Status: models.MesaOcupada}
	database.DB.Create(&mesa)
	comanda := models.Comanda{MesaID: mesa.ID, Status: models.ComandaAberta, Total: dec("17.00")}
	database.DB.Create(&comanda)
	refri := models.Produto{Nome: "Refrigerante", PrecoVenda: dec("8.50")}
	database.DB.Create(&refri)
	item := models.ComandaItem{ComandaID: comanda.ID, ProdutoID: refri.ID, Quantidade: 2, PrecoUnitario: dec("8.50")}
	database.DB.Create(&item)

	resp := doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/comandas/%d/itens/%d", comanda.ID, item.ID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, esperado 200", resp.StatusCode)
	}

	var atualizada models.Comanda
	database.DB.First(&atualizada, comanda.ID)
	if !atualizada.Total.Equal(decimal.Zero) {
		t.Errorf("total da comanda = %s, esperado 0", atualizada.Total)
	}
}

func TestCancelarComandaLiberaMesaParaLimpeza(t *testing.T) {
	app := newTestApp(t)

	mesa := models.Mesa{Numero: 4, Capacidade: 4, Status: models.MesaOcupada}
	database.DB.Create(&mesa)
	comanda := models.Comanda{MesaID: mesa.ID, Status: models.ComandaAberta, Total: decimal.Zero}
	database.DB.Create(&comanda)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/comandas/%d/cancelar", comanda.ID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, esperado 200", resp.StatusCode)
	}

	var cancelada models.Comanda
	database.DB.First(&cancelada, comanda.ID)
	if cancelada.Status != models.ComandaCancelada {
		t.Errorf("status da comanda = %s, esperado cancelada", cancelada.Status)
	}
	if cancelada.DataFechamento == nil {
		t.Error("data_fechamento não foi preenchida")
	}

	var atualizada models.Mesa
	database.DB.First(&atualizada, mesa.ID)
	if atualizada.Status != models.MesaSuja {
		t.Errorf("status da mesa = %s, esperado suja", atualizada.Status)
	}

	// Cancelar de novo não pode
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/comandas/%d/cancelar", comanda.ID), "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status do segundo cancelamento = %d, esperado 409", resp.StatusCode)
	}
}
