package main

import (
	"log"
	"strings"

	"nexus-backend/internal/auth"
	"nexus-backend/internal/cardapio"
	"nexus-backend/internal/config"
	"nexus-backend/internal/database"
	"nexus-backend/internal/estoque"
	"nexus-backend/internal/salao"
	"nexus-backend/internal/vendas"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	// CORS: origens separadas por vírgula na variável de ambiente
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Público
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Insumos (estoque)
	protected.Get("/insumos", estoque.ListInsumosHandler())
	protected.Get("/insumos/abaixo-minimo", estoque.ListInsumosAbaixoMinimoHandler())
	protected.Post("/insumos", estoque.CreateInsumoHandler())
	protected.Put("/insumos/:id", estoque.UpdateInsumoHandler())
	protected.Delete("/insumos/:id", estoque.DeleteInsumoHandler())

	// Produtos (cardápio)
	protected.Get("/produtos", cardapio.ListProdutosHandler())
	protected.Post("/produtos", cardapio.CreateProdutoHandler())
	protected.Put("/produtos/:id", cardapio.UpdateProdutoHandler())
	protected.Delete("/produtos/:id", cardapio.DeleteProdutoHandler())

	// Fichas técnicas
	protected.Get("/produtos/:id/ficha-tecnica", cardapio.GetFichaTecnicaHandler())
	protected.Post("/produtos/:id/ficha-tecnica", cardapio.CreateFichaTecnicaHandler())
	protected.Post("/produtos/:id/ficha-tecnica/itens", cardapio.AddFichaTecnicaItemHandler())
	protected.Put("/fichas-tecnicas/itens/:id", cardapio.UpdateFichaTecnicaItemHandler())
	protected.Delete("/fichas-tecnicas/itens/:id", cardapio.DeleteFichaTecnicaItemHandler())

	// Mesas
	protected.Get("/mesas", salao.ListMesasHandler())
	protected.Post("/mesas", salao.CreateMesaHandler())
	protected.Put("/mesas/:id", salao.UpdateMesaHandler())
	protected.Put("/mesas/:id/status", salao.UpdateMesaStatusHandler())
	protected.Delete("/mesas/:id", salao.DeleteMesaHandler())

	// Comandas
	protected.Post("/comandas", salao.AbrirComandaHandler())
	protected.Get("/comandas", salao.ListComandasHandler())
	protected.Get("/comandas/:id", salao.GetComandaHandler())
	protected.Post("/comandas/:id/itens", salao.AddComandaItemHandler())
	protected.Delete("/comandas/:id/itens/:itemId", salao.RemoveComandaItemHandler())
	protected.Post("/comandas/:id/cancelar", salao.CancelarComandaHandler())

	// Fechamento (PDV) e vendas
	protected.Post("/comandas/:id/fechar", vendas.FecharComandaHandler())
	protected.Get("/vendas", vendas.ListVendasHandler())
	protected.Get("/vendas/:id", vendas.GetVendaHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
