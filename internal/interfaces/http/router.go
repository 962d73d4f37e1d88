package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	Version      string
	CatalogUC    *usecase.CatalogUseCase
	CatalogPDFUC *usecase.CatalogPDFUseCase // opcional
	AgentUC      *usecase.AgentUseCase
	TryOn        TryOnService // opcional: sin credenciales el endpoint responde 503
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.CatalogPDFUC)
	agentHandler := NewAgentHandler(deps.AgentUC)
	tryOnHandler := NewTryOnHandler(deps.TryOn)

	app.Get("/health", func(c *fiber.Ctx) error {
		shops, products := deps.CatalogUC.Stats()
		return c.JSON(dto.HealthResponse{
			Status:   "ok",
			Service:  deps.ServiceName,
			Shops:    shops,
			Products: products,
		})
	})

	info := func(c *fiber.Ctx) error {
		return c.JSON(apiInfo(deps.Version))
	}

	api := app.Group("/api")
	api.Get("/", info)

	// Catálogo (solo lectura)
	api.Get("/shops", catalogHandler.ListShops)
	api.Get("/shops/:id", catalogHandler.GetShop)
	api.Post("/categories", catalogHandler.Categories)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Get("/categories/:id/catalog.pdf", catalogHandler.CategoryPDF)
	api.Post("/products/query", catalogHandler.QueryProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)

	// Asistente
	api.Post("/agent", agentHandler.Ask)
	api.Post("/recommendations/parse", agentHandler.ParseRecommendation)

	// Probador virtual
	api.Post("/try-on", tryOnHandler.TryOn)

	// Rutas históricas de los clientes existentes
	app.Get("/", info)
	app.Post("/categories", catalogHandler.Categories)
	app.Post("/products", agentHandler.Ask)
	app.Post("/try_product_on_image", tryOnHandler.TryOn)
}

func apiInfo(version string) dto.APIInfoResponse {
	return dto.APIInfoResponse{
		Success: true,
		Data: dto.APIInfoData{
			Message: "Shop Assistant API",
			Version: version,
			Endpoints: map[string]string{
				"health":         "GET /health",
				"shops":          "GET /api/shops",
				"shop":           "GET /api/shops/:id",
				"categories":     "POST /api/categories",
				"category":       "GET /api/categories/:id",
				"category_pdf":   "GET /api/categories/:id/catalog.pdf",
				"products_query": "POST /api/products/query",
				"product":        "GET /api/products/:id",
				"agent":          "POST /api/agent",
				"parse":          "POST /api/recommendations/parse",
				"try_on":         "POST /api/try-on",
				"docs":           "GET /docs",
			},
		},
	}
}
