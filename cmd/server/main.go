package main

import (
	"log"
	"strings"

	"asador-backend/internal/audit"
	"asador-backend/internal/auth"
	"asador-backend/internal/config"
	"asador-backend/internal/database"
	"asador-backend/internal/draft"
	"asador-backend/internal/expense"
	"asador-backend/internal/menu"
	"asador-backend/internal/report"
	"asador-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
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
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	app.Use(logger.New())

	// CORS: origins separados por coma en la variable de entorno
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Terminal-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// La venta en curso y el ciclo de vida de ventas persistidas
	drafts := draft.NewManager(menu.NewCatalog())
	saleSvc := sales.NewService(sales.NewGormStore(database.DB))
	notifier := draft.NotifierFunc(func(message, level string) {
		log.Printf("[%s] %s", level, message)
	})

	api := app.Group("/api")

	// Público
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Menú
	protected.Get("/menu", menu.GetMenuHandler())
	protected.Put("/menu", menu.SaveMenuHandler())
	protected.Patch("/menu/items/:id/availability", menu.ToggleItemAvailabilityHandler())

	// Venta actual (borrador por terminal)
	protected.Get("/draft", draft.GetDraftHandler(drafts))
	protected.Post("/draft/items", draft.AddItemHandler(drafts, notifier))
	protected.Post("/draft/items/:lineId/increment", draft.IncrementItemHandler(drafts, notifier))
	protected.Post("/draft/items/:lineId/decrement", draft.DecrementItemHandler(drafts, notifier))
	protected.Delete("/draft/items/:lineId", draft.RemoveItemHandler(drafts))
	protected.Delete("/draft", draft.ClearDraftHandler(drafts))
	protected.Post("/draft/save", draft.SaveDraftHandler(drafts, saleSvc))

	// Ventas activas / cerradas
	protected.Get("/sales-active", sales.ListActiveHandler(saleSvc))
	protected.Delete("/sales-active/:id", sales.DeleteActiveHandler(saleSvc))
	protected.Post("/sales-active/reopen", sales.ReopenHandler(saleSvc))
	protected.Get("/sales-closed", sales.ListClosedHandler(saleSvc))
	protected.Post("/sales-closed", sales.CloseHandler(saleSvc))
	protected.Delete("/sales-closed/:id", sales.DeleteClosedHandler(saleSvc))

	// Gastos
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler())

	// Reportes
	protected.Get("/reports/summary", report.SummaryHandler())
	protected.Get("/reports/export", report.ExportHandler())

	// Auditoría
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
