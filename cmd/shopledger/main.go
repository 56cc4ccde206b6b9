package main

import (
	"io"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"shopledger/internal/config"
	"shopledger/internal/http/handlers"
	"shopledger/internal/ledger"
	applog "shopledger/internal/log"
	"shopledger/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	st, err := store.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	eng := ledger.New(st)

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())

	app.Static("/static", cfg.StaticDir)

	deps := handlers.NewDeps(eng)

	// Dashboard
	app.Get("/", deps.Dashboard.Home)

	// API
	api := app.Group("/api/v1")
	api.Get("/products", deps.Products.List)
	api.Post("/products", deps.Products.Create)
	api.Post("/products/demo", deps.Products.ResetDemo)
	api.Patch("/products/:id", deps.Products.UpdateField)
	api.Delete("/products/:id", deps.Products.Delete)

	api.Get("/sales", deps.Sales.List)
	api.Post("/sales", deps.Sales.Create)
	api.Get("/purchases", deps.Purchases.List)
	api.Post("/purchases", deps.Purchases.Create)

	api.Get("/metrics", deps.Dashboard.Metrics)
	api.Get("/valuation", deps.Dashboard.Valuation)
	api.Get("/reorder", deps.Dashboard.Reorder)

	// Reports
	app.Get("/export/products.csv", deps.Reports.ProductsCSV)
	app.Get("/export/sales.csv", deps.Reports.SalesCSV)
	app.Get("/export/purchases.csv", deps.Reports.PurchasesCSV)
	app.Get("/export/backup.json", deps.Reports.Backup)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(cfg.Addr))
}
