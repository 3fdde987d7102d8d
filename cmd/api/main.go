package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/harmonyglass/operaciones-api/internal/application/auth"
	"github.com/harmonyglass/operaciones-api/internal/application/expenses"
	"github.com/harmonyglass/operaciones-api/internal/application/payments"
	"github.com/harmonyglass/operaciones-api/internal/application/registry"
	"github.com/harmonyglass/operaciones-api/internal/application/session"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
	"github.com/harmonyglass/operaciones-api/internal/infrastructure/bolt"
	"github.com/harmonyglass/operaciones-api/internal/infrastructure/memstore"
	httpRouter "github.com/harmonyglass/operaciones-api/internal/interfaces/http"
	"github.com/harmonyglass/operaciones-api/pkg/config"
	"github.com/harmonyglass/operaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("data_dir", cfg.Store.DataDir).
		Msg("iniciando aplicación")

	// Nivel durable: las colecciones de clientes y los gastos del negocio
	// sobreviven reinicios.
	durable, err := bolt.Open(cfg.Store.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento local")
	}
	defer durable.Close()

	// Nivel sesión: la identidad muere con el proceso.
	sessionSlots := memstore.New()

	reg := registry.New(durable, log)
	sessions := session.New(sessionSlots)
	expensesUC := expenses.New(durable, log)
	paymentsUC := payments.New(reg)
	authUC := auth.New([]auth.Account{
		{Username: cfg.Auth.AdminUser, Hash: cfg.Auth.AdminHash, Role: entity.RoleAdmin},
		{Username: cfg.Auth.BasicUser, Hash: cfg.Auth.BasicHash, Role: entity.RoleBasic},
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Harmony Operaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry:  reg,
		Sessions:  sessions,
		AuthUC:    authUC,
		Payments:  paymentsUC,
		Expenses:  expensesUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		AppName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
