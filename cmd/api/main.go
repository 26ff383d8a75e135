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

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/auth"
	appauthz "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/authz"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/billing"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/usecase"
	infrafbr "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/infrastructure/fbr"
	infrapdf "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/infrastructure/pdf"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/infrastructure/postgres"
	httpRouter "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/interfaces/http"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/config"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	permRepo := postgres.NewPermissionRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	resolver := appauthz.NewResolver(userRepo, roleRepo)
	counter := usecase.NewRoleCounter(userRepo, roleRepo)

	roleUC := usecase.NewRoleUseCase(roleRepo, permRepo, userRepo, counter)
	permissionUC := usecase.NewPermissionUseCase(permRepo)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, permRepo, counter)

	authUC := auth.NewUseCase(userRepo, roleRepo, resolver, counter, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	gateway := infrafbr.NewClient(
		cfg.FBR.BaseURL,
		cfg.FBR.SandboxToken,
		time.Duration(cfg.FBR.TimeoutSeconds)*time.Second,
	)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, gateway, log.Zerolog())

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FBR Invoice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		RoleUC:       roleUC,
		PermissionUC: permissionUC,
		UserUC:       userUC,
		InvoiceUC:    invoiceUC,
		PDFUC:        pdfUC,
		Resolver:     resolver,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
