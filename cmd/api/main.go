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

	"github.com/heliosapp/helios-api/internal/application/attendance"
	"github.com/heliosapp/helios-api/internal/application/auth"
	appfolio "github.com/heliosapp/helios-api/internal/application/folio"
	"github.com/heliosapp/helios-api/internal/application/report"
	"github.com/heliosapp/helios-api/internal/application/usecase"
	infrapdf "github.com/heliosapp/helios-api/internal/infrastructure/pdf"
	"github.com/heliosapp/helios-api/internal/infrastructure/postgres"
	"github.com/heliosapp/helios-api/internal/infrastructure/storage"
	httpRouter "github.com/heliosapp/helios-api/internal/interfaces/http"
	"github.com/heliosapp/helios-api/pkg/config"
	"github.com/heliosapp/helios-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de la base")
	}

	blobs, err := storage.NewFSBlobStore(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de blobs")
	}

	taxonomyRepo := postgres.NewTaxonomyRepository(pool)
	folioRepo := postgres.NewFolioRepository(pool)
	marcaRepo := postgres.NewMarcaRepository(pool)
	tareaRepo := postgres.NewTareaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	ubicacionRepo := postgres.NewUbicacionRepository(pool)

	taxonomyUC, err := usecase.NewTaxonomyUseCase(taxonomyRepo, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("cargar árbol de actividades")
	}
	folioUC := appfolio.NewUseCase(folioRepo, taxonomyUC, blobs, log.Zerolog())
	taskUC := usecase.NewTaskUseCase(tareaRepo, blobs, log.Zerolog())
	userUC := usecase.NewUserUseCase(usuarioRepo, log.Zerolog())
	ubicacionUC := usecase.NewUbicacionUseCase(ubicacionRepo)
	marcaUC := attendance.NewUseCase(marcaRepo, blobs, log.Zerolog())

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewUseCase(folioRepo, tareaRepo, marcaRepo, pdfGenerator, log.Zerolog())

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // fotos de evidencia
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "HELIOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Evidencia servida como estáticos bajo la misma URL base que emite el
	// almacén de blobs.
	app.Static("/fotos", cfg.Storage.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TaxonomyUC:  taxonomyUC,
		FolioUC:     folioUC,
		TaskUC:      taskUC,
		UserUC:      userUC,
		UbicacionUC: ubicacionUC,
		MarcaUC:     marcaUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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
