package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/ofertas-pro/internal/application/auth"
	"github.com/tu-usuario/ofertas-pro/internal/application/usecase"
	"github.com/tu-usuario/ofertas-pro/internal/domain/quota"
	"github.com/tu-usuario/ofertas-pro/internal/infrastructure/media"
	"github.com/tu-usuario/ofertas-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ofertas-pro/internal/interfaces/http"
	"github.com/tu-usuario/ofertas-pro/pkg/config"
	"github.com/tu-usuario/ofertas-pro/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	mediaStore := media.NewLocalStore(cfg.Media)

	quotaEngine := quota.NewEngine(quota.DefaultLimits())

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	locationUC := usecase.NewLocationUseCase(txRunner, locationRepo, companyRepo, quotaEngine)
	offerUC := usecase.NewOfferUseCase(txRunner, offerRepo, locationRepo, companyRepo, mediaStore, quotaEngine)
	userUC := usecase.NewUserUseCase(userRepo, locationRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // imágenes de ofertas
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		LocationUC:  locationUC,
		OfferUC:     offerUC,
		UserUC:      userUC,
		CategoryUC:  categoryUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		Media:       cfg.Media,
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
