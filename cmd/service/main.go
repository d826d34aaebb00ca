package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bulatminnakhmetov/collection-tracker/internal/config"
	"github.com/bulatminnakhmetov/collection-tracker/internal/database"
	authHandler "github.com/bulatminnakhmetov/collection-tracker/internal/handler/auth"
	listingHandler "github.com/bulatminnakhmetov/collection-tracker/internal/handler/listing"
	mediaHandler "github.com/bulatminnakhmetov/collection-tracker/internal/handler/media"
	"github.com/bulatminnakhmetov/collection-tracker/internal/logger"
	collectorRepo "github.com/bulatminnakhmetov/collection-tracker/internal/repository/collector"
	listingRepo "github.com/bulatminnakhmetov/collection-tracker/internal/repository/listing"
	mediaRepo "github.com/bulatminnakhmetov/collection-tracker/internal/repository/media"
	authService "github.com/bulatminnakhmetov/collection-tracker/internal/service/auth"
	listingService "github.com/bulatminnakhmetov/collection-tracker/internal/service/listing"
	mediaService "github.com/bulatminnakhmetov/collection-tracker/internal/service/media"
	storageMedia "github.com/bulatminnakhmetov/collection-tracker/internal/storage/media"
)

// @title           Collection Tracker API
// @version         1.0
// @description     Listings of collectible items, their media and collector accounts.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg)

	ctx := context.Background()

	db, err := database.NewConnection(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	var storageProvider storageMedia.StorageProvider
	if cfg.StorageBackend == config.StorageBackendMinio {
		minioStorage, err := storageMedia.NewMinioStorage(ctx, cfg.Minio)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		storageProvider = minioStorage
		log.Info().Str("endpoint", cfg.Minio.Endpoint).Str("bucket", cfg.Minio.Bucket).Msg("media blobs kept in object storage")
	}

	// Repositories
	listingRepository := listingRepo.NewRepository(db)
	mediaRepository := mediaRepo.NewRepository(db)
	collectorRepository := collectorRepo.NewPostgresCollectorRepository(db)

	// Services
	mediaSvc := mediaService.NewMediaService(mediaRepository, storageProvider, cfg.MediaMaxBytes, log)
	listingSvc := listingService.NewListingService(listingRepository, mediaSvc, log)
	authSvc := authService.NewAuthService(collectorRepository, cfg.JWTSecret, cfg.AuthTokenTTL)

	router := newRouter(cfg, log, handlers{
		media:   mediaHandler.NewMediaHandler(mediaSvc, cfg.MediaMaxBytes, log),
		listing: listingHandler.NewListingHandler(listingSvc, log),
		auth:    authHandler.NewAuthHandler(authSvc, log),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server is starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("addr", server.Addr).Msg("could not listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server gracefully stopped")
}
