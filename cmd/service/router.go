package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/bulatminnakhmetov/collection-tracker/docs"
	"github.com/bulatminnakhmetov/collection-tracker/internal/config"
	authHandler "github.com/bulatminnakhmetov/collection-tracker/internal/handler/auth"
	listingHandler "github.com/bulatminnakhmetov/collection-tracker/internal/handler/listing"
	mediaHandler "github.com/bulatminnakhmetov/collection-tracker/internal/handler/media"
	appMiddleware "github.com/bulatminnakhmetov/collection-tracker/internal/handler/middleware"
)

type handlers struct {
	media   *mediaHandler.MediaHandler
	listing *listingHandler.ListingHandler
	auth    *authHandler.AuthHandler
}

func newRouter(cfg *config.Config, log zerolog.Logger, h handlers) http.Handler {
	r := chi.NewRouter()

	// Base middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(appMiddleware.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Media
	r.Post("/media", h.media.UploadMedia)
	r.Get("/media/{fileName}", h.media.DownloadMedia)
	r.Get("/media/listing/{listingId}", h.media.DownloadMediaByListingID)

	// Listings
	r.Post("/addListing", h.listing.CreateListing)
	r.Get("/listings", h.listing.GetAllListings)
	r.Get("/listings/user/{email}", h.listing.GetListingsByOwner)
	r.Put("/listings/{id}", h.listing.UpdateListing)
	r.Delete("/listings/{id}", h.listing.DeleteListing)

	// Collectors
	r.Post("/addCollector", h.auth.AddCollector)
	r.HandleFunc("/login", h.auth.Login)
	r.Get("/verify", h.auth.Verify)

	return r
}
