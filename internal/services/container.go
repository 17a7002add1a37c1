// Package services provides dependency injection container for application services.
package services

import (
	"context"
	"net/url"

	"github.com/amaumene/mainstream/internal/cache"
	"github.com/amaumene/mainstream/internal/config"
	"github.com/amaumene/mainstream/internal/database"
	"github.com/amaumene/mainstream/internal/media"
	"github.com/amaumene/mainstream/internal/models"
	"github.com/amaumene/mainstream/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Config  *config.Config
	TMDB    TMDBService
	Catalog *Catalog
	Cache   cache.Cache
	DB      database.Database
	Logger  logger.Logger
	Cleanup *CleanupService
}

// NewContainer wires the services. db may be nil.
func NewContainer(cfg *config.Config, log logger.Logger, db database.Database) *Container {
	c := cache.New(cfg.CacheSize, cfg.CacheTTL)

	tmdb := NewTMDB(cfg, c, log)
	if db != nil {
		tmdb.SetDB(db)
	}

	return &Container{
		Config:  cfg,
		TMDB:    tmdb,
		Catalog: NewCatalog(tmdb, log),
		Cache:   c,
		DB:      db,
		Logger:  log,
		Cleanup: NewCleanupService(db, c, log, cfg.CacheTTL),
	}
}

// TMDBService defines the interface for TMDB API operations.
type TMDBService interface {
	HasCredential() bool
	Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
	FetchRaw(ctx context.Context, endpoint, rawQuery string) ([]byte, error)

	TrendingAll(ctx context.Context) (media.CatalogPage, error)
	Trending(ctx context.Context, kind media.Kind) (media.CatalogPage, error)
	List(ctx context.Context, kind media.Kind, list string) (media.CatalogPage, error)
	MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error)
	SeriesDetails(ctx context.Context, id int) (*models.SeriesDetails, error)
	ExternalIDs(ctx context.Context, kind media.Kind, id int) (*models.ExternalIDs, error)
	Videos(ctx context.Context, kind media.Kind, id int) ([]models.Video, error)
	SearchMulti(ctx context.Context, query string, page int) (media.CatalogPage, error)
	Search(ctx context.Context, kind media.Kind, query string) (media.CatalogPage, error)
	Discover(ctx context.Context, kind media.Kind, page int, genre string) (media.CatalogPage, error)
	Genres(ctx context.Context, kind media.Kind) ([]models.Genre, error)
}
