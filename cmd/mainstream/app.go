package main

import (
	"github.com/gin-gonic/gin"

	"github.com/amaumene/mainstream/internal/config"
	"github.com/amaumene/mainstream/internal/database"
	"github.com/amaumene/mainstream/internal/handlers"
	"github.com/amaumene/mainstream/internal/middleware"
	"github.com/amaumene/mainstream/internal/services"
	"github.com/amaumene/mainstream/pkg/logger"
)

// app holds what main starts and stops.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	db        *database.BoltDB
	container *services.Container
	handler   *handlers.Handler
	router    *gin.Engine
}

func initializeLogger(cfg *config.Config) logger.Logger {
	log := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if !logger.ValidLevel(cfg.LogLevel) {
		log.Warnf("[App] unknown log level '%s', defaulting to info", cfg.LogLevel)
	}
	return log
}

// initializeDatabase opens the persistent cache tier when a path is set.
func (a *app) initializeDatabase() error {
	if a.cfg.DatabasePath == "" {
		a.log.Infof("[App] no database path configured, caching in memory only")
		return nil
	}

	db, err := database.NewBolt(a.cfg.DatabasePath)
	if err != nil {
		return err
	}
	a.db = db
	a.log.Infof("[App] bolt database opened at %s", a.cfg.DatabasePath)
	return nil
}

func (a *app) initializeServices() {
	// A nil *BoltDB must not reach the container as a non-nil interface.
	var db database.Database
	if a.db != nil {
		db = a.db
	}

	a.container = services.NewContainer(a.cfg, a.log, db)
	a.handler = handlers.New(a.container, a.cfg)

	if !a.cfg.HasCredential() {
		a.log.Warnf("[App] TMDB_API_KEY is not set; pages and search will fail until it is")
	}
	a.log.Infof("[App] services initialized successfully")
}

func (a *app) initializeRouter() error {
	gin.SetMode(gin.ReleaseMode)
	if logger.ParseLevel(a.cfg.LogLevel) == logger.LevelDebug {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(a.log))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())

	if err := handlers.LoadTemplates(r); err != nil {
		return err
	}
	a.handler.RegisterRoutes(r)
	a.router = r
	return nil
}

func newApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, log: initializeLogger(cfg)}
	if err := a.initializeDatabase(); err != nil {
		return nil, err
	}
	a.initializeServices()
	if err := a.initializeRouter(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if a.container != nil {
		a.container.Cleanup.Stop()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Errorf("[App] failed to close database: %v", err)
		}
	}
}
