// Package server boots the HTTP API: config, store, services, middleware,
// routes.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/routes"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/pkg/cache"
	"github.com/kalakaksh/backend/pkg/logger"
	"github.com/kalakaksh/backend/pkg/metrics"
	"github.com/kalakaksh/backend/pkg/middleware"
	"github.com/kalakaksh/backend/pkg/reqid"
	"github.com/kalakaksh/backend/pkg/router"
	"github.com/kalakaksh/backend/pkg/storage"
)

// Start wires the application together and blocks serving HTTP.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.ConnectMongo(uri)
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			defer mh.Close()
		}
	}

	// Redis is optional; the cache degrades to pass-through when absent.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache disabled", "error", err)
	}

	storage.Connect()

	st, err := store.Open()
	if err != nil {
		return err
	}
	repo := repositories.New(st)

	enhance := services.NewEnhance(config.GeminiAPIKey())
	deps := routes.Deps{
		Repo:      repo,
		Catalog:   services.NewCatalog(repo),
		Dashboard: services.NewDashboard(repo),
		Media:     services.NewMedia(repo, storage.Default(), enhance),
		Enhance:   enhance,
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.RegisterAPI(r, deps)

	if config.StorageDisk() == "local" {
		r.Static("/uploads", config.StorageLocalRoot())
	}

	addr := ":" + config.AppPort()
	logger.Info("server starting",
		"app", config.AppName, "version", config.Version,
		"addr", addr, "store", config.StoreDriver())
	fmt.Printf("%s API running on %s\n", config.AppName, addr)

	return http.ListenAndServe(addr, r.Handler())
}
