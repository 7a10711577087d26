// Package store persists the artisan and product collections.
//
// Two drivers share one contract: whole collections are loaded and saved
// atomically. The json driver keeps one flat file per collection under
// DATA_DIR; the SQL drivers keep one document table per collection via gorm.
// The repository layer serializes read-modify-write cycles, so drivers only
// guarantee that a single Save is atomic.
package store

import (
	"fmt"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/pkg/database"
)

// Store is the durable backend contract.
type Store interface {
	LoadArtisans() ([]models.Artisan, error)
	SaveArtisans(artisans []models.Artisan) error
	LoadProducts() ([]models.Product, error)
	SaveProducts(products []models.Product) error
}

// Open builds the store selected by STORE_DRIVER.
// json needs no external service; the SQL drivers open the database
// connection and auto-create the document tables.
func Open() (Store, error) {
	driver := config.StoreDriver()

	if driver == "json" {
		return NewJSONStore(config.DataDir()), nil
	}

	if err := database.Connect(driver, config.DatabaseDSN()); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	s := NewGormStore(database.DB)
	if err := s.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}
