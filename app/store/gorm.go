package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/pkg/metrics"
)

// ArtisanDocument is one row of the artisans document table. The entity is
// stored as a JSON blob; Seq preserves insertion order across save cycles.
type ArtisanDocument struct {
	Seq   uint   `gorm:"primaryKey;autoIncrement"`
	DocID string `gorm:"uniqueIndex;size:64;not null"`
	Doc   string `gorm:"type:text;not null"`
}

func (ArtisanDocument) TableName() string { return "artisan_documents" }

// ProductDocument is one row of the products document table.
type ProductDocument struct {
	Seq   uint   `gorm:"primaryKey;autoIncrement"`
	DocID string `gorm:"uniqueIndex;size:64;not null"`
	Doc   string `gorm:"type:text;not null"`
}

func (ProductDocument) TableName() string { return "product_documents" }

// GormStore persists collections as document tables through gorm, one JSON
// document per row. Save replaces the whole table inside a transaction,
// which mirrors the whole-file rewrite of the json driver.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the document tables when absent.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&ArtisanDocument{}, &ProductDocument{})
}

func (s *GormStore) LoadArtisans() ([]models.Artisan, error) {
	defer metrics.ObserveStoreOp("load", "artisans", time.Now())

	var rows []ArtisanDocument
	if err := s.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store/gorm: load artisans: %w", err)
	}

	artisans := make([]models.Artisan, 0, len(rows))
	for _, row := range rows {
		var a models.Artisan
		if err := json.Unmarshal([]byte(row.Doc), &a); err != nil {
			return nil, fmt.Errorf("store/gorm: parse artisan %s: %w", row.DocID, err)
		}
		artisans = append(artisans, a)
	}
	return artisans, nil
}

func (s *GormStore) SaveArtisans(artisans []models.Artisan) error {
	defer metrics.ObserveStoreOp("save", "artisans", time.Now())

	rows := make([]ArtisanDocument, 0, len(artisans))
	for _, a := range artisans {
		doc, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("store/gorm: marshal artisan %s: %w", a.ID, err)
		}
		rows = append(rows, ArtisanDocument{DocID: a.ID, Doc: string(doc)})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&ArtisanDocument{}).Error; err != nil {
			return fmt.Errorf("store/gorm: clear artisans: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("store/gorm: insert artisans: %w", err)
		}
		return nil
	})
}

func (s *GormStore) LoadProducts() ([]models.Product, error) {
	defer metrics.ObserveStoreOp("load", "products", time.Now())

	var rows []ProductDocument
	if err := s.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store/gorm: load products: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		var p models.Product
		if err := json.Unmarshal([]byte(row.Doc), &p); err != nil {
			return nil, fmt.Errorf("store/gorm: parse product %s: %w", row.DocID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *GormStore) SaveProducts(products []models.Product) error {
	defer metrics.ObserveStoreOp("save", "products", time.Now())

	rows := make([]ProductDocument, 0, len(products))
	for _, p := range products {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("store/gorm: marshal product %s: %w", p.ID, err)
		}
		rows = append(rows, ProductDocument{DocID: p.ID, Doc: string(doc)})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&ProductDocument{}).Error; err != nil {
			return fmt.Errorf("store/gorm: clear products: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("store/gorm: insert products: %w", err)
		}
		return nil
	})
}
