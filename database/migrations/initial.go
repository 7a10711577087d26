package migrations

import (
	"gorm.io/gorm"

	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_artisan_documents_table", &CreateArtisanDocumentsTable{})
	migration.Register("20260101000001_create_product_documents_table", &CreateProductDocumentsTable{})
}

// -------- 0001: artisan documents --------

type CreateArtisanDocumentsTable struct{}

func (m *CreateArtisanDocumentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&store.ArtisanDocument{})
}

func (m *CreateArtisanDocumentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("artisan_documents")
}

// -------- 0002: product documents --------

type CreateProductDocumentsTable struct{}

func (m *CreateProductDocumentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&store.ProductDocument{})
}

func (m *CreateProductDocumentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_documents")
}
