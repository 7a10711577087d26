package seeders

import (
	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
)

func init() {
	Register("marketplace", SeedMarketplace)
}

// SeedMarketplace creates a handful of sample artisans with products.
// It is a no-op when the store already holds artisans.
func SeedMarketplace(repo *repositories.Repository) error {
	existing, err := repo.ListArtisans()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	meera := models.NewArtisan("Meera Devi", "meera@kalakaksh.in", "9876543210", "Pottery", "Jaipur, Rajasthan")
	meera.Bio = "Third-generation potter working in traditional blue pottery."
	meera.ExperienceYears = 22
	meera.Verified = true
	if _, err := repo.CreateArtisan(meera); err != nil {
		return err
	}

	raj := models.NewArtisan("Raj Kumar", "raj@kalakaksh.in", "9123456780", "Weaving", "Varanasi, Uttar Pradesh")
	raj.Bio = "Banarasi silk weaver from a family of handloom masters."
	raj.ExperienceYears = 15
	if _, err := repo.CreateArtisan(raj); err != nil {
		return err
	}

	pot := models.NewProduct(meera.ID, "Blue Pottery Vase", "Hand-painted vase in the classic Jaipur blue glaze", 1450, "pottery")
	pot.Materials = []string{"quartz", "natural dye"}
	pot.Tags = []string{"home decor", "blue pottery"}
	pot.StockQuantity = 8
	if _, err := repo.CreateProduct(pot); err != nil {
		return err
	}

	saree := models.NewProduct(raj.ID, "Banarasi Silk Saree", "Handwoven silk saree with gold zari border", 8500, "textiles")
	saree.Materials = []string{"silk", "zari"}
	saree.Tags = []string{"wedding", "handloom"}
	saree.StockQuantity = 3
	saree.Featured = true
	if _, err := repo.CreateProduct(saree); err != nil {
		return err
	}

	return nil
}
