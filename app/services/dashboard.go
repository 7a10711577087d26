package services

import (
	"math"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/pkg/collection"
)

// DashboardStats is the aggregated marketplace snapshot served by the
// dashboard endpoint. Always computed fresh, never cached.
type DashboardStats struct {
	TotalArtisans       int            `json:"total_artisans"`
	VerifiedArtisans    int            `json:"verified_artisans"`
	TotalProducts       int            `json:"total_products"`
	ActiveProducts      int            `json:"active_products"`
	OutOfStockProducts  int            `json:"out_of_stock_products"`
	LowStockProducts    int            `json:"low_stock_products"`
	FeaturedProducts    int            `json:"featured_products"`
	TotalInventoryValue float64        `json:"total_inventory_value"`
	AveragePrice        float64        `json:"average_price"`
	Categories          []string       `json:"categories"`
	CraftTypes          []string       `json:"craft_types"`
	ProductsByCategory  map[string]int `json:"products_by_category"`
	ArtisansByCraft     map[string]int `json:"artisans_by_craft"`
}

// DashboardService folds both collections into DashboardStats.
type DashboardService struct {
	repo *repositories.Repository
}

// NewDashboard wraps the repository.
func NewDashboard(repo *repositories.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats computes the dashboard snapshot in one pass over each collection.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	artisans, err := s.repo.ListArtisans()
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListProducts()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalArtisans:      len(artisans),
		TotalProducts:      len(products),
		ProductsByCategory: map[string]int{},
		ArtisansByCraft:    map[string]int{},
	}

	for _, a := range artisans {
		if a.Verified {
			stats.VerifiedArtisans++
		}
		if a.CraftType != "" {
			stats.ArtisansByCraft[a.CraftType]++
		}
	}

	var priceSum float64
	for _, p := range products {
		switch p.Status {
		case models.StatusActive:
			stats.ActiveProducts++
		case models.StatusOutOfStock:
			stats.OutOfStockProducts++
		}
		if p.IsLowStock() {
			stats.LowStockProducts++
		}
		if p.Featured {
			stats.FeaturedProducts++
		}
		if p.Category != "" {
			stats.ProductsByCategory[p.Category]++
		}
		priceSum += p.Price
	}

	stats.Categories = distinctSorted(collection.Map(products, func(p models.Product) string {
		return p.Category
	}))
	stats.CraftTypes = distinctSorted(collection.Map(artisans, func(a models.Artisan) string {
		return a.CraftType
	}))

	stats.TotalInventoryValue = round2(collection.Sum(products, func(p models.Product) float64 {
		return p.Price * float64(p.StockQuantity)
	}))

	if len(products) > 0 {
		stats.AveragePrice = round2(priceSum / float64(len(products)))
	}

	return stats, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
