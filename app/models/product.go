package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product statuses. StatusActive and StatusInactive are shared with Artisan.
const (
	StatusOutOfStock = "out_of_stock"

	// LowStockThreshold is the stock level at or below which a product
	// counts as low stock on the dashboard.
	LowStockThreshold = 5
)

// Product is a handcrafted item listed by an artisan.
type Product struct {
	ID            string                 `json:"id"`
	ArtisanID     string                 `json:"artisan_id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price"`
	Category      string                 `json:"category"`
	Subcategory   string                 `json:"subcategory"`
	Materials     []string               `json:"materials"`
	Dimensions    map[string]interface{} `json:"dimensions"`
	Weight        float64                `json:"weight"`
	StockQuantity int                    `json:"stock_quantity"`
	Images        []string               `json:"images"`
	Status        string                 `json:"status"`
	Tags          []string               `json:"tags"`
	Featured      bool                   `json:"featured"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// NewProduct builds a Product with a fresh ID, timestamps, and defaults.
// Stock starts at 1 unless set afterwards.
func NewProduct(artisanID, name, description string, price float64, category string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:            uuid.NewString(),
		ArtisanID:     artisanID,
		Name:          strings.TrimSpace(name),
		Description:   description,
		Price:         price,
		Category:      category,
		Materials:     []string{},
		Dimensions:    map[string]interface{}{},
		StockQuantity: 1,
		Images:        []string{},
		Status:        StatusActive,
		Tags:          []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Normalize fills zero-value fields loaded from older store files.
func (p *Product) Normalize() {
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Materials == nil {
		p.Materials = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Dimensions == nil {
		p.Dimensions = map[string]interface{}{}
	}
}

// Touch advances updated_at.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// UpdateStock sets stock to qty clamped at zero and derives status:
// zero stock forces out_of_stock; a restock flips out_of_stock back to
// active but never overrides an explicit inactive.
func (p *Product) UpdateStock(qty int) {
	if qty < 0 {
		qty = 0
	}
	p.StockQuantity = qty

	if qty == 0 {
		p.Status = StatusOutOfStock
	} else if p.Status == StatusOutOfStock {
		p.Status = StatusActive
	}

	p.Touch()
}

// AddImage appends url to the image list unless already present.
// Returns true when the list changed.
func (p *Product) AddImage(url string) bool {
	for _, existing := range p.Images {
		if existing == url {
			return false
		}
	}
	p.Images = append(p.Images, url)
	p.Touch()
	return true
}

// RemoveImage deletes url from the image list.
// Returns true when the list changed.
func (p *Product) RemoveImage(url string) bool {
	for i, existing := range p.Images {
		if existing == url {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			p.Touch()
			return true
		}
	}
	return false
}

// ToggleFeatured flips the featured flag and returns the new value.
func (p *Product) ToggleFeatured() bool {
	p.Featured = !p.Featured
	p.Touch()
	return p.Featured
}

// IsLowStock reports whether stock is at or below the low-stock threshold
// while the product is still purchasable.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= LowStockThreshold
}

// DimensionsText renders the dimensions map as "L x W x H unit" when the
// standard keys are present, else an empty string.
func (p *Product) DimensionsText() string {
	l, lok := p.Dimensions["length"]
	w, wok := p.Dimensions["width"]
	h, hok := p.Dimensions["height"]
	if !lok || !wok || !hok {
		return ""
	}
	unit := ""
	if u, ok := p.Dimensions["unit"]; ok {
		unit = fmt.Sprintf(" %v", u)
	}
	return fmt.Sprintf("%v x %v x %v%s", l, w, h, unit)
}
