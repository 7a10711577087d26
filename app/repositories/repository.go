// Package repositories implements the data access and consistency layer on
// top of the durable store. All mutations are read-modify-write cycles over
// whole collections, serialized by a single mutex, so concurrent API calls
// can never interleave partial writes.
package repositories

import (
	"strings"
	"sync"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/pkg/apperr"
	"github.com/kalakaksh/backend/pkg/metrics"
)

// Repository mediates every read and write of the artisan and product
// collections.
type Repository struct {
	mu    sync.Mutex
	store store.Store
}

// New wraps a store.
func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// ArtisanPatch carries partial updates for an artisan profile.
// Nil fields are left untouched.
type ArtisanPatch struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email" validate:"nullable,email"`
	Phone           *string  `json:"phone" validate:"nullable,phone"`
	CraftType       *string  `json:"craft_type"`
	Location        *string  `json:"location"`
	Bio             *string  `json:"bio"`
	ExperienceYears *int     `json:"experience_years"`
	Status          *string  `json:"status" validate:"nullable,in=active,inactive"`
	Verified        *bool    `json:"verified"`
	Rating          *float64 `json:"rating" validate:"nullable,gte=0,lte=5"`
}

// ProductPatch carries partial updates for a product listing.
type ProductPatch struct {
	Name          *string                 `json:"name"`
	Description   *string                 `json:"description"`
	Price         *float64                `json:"price"`
	Category      *string                 `json:"category"`
	Subcategory   *string                 `json:"subcategory"`
	Materials     *[]string               `json:"materials"`
	Dimensions    *map[string]interface{} `json:"dimensions"`
	Weight        *float64                `json:"weight"`
	StockQuantity *int                    `json:"stock_quantity"`
	Tags          *[]string               `json:"tags"`
	Status        *string                 `json:"status" validate:"nullable,in=active,inactive,out_of_stock"`
	Featured      *bool                   `json:"featured"`
}

// ── Artisans ─────────────────────────────────────────────────────────────────

// ListArtisans returns all artisans with total_products recomputed from the
// product collection, so the counter can never drift from reality.
func (r *Repository) ListArtisans() ([]models.Artisan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadArtisans()
}

// GetArtisan returns one artisan by ID.
func (r *Repository) GetArtisan(id string) (*models.Artisan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artisans, err := r.loadArtisans()
	if err != nil {
		return nil, err
	}
	for i := range artisans {
		if artisans[i].ID == id {
			return &artisans[i], nil
		}
	}
	return nil, apperr.NotFound("Artisan not found")
}

// CreateArtisan appends a new artisan. Email uniqueness is enforced
// case-insensitively across the whole collection.
func (r *Repository) CreateArtisan(a *models.Artisan) (*models.Artisan, error) {
	if a.Name == "" {
		return nil, apperr.Validation("The name field is required.")
	}
	if a.Email == "" {
		return nil, apperr.Validation("The email field is required.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	artisans, err := r.loadArtisans()
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(a.Email)
	for _, existing := range artisans {
		if strings.ToLower(existing.Email) == email {
			return nil, apperr.Conflict("Artisan with this email already exists")
		}
	}

	artisans = append(artisans, *a)
	if err := r.store.SaveArtisans(artisans); err != nil {
		return nil, apperr.Store("save artisans", err)
	}

	metrics.RecordMutation("artisan", "create")
	return a, nil
}

// UpdateArtisan applies patch to the artisan with the given ID.
// Changing the email re-checks uniqueness against every other artisan.
func (r *Repository) UpdateArtisan(id string, patch ArtisanPatch) (*models.Artisan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artisans, err := r.loadArtisans()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range artisans {
		if artisans[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperr.NotFound("Artisan not found")
	}

	a := &artisans[idx]

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if email == "" {
			return nil, apperr.Validation("The email field is required.")
		}
		for i := range artisans {
			if i != idx && strings.ToLower(artisans[i].Email) == email {
				return nil, apperr.Conflict("Artisan with this email already exists")
			}
		}
		a.Email = email
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("The name field is required.")
		}
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		a.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.CraftType != nil {
		a.CraftType = *patch.CraftType
	}
	if patch.Location != nil {
		a.Location = *patch.Location
	}
	if patch.Bio != nil {
		a.Bio = *patch.Bio
	}
	if patch.ExperienceYears != nil {
		if *patch.ExperienceYears < 0 {
			return nil, apperr.Validation("The experience_years must be at least 0.")
		}
		a.ExperienceYears = *patch.ExperienceYears
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Verified != nil {
		a.Verified = *patch.Verified
	}
	if patch.Rating != nil {
		a.UpdateRating(*patch.Rating)
	}

	a.Touch()

	if err := r.store.SaveArtisans(artisans); err != nil {
		return nil, apperr.Store("save artisans", err)
	}

	metrics.RecordMutation("artisan", "update")
	return a, nil
}

// SetProfileImage records the stored image URL on the artisan profile.
func (r *Repository) SetProfileImage(id, url string) (*models.Artisan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artisans, err := r.loadArtisans()
	if err != nil {
		return nil, err
	}

	for i := range artisans {
		if artisans[i].ID != id {
			continue
		}
		artisans[i].ProfileImage = url
		artisans[i].Touch()

		if err := r.store.SaveArtisans(artisans); err != nil {
			return nil, apperr.Store("save artisans", err)
		}
		metrics.RecordMutation("artisan", "profile_image")
		return &artisans[i], nil
	}
	return nil, apperr.NotFound("Artisan not found")
}

// ── Products ─────────────────────────────────────────────────────────────────

// ListProducts returns all products.
func (r *Repository) ListProducts() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadProducts()
}

// GetProduct returns one product by ID.
func (r *Repository) GetProduct(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, apperr.NotFound("Product not found")
}

// CreateProduct appends a new product after verifying the referenced
// artisan exists. Only the product collection is written; artisan
// total_products is a derived value recomputed on read.
func (r *Repository) CreateProduct(p *models.Product) (*models.Product, error) {
	if p.Name == "" {
		return nil, apperr.Validation("The name field is required.")
	}
	if p.Price < 0 {
		return nil, apperr.Validation("The price must be at least 0.")
	}
	if p.StockQuantity < 0 {
		return nil, apperr.Validation("The stock_quantity must be at least 0.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	artisans, err := r.rawArtisans()
	if err != nil {
		return nil, err
	}
	found := false
	for _, a := range artisans {
		if a.ID == p.ArtisanID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("Artisan not found")
	}

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	if p.StockQuantity == 0 {
		p.Status = models.StatusOutOfStock
	}

	products = append(products, *p)
	if err := r.store.SaveProducts(products); err != nil {
		return nil, apperr.Store("save products", err)
	}

	metrics.RecordMutation("product", "create")
	return p, nil
}

// UpdateProduct applies patch to the product with the given ID.
// Stock changes run through the stock/status derivation.
func (r *Repository) UpdateProduct(id string, patch ProductPatch) (*models.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, apperr.Validation("The price must be at least 0.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		p := &products[i]

		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return nil, apperr.Validation("The name field is required.")
			}
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Subcategory != nil {
			p.Subcategory = *patch.Subcategory
		}
		if patch.Materials != nil {
			p.Materials = *patch.Materials
		}
		if patch.Dimensions != nil {
			p.Dimensions = *patch.Dimensions
		}
		if patch.Weight != nil {
			p.Weight = *patch.Weight
		}
		if patch.Tags != nil {
			p.Tags = *patch.Tags
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		if patch.StockQuantity != nil {
			p.UpdateStock(*patch.StockQuantity)
		}

		p.Touch()

		if err := r.store.SaveProducts(products); err != nil {
			return nil, apperr.Store("save products", err)
		}
		metrics.RecordMutation("product", "update")
		return p, nil
	}
	return nil, apperr.NotFound("Product not found")
}

// UpdateStock sets the stock level with clamp-at-zero and status derivation.
func (r *Repository) UpdateStock(id string, qty int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		products[i].UpdateStock(qty)

		if err := r.store.SaveProducts(products); err != nil {
			return nil, apperr.Store("save products", err)
		}
		metrics.RecordMutation("product", "stock")
		return &products[i], nil
	}
	return nil, apperr.NotFound("Product not found")
}

// AddProductImage appends an image URL, skipping duplicates.
func (r *Repository) AddProductImage(id, url string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		if !products[i].AddImage(url) {
			// already present, nothing to persist
			return &products[i], nil
		}

		if err := r.store.SaveProducts(products); err != nil {
			return nil, apperr.Store("save products", err)
		}
		metrics.RecordMutation("product", "add_image")
		return &products[i], nil
	}
	return nil, apperr.NotFound("Product not found")
}

// RemoveProductImage deletes an image URL from the product.
func (r *Repository) RemoveProductImage(id, url string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		if !products[i].RemoveImage(url) {
			return &products[i], nil
		}

		if err := r.store.SaveProducts(products); err != nil {
			return nil, apperr.Store("save products", err)
		}
		metrics.RecordMutation("product", "remove_image")
		return &products[i], nil
	}
	return nil, apperr.NotFound("Product not found")
}

// ToggleFeatured flips the featured flag.
func (r *Repository) ToggleFeatured(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		products[i].ToggleFeatured()

		if err := r.store.SaveProducts(products); err != nil {
			return nil, apperr.Store("save products", err)
		}
		metrics.RecordMutation("product", "toggle_featured")
		return &products[i], nil
	}
	return nil, apperr.NotFound("Product not found")
}

// ── Internals (caller must hold r.mu) ────────────────────────────────────────

// rawArtisans loads the artisan collection without the derived counters.
func (r *Repository) rawArtisans() ([]models.Artisan, error) {
	artisans, err := r.store.LoadArtisans()
	if err != nil {
		return nil, apperr.Store("load artisans", err)
	}
	for i := range artisans {
		artisans[i].Normalize()
	}
	return artisans, nil
}

// loadArtisans loads artisans and materializes total_products from the
// product collection.
func (r *Repository) loadArtisans() ([]models.Artisan, error) {
	artisans, err := r.rawArtisans()
	if err != nil {
		return nil, err
	}
	if len(artisans) == 0 {
		return artisans, nil
	}

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(artisans))
	for _, p := range products {
		counts[p.ArtisanID]++
	}
	for i := range artisans {
		artisans[i].TotalProducts = counts[artisans[i].ID]
	}
	return artisans, nil
}

func (r *Repository) loadProducts() ([]models.Product, error) {
	products, err := r.store.LoadProducts()
	if err != nil {
		return nil, apperr.Store("load products", err)
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}
