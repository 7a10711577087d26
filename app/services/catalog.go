// Package services holds the business logic between controllers and the
// repository.
package services

import (
	"strings"
	"time"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/pkg/cache"
	"github.com/kalakaksh/backend/pkg/collection"
)

const (
	cacheKeyCategories = "facets:categories"
	cacheKeyCraftTypes = "facets:craft_types"
	facetCacheTTL      = 5 * time.Minute
)

// ArtisanFilter narrows artisan listings.
type ArtisanFilter struct {
	CraftType string
	Verified  *bool
}

// ProductFilter narrows product listings. Exactly one primary filter
// applies, in precedence order: Search, then Category, then ArtisanID,
// then no primary filter. Featured and Status apply on top as secondary
// filters; Status defaults to active and the literal "all" disables it.
type ProductFilter struct {
	Search    string
	Category  string
	ArtisanID string
	Featured  *bool
	Status    string
}

// CatalogService implements the marketplace query and aggregation surface.
type CatalogService struct {
	repo *repositories.Repository
}

// NewCatalog wraps the repository.
func NewCatalog(repo *repositories.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Artisans returns artisans matching the filter.
func (s *CatalogService) Artisans(f ArtisanFilter) ([]models.Artisan, error) {
	artisans, err := s.repo.ListArtisans()
	if err != nil {
		return nil, err
	}

	if f.CraftType != "" {
		artisans = collection.Filter(artisans, func(a models.Artisan) bool {
			return strings.EqualFold(a.CraftType, f.CraftType)
		})
	}
	if f.Verified != nil {
		artisans = collection.Filter(artisans, func(a models.Artisan) bool {
			return a.Verified == *f.Verified
		})
	}

	if artisans == nil {
		artisans = []models.Artisan{}
	}
	return artisans, nil
}

// Products returns products matching the filter.
func (s *CatalogService) Products(f ProductFilter) ([]models.Product, error) {
	products, err := s.repo.ListProducts()
	if err != nil {
		return nil, err
	}

	// Primary filter, first match wins.
	switch {
	case f.Search != "":
		needle := strings.ToLower(strings.TrimSpace(f.Search))
		products = collection.Filter(products, func(p models.Product) bool {
			return matchesSearch(p, needle)
		})
	case f.Category != "":
		products = collection.Filter(products, func(p models.Product) bool {
			return strings.EqualFold(p.Category, f.Category)
		})
	case f.ArtisanID != "":
		products = collection.Filter(products, func(p models.Product) bool {
			return p.ArtisanID == f.ArtisanID
		})
	}

	// Secondary filters.
	if f.Featured != nil {
		products = collection.Filter(products, func(p models.Product) bool {
			return p.Featured == *f.Featured
		})
	}

	status := f.Status
	if status == "" {
		status = models.StatusActive
	}
	if status != "all" {
		products = collection.Filter(products, func(p models.Product) bool {
			return p.Status == status
		})
	}

	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// matchesSearch scans name, description, and the materials list.
func matchesSearch(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, material := range p.Materials {
		if strings.Contains(strings.ToLower(material), needle) {
			return true
		}
	}
	return false
}

// Categories returns the sorted distinct non-empty product categories.
// The result is cached in Redis and invalidated on every mutation.
func (s *CatalogService) Categories() ([]string, error) {
	var cached []string
	if cache.Get(cacheKeyCategories, &cached) {
		return cached, nil
	}

	products, err := s.repo.ListProducts()
	if err != nil {
		return nil, err
	}

	cats := distinctSorted(collection.Map(products, func(p models.Product) string {
		return p.Category
	}))

	_ = cache.Set(cacheKeyCategories, cats, facetCacheTTL)
	return cats, nil
}

// CraftTypes returns the sorted distinct non-empty artisan craft types.
func (s *CatalogService) CraftTypes() ([]string, error) {
	var cached []string
	if cache.Get(cacheKeyCraftTypes, &cached) {
		return cached, nil
	}

	artisans, err := s.repo.ListArtisans()
	if err != nil {
		return nil, err
	}

	crafts := distinctSorted(collection.Map(artisans, func(a models.Artisan) string {
		return a.CraftType
	}))

	_ = cache.Set(cacheKeyCraftTypes, crafts, facetCacheTTL)
	return crafts, nil
}

// InvalidateFacets drops the cached facet lists. Controllers call this
// after every mutation so cached facets are never stale.
func (s *CatalogService) InvalidateFacets() {
	_ = cache.Del(cacheKeyCategories, cacheKeyCraftTypes)
}

func distinctSorted(values []string) []string {
	var nonEmpty []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	out := collection.Unique(nonEmpty)
	collection.SortBy(out, func(a, b string) bool { return a < b })
	if out == nil {
		out = []string{}
	}
	return out
}
