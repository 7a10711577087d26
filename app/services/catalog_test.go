package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/app/store"
)

func boolPtr(b bool) *bool { return &b }

type fixture struct {
	repo    *repositories.Repository
	catalog *services.CatalogService
	artisan *models.Artisan
	weaver  *models.Artisan
}

func setup(t *testing.T) *fixture {
	t.Helper()
	repo := repositories.New(store.NewJSONStore(t.TempDir()))

	potter, err := repo.CreateArtisan(models.NewArtisan("Meera", "meera@example.com", "9876543210", "Pottery", "Jaipur"))
	require.NoError(t, err)
	weaver, err := repo.CreateArtisan(models.NewArtisan("Raj", "raj@example.com", "9123456780", "Weaving", "Varanasi"))
	require.NoError(t, err)

	mustProduct := func(p *models.Product) *models.Product {
		created, err := repo.CreateProduct(p)
		require.NoError(t, err)
		return created
	}

	pot := models.NewProduct(potter.ID, "Terracotta Pot", "Hand-thrown pot", 450, "pottery")
	pot.Materials = []string{"river clay"}
	pot.Tags = []string{"handmade", "terracotta"}
	mustProduct(pot)

	saree := models.NewProduct(weaver.ID, "Banarasi Saree", "Handwoven saree with zari work", 5400, "textiles")
	saree.Materials = []string{"mulberry silk", "zari"}
	saree.Featured = true
	mustProduct(saree)

	vase := models.NewProduct(potter.ID, "Blue Vase", "Glazed ceramic vase", 900, "pottery")
	vase.StockQuantity = 0
	mustProduct(vase)

	return &fixture{
		repo:    repo,
		catalog: services.NewCatalog(repo),
		artisan: potter,
		weaver:  weaver,
	}
}

func TestProductsDefaultStatusIsActive(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.Products(services.ProductFilter{})
	require.NoError(t, err)

	// the zero-stock vase is out_of_stock and excluded by default
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, models.StatusActive, p.Status)
	}
}

func TestProductsStatusAllDisablesFilter(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.Products(services.ProductFilter{Status: "all"})
	require.NoError(t, err)

	assert.Len(t, got, 3)
}

func TestProductsSearchWinsOverCategory(t *testing.T) {
	f := setup(t)

	// search matches the saree; category would have matched pottery
	got, err := f.catalog.Products(services.ProductFilter{
		Search:   "saree",
		Category: "pottery",
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Banarasi Saree", got[0].Name)
}

func TestProductsSearchScansMaterials(t *testing.T) {
	f := setup(t)

	// "silk" appears only in the saree's materials list
	got, err := f.catalog.Products(services.ProductFilter{Search: "silk"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Banarasi Saree", got[0].Name)
}

func TestProductsSearchIgnoresTagsAndCategory(t *testing.T) {
	f := setup(t)

	// "handmade" is only a tag; tags are not part of the search surface
	got, err := f.catalog.Products(services.ProductFilter{Search: "handmade", Status: "all"})
	require.NoError(t, err)
	assert.Empty(t, got)

	// "textiles" is only a category
	got, err = f.catalog.Products(services.ProductFilter{Search: "textiles", Status: "all"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductsCategoryWinsOverArtisan(t *testing.T) {
	f := setup(t)

	// category textiles belongs to the weaver; artisan_id points at the potter
	got, err := f.catalog.Products(services.ProductFilter{
		Category:  "textiles",
		ArtisanID: f.artisan.ID,
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Banarasi Saree", got[0].Name)
}

func TestProductsCategoryIsLiteral(t *testing.T) {
	f := setup(t)

	// category is matched verbatim; "all" is not special here and still
	// takes precedence over the artisan filter
	got, err := f.catalog.Products(services.ProductFilter{
		Category:  "all",
		ArtisanID: f.artisan.ID,
	})
	require.NoError(t, err)

	assert.Empty(t, got)
}

func TestProductsByArtisan(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.Products(services.ProductFilter{
		ArtisanID: f.artisan.ID,
		Status:    "all",
	})
	require.NoError(t, err)

	assert.Len(t, got, 2)
}

func TestProductsFeaturedSecondary(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.Products(services.ProductFilter{Featured: boolPtr(true)})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Banarasi Saree", got[0].Name)
}

func TestArtisansByCraftType(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.Artisans(services.ArtisanFilter{CraftType: "pottery"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Meera", got[0].Name)
}

func TestArtisansVerifiedFilter(t *testing.T) {
	f := setup(t)

	verified := true
	_, err := f.repo.UpdateArtisan(f.weaver.ID, repositories.ArtisanPatch{Verified: &verified})
	require.NoError(t, err)

	got, err := f.catalog.Artisans(services.ArtisanFilter{Verified: boolPtr(true)})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Raj", got[0].Name)
}

func TestCategoriesSortedDistinct(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.Categories()
	require.NoError(t, err)

	assert.Equal(t, []string{"pottery", "textiles"}, got)
}

func TestCraftTypesSortedDistinct(t *testing.T) {
	f := setup(t)

	got, err := f.catalog.CraftTypes()
	require.NoError(t, err)

	assert.Equal(t, []string{"Pottery", "Weaving"}, got)
}

func TestEmptyRepoReturnsEmptySlices(t *testing.T) {
	repo := repositories.New(store.NewJSONStore(t.TempDir()))
	catalog := services.NewCatalog(repo)

	products, err := catalog.Products(services.ProductFilter{})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	cats, err := catalog.Categories()
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}
