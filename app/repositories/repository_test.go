package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/pkg/apperr"
)

func newRepo(t *testing.T) *repositories.Repository {
	t.Helper()
	return repositories.New(store.NewJSONStore(t.TempDir()))
}

func seedArtisan(t *testing.T, r *repositories.Repository) *models.Artisan {
	t.Helper()
	a, err := r.CreateArtisan(models.NewArtisan("Meera Devi", "meera@example.com", "9876543210", "Pottery", "Jaipur"))
	require.NoError(t, err)
	return a
}

func seedProduct(t *testing.T, r *repositories.Repository, artisanID string) *models.Product {
	t.Helper()
	p, err := r.CreateProduct(models.NewProduct(artisanID, "Clay Pot", "Hand-thrown pot", 450, "pottery"))
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }

func TestCreateArtisanDuplicateEmailConflicts(t *testing.T) {
	r := newRepo(t)
	seedArtisan(t, r)

	dup := models.NewArtisan("Other", "MEERA@example.com", "9123456780", "Weaving", "Varanasi")
	_, err := r.CreateArtisan(dup)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestGetArtisanNotFound(t *testing.T) {
	r := newRepo(t)

	_, err := r.GetArtisan("missing")

	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateArtisanEmailUniquenessExcludesSelf(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)

	// updating to own email is fine
	updated, err := r.UpdateArtisan(a.ID, repositories.ArtisanPatch{Email: strPtr("meera@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", updated.Email)

	// colliding with another artisan is not
	other := models.NewArtisan("Raj", "raj@example.com", "9123456780", "Woodwork", "Mysuru")
	_, err = r.CreateArtisan(other)
	require.NoError(t, err)

	_, err = r.UpdateArtisan(other.ID, repositories.ArtisanPatch{Email: strPtr("Meera@Example.com")})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestCreateProductUnknownArtisan(t *testing.T) {
	r := newRepo(t)

	p := models.NewProduct("no-such-artisan", "Pot", "desc", 100, "pottery")
	_, err := r.CreateProduct(p)

	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCreateProductNegativePrice(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)

	p := models.NewProduct(a.ID, "Pot", "desc", -1, "pottery")
	_, err := r.CreateProduct(p)

	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestCreateProductZeroStockIsOutOfStock(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)

	p := models.NewProduct(a.ID, "Pot", "desc", 100, "pottery")
	p.StockQuantity = 0
	created, err := r.CreateProduct(p)
	require.NoError(t, err)

	assert.Equal(t, models.StatusOutOfStock, created.Status)
}

func TestTotalProductsIsRecomputedOnRead(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)

	seedProduct(t, r, a.ID)
	seedProduct(t, r, a.ID)

	got, err := r.GetArtisan(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalProducts)

	list, err := r.ListArtisans()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].TotalProducts)
}

func TestUpdateStockClampAndRevert(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)
	p := seedProduct(t, r, a.ID)

	got, err := r.UpdateStock(p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, models.StatusOutOfStock, got.Status)

	got, err = r.UpdateStock(p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.StockQuantity)
	assert.Equal(t, models.StatusActive, got.Status)
}

func TestUpdateProductPatchesOnlyGivenFields(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)
	p := seedProduct(t, r, a.ID)

	got, err := r.UpdateProduct(p.ID, repositories.ProductPatch{
		Price: f64Ptr(999),
		Tags:  &[]string{"handmade", "terracotta"},
	})
	require.NoError(t, err)

	assert.Equal(t, 999.0, got.Price)
	assert.Equal(t, []string{"handmade", "terracotta"}, got.Tags)
	assert.Equal(t, "Clay Pot", got.Name, "unpatched fields survive")
}

func TestUpdateProductStockRunsDerivation(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)
	p := seedProduct(t, r, a.ID)

	got, err := r.UpdateProduct(p.ID, repositories.ProductPatch{StockQuantity: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutOfStock, got.Status)
}

func TestAddProductImageIdempotent(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)
	p := seedProduct(t, r, a.ID)

	got, err := r.AddProductImage(p.ID, "/uploads/products/x/1.jpg")
	require.NoError(t, err)
	assert.Len(t, got.Images, 1)

	got, err = r.AddProductImage(p.ID, "/uploads/products/x/1.jpg")
	require.NoError(t, err)
	assert.Len(t, got.Images, 1)
}

func TestToggleFeaturedPersists(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)
	p := seedProduct(t, r, a.ID)

	got, err := r.ToggleFeatured(p.ID)
	require.NoError(t, err)
	assert.True(t, got.Featured)

	reloaded, err := r.GetProduct(p.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Featured)
}

func TestSetProfileImage(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)

	got, err := r.SetProfileImage(a.ID, "/uploads/profiles/p.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profiles/p.jpg", got.ProfileImage)
}

func TestConcurrentCreatesDoNotLoseWrites(t *testing.T) {
	r := newRepo(t)
	a := seedArtisan(t, r)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			p := models.NewProduct(a.ID, "Pot", "desc", 100, "pottery")
			_, err := r.CreateProduct(p)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	products, err := r.ListProducts()
	require.NoError(t, err)
	assert.Len(t, products, n)
}
