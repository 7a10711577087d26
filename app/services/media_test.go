package services_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/pkg/apperr"
	"github.com/kalakaksh/backend/pkg/storage"
)

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for x := 0; x < 100; x++ {
		for y := 0; y < 80; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func mediaFixture(t *testing.T) (*services.MediaService, *repositories.Repository, *models.Artisan, *models.Product) {
	t.Helper()
	repo := repositories.New(store.NewJSONStore(t.TempDir()))
	disk := storage.NewLocalDisk(t.TempDir(), "/uploads")

	artisan, err := repo.CreateArtisan(models.NewArtisan("Meera", "meera@example.com", "9876543210", "Pottery", "Jaipur"))
	require.NoError(t, err)
	product, err := repo.CreateProduct(models.NewProduct(artisan.ID, "Pot", "desc", 450, "pottery"))
	require.NoError(t, err)

	svc := services.NewMedia(repo, disk, services.NewEnhance(""))
	return svc, repo, artisan, product
}

func TestSaveProductImage(t *testing.T) {
	svc, repo, _, product := mediaFixture(t)

	updated, url, err := svc.SaveProductImage(product.ID, "photo.png", testImage(t))
	require.NoError(t, err)

	assert.Contains(t, url, "/uploads/products/"+product.ID+"/")
	assert.Contains(t, updated.Images, url)

	reloaded, err := repo.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Contains(t, reloaded.Images, url)
}

func TestSaveProductImageRejectsExtension(t *testing.T) {
	svc, _, _, product := mediaFixture(t)

	_, _, err := svc.SaveProductImage(product.ID, "malware.exe", testImage(t))

	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSaveProductImageRejectsGarbage(t *testing.T) {
	svc, _, _, product := mediaFixture(t)

	_, _, err := svc.SaveProductImage(product.ID, "photo.png", []byte("not an image"))

	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSaveProductImageUnknownProduct(t *testing.T) {
	svc, _, _, _ := mediaFixture(t)

	_, _, err := svc.SaveProductImage("missing", "photo.png", testImage(t))

	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSaveProfileImage(t *testing.T) {
	svc, repo, artisan, _ := mediaFixture(t)

	updated, url, err := svc.SaveProfileImage(artisan.ID, "me.jpg", testImage(t))
	require.NoError(t, err)

	assert.Contains(t, url, "/uploads/profiles/")
	assert.Equal(t, url, updated.ProfileImage)

	reloaded, err := repo.GetArtisan(artisan.ID)
	require.NoError(t, err)
	assert.Equal(t, url, reloaded.ProfileImage)
}

func TestSaveEnhancedProductImageKeepsUndecodableUpload(t *testing.T) {
	svc, _, _, product := mediaFixture(t)

	// enhanced path stores the original bytes when decoding fails
	_, url, err := svc.SaveEnhancedProductImage(product.ID, "photo.png", []byte("raw bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestCleanupOrphanedImages(t *testing.T) {
	repo := repositories.New(store.NewJSONStore(t.TempDir()))
	disk := storage.NewLocalDisk(t.TempDir(), "/uploads")
	svc := services.NewMedia(repo, disk, services.NewEnhance(""))

	artisan, err := repo.CreateArtisan(models.NewArtisan("Meera", "meera@example.com", "9876543210", "Pottery", "Jaipur"))
	require.NoError(t, err)
	product, err := repo.CreateProduct(models.NewProduct(artisan.ID, "Pot", "desc", 450, "pottery"))
	require.NoError(t, err)

	require.NoError(t, disk.Put("products/"+product.ID+"/keep.jpg", []byte("x")))
	require.NoError(t, disk.Put("products/ghost-product/orphan.jpg", []byte("x")))

	removed, err := svc.CleanupOrphanedImages()
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.True(t, disk.Exists("products/"+product.ID+"/keep.jpg"))
	assert.False(t, disk.Exists("products/ghost-product/orphan.jpg"))
}
