package services

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/pkg/apperr"
	"github.com/kalakaksh/backend/pkg/imaging"
	"github.com/kalakaksh/backend/pkg/storage"
)

const (
	productImageDir = "products"
	profileImageDir = "profiles"
)

// MediaService runs the upload pipeline: validate extension, normalise the
// image, store it on the configured disk, and record the URL on the entity.
type MediaService struct {
	repo    *repositories.Repository
	disk    storage.Disk
	enhance *EnhanceService
}

// NewMedia wires the pipeline.
func NewMedia(repo *repositories.Repository, disk storage.Disk, enhance *EnhanceService) *MediaService {
	return &MediaService{repo: repo, disk: disk, enhance: enhance}
}

// SaveProductImage processes an uploaded product photo and appends its URL
// to the product. Returns the updated product and the public URL.
func (m *MediaService) SaveProductImage(productID, filename string, data []byte) (*models.Product, string, error) {
	if err := checkExtension(filename); err != nil {
		return nil, "", err
	}

	// Verify the product exists before doing image work.
	if _, err := m.repo.GetProduct(productID); err != nil {
		return nil, "", err
	}

	processed, err := imaging.FitProduct(data)
	if err != nil {
		return nil, "", apperr.Validation("Uploaded file is not a valid image")
	}

	key := path.Join(productImageDir, productID, uuid.NewString()+".jpg")
	if err := m.disk.Put(key, processed); err != nil {
		return nil, "", apperr.Store("store product image", err)
	}

	url := m.disk.URL(key)
	product, err := m.repo.AddProductImage(productID, url)
	if err != nil {
		// roll the stored file back so no orphan is left behind
		_ = m.disk.Delete(key)
		return nil, "", err
	}
	return product, url, nil
}

// SaveEnhancedProductImage is SaveProductImage with the enhanced encode
// path (higher JPEG quality, original bytes on decode failure).
func (m *MediaService) SaveEnhancedProductImage(productID, filename string, data []byte) (*models.Product, string, error) {
	if err := checkExtension(filename); err != nil {
		return nil, "", err
	}
	if _, err := m.repo.GetProduct(productID); err != nil {
		return nil, "", err
	}

	processed := m.enhance.Image(data)

	key := path.Join(productImageDir, productID, uuid.NewString()+".jpg")
	if err := m.disk.Put(key, processed); err != nil {
		return nil, "", apperr.Store("store product image", err)
	}

	url := m.disk.URL(key)
	product, err := m.repo.AddProductImage(productID, url)
	if err != nil {
		_ = m.disk.Delete(key)
		return nil, "", err
	}
	return product, url, nil
}

// SaveProfileImage processes an uploaded artisan profile photo and records
// its URL on the profile. Returns the updated artisan and the public URL.
func (m *MediaService) SaveProfileImage(artisanID, filename string, data []byte) (*models.Artisan, string, error) {
	if err := checkExtension(filename); err != nil {
		return nil, "", err
	}
	if _, err := m.repo.GetArtisan(artisanID); err != nil {
		return nil, "", err
	}

	processed, err := imaging.FitProfile(data)
	if err != nil {
		return nil, "", apperr.Validation("Uploaded file is not a valid image")
	}

	key := path.Join(profileImageDir, uuid.NewString()+".jpg")
	if err := m.disk.Put(key, processed); err != nil {
		return nil, "", apperr.Store("store profile image", err)
	}

	url := m.disk.URL(key)
	artisan, err := m.repo.SetProfileImage(artisanID, url)
	if err != nil {
		_ = m.disk.Delete(key)
		return nil, "", err
	}
	return artisan, url, nil
}

// CleanupOrphanedImages removes per-product image directories whose product
// no longer exists. Returns the number of directories removed.
func (m *MediaService) CleanupOrphanedImages() (int, error) {
	products, err := m.repo.ListProducts()
	if err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	dirs, err := m.disk.Directories(productImageDir)
	if err != nil {
		// no uploads yet
		return 0, nil
	}

	removed := 0
	for _, dir := range dirs {
		id := path.Base(dir)
		if _, ok := known[id]; ok {
			continue
		}
		if err := m.disk.DeleteDirectory(dir); err != nil {
			return removed, fmt.Errorf("media: cleanup %s: %w", dir, err)
		}
		removed++
	}
	return removed, nil
}

func checkExtension(filename string) error {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if !imaging.AllowedExtension(ext) {
		return apperr.Validation("File type not allowed. Use: png, jpg, jpeg, gif, webp")
	}
	return nil
}
