package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/routes"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/pkg/router"
	"github.com/kalakaksh/backend/pkg/storage"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	repo := repositories.New(store.NewJSONStore(t.TempDir()))
	catalog := services.NewCatalog(repo)
	enhance := services.NewEnhance("")
	media := services.NewMedia(repo, storage.NewLocalDisk(t.TempDir(), "/uploads"), enhance)

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		Repo:      repo,
		Catalog:   catalog,
		Dashboard: services.NewDashboard(repo),
		Media:     media,
		Enhance:   enhance,
	})
	return r.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func validArtisan() map[string]interface{} {
	return map[string]interface{}{
		"name":       "Meera Devi",
		"email":      "meera@example.com",
		"phone":      "9876543210",
		"craft_type": "Pottery",
		"location":   "Jaipur, Rajasthan",
	}
}

func createArtisan(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/artisans", validArtisan())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	return body["data"].(map[string]interface{})["id"].(string)
}

func createProduct(t *testing.T, h http.Handler, artisanID string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/products", map[string]interface{}{
		"artisan_id":  artisanID,
		"name":        "Terracotta Pot",
		"description": "Hand-thrown pot",
		"price":       450,
		"category":    "pottery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	return body["data"].(map[string]interface{})["id"].(string)
}

func TestHealth(t *testing.T) {
	h := newServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestCreateArtisanValidation(t *testing.T) {
	h := newServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/artisans", map[string]interface{}{
		"name": "X",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestCreateArtisanDuplicateEmail(t *testing.T) {
	h := newServer(t)
	createArtisan(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/artisans", validArtisan())

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestGetArtisanNotFound(t *testing.T) {
	h := newServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/artisans/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListArtisansEnvelope(t *testing.T) {
	h := newServer(t)
	createArtisan(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/artisans", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
}

func TestUpdateArtisan(t *testing.T) {
	h := newServer(t)
	id := createArtisan(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/artisans/"+id, map[string]interface{}{
		"bio": "Third-generation potter",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Third-generation potter", body["data"].(map[string]interface{})["bio"])
}

func TestCreateProductUnknownArtisan(t *testing.T) {
	h := newServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/products", map[string]interface{}{
		"artisan_id":  "ghost",
		"name":        "Pot",
		"description": "desc",
		"price":       100,
		"category":    "pottery",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductFilters(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	createProduct(t, h, artisanID)

	rec := doJSON(t, h, http.MethodGet, "/api/products?search=terracotta", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["count"])

	rec = doJSON(t, h, http.MethodGet, "/api/products?category=textiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["count"])
}

func TestStockEndpointClampsAndDerives(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	productID := createProduct(t, h, artisanID)

	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/products/%s/stock", productID), map[string]interface{}{
		"quantity": -10,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["stock_quantity"])
	assert.Equal(t, "out_of_stock", data["status"])
}

func TestToggleFeatured(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	productID := createProduct(t, h, artisanID)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/products/%s/featured", productID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, data["featured"])
}

func TestEnhancePreviewFallback(t *testing.T) {
	h := newServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/enhance-description-preview", map[string]interface{}{
		"name":        "Clay Pot",
		"craft_type":  "Pottery",
		"description": "A sturdy pot",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["ai_generated"])
	assert.Contains(t, body["enhanced_description"], "exquisite handcrafted clay pot")
}

func TestUnknownEndpoint404Envelope(t *testing.T) {
	h := newServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/nothing-here", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestDashboard(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	createProduct(t, h, artisanID)

	rec := doJSON(t, h, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_artisans"])
	assert.Equal(t, float64(1), data["total_products"])
}

func TestCategoriesAndCraftTypes(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	createProduct(t, h, artisanID)

	rec := doJSON(t, h, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []interface{}{"pottery"}, body["data"])

	rec = doJSON(t, h, http.MethodGet, "/api/craft-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, []interface{}{"Pottery"}, body["data"])
}

func TestUploadProductImage(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	productID := createProduct(t, h, artisanID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for x := 0; x < 50; x++ {
		for y := 0; y < 50; y++ {
			img.Set(x, y, color.RGBA{R: 180, G: 90, B: 30, A: 255})
		}
	}
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/products/%s/images", productID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	url, _ := body["image_url"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/"+productID+"/"), url)
}

func TestUploadRejectsBadExtension(t *testing.T) {
	h := newServer(t)
	artisanID := createArtisan(t, h)
	productID := createProduct(t, h, artisanID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "script.exe")
	require.NoError(t, err)
	part.Write([]byte("binary"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/products/%s/images", productID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
