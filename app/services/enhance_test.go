package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakaksh/backend/app/services"
)

func TestDescriptionFallbackWithoutKey(t *testing.T) {
	svc := services.NewEnhance("")

	got, ai := svc.Description(context.Background(), "Clay Pot", "Pottery", "A sturdy pot", []string{"terracotta", "natural glaze"})

	assert.False(t, ai)
	assert.Equal(t,
		"This exquisite handcrafted clay pot showcases the artistry of pottery masters, "+
			"featuring a sturdy pot using terracotta, natural glaze. Each piece reflects "+
			"skilled craftsmanship and celebrates India's rich cultural heritage, bringing "+
			"authentic traditional artistry to your collection.",
		got)
}

func TestDescriptionFallbackDefaultMaterials(t *testing.T) {
	svc := services.NewEnhance("")

	got, ai := svc.Description(context.Background(), "Vase", "Pottery", "A vase", nil)

	assert.False(t, ai)
	assert.Contains(t, got, "using traditional materials")
}

func TestDescriptionFallbackIsDeterministic(t *testing.T) {
	svc := services.NewEnhance("")

	first, _ := svc.Description(context.Background(), "Vase", "Pottery", "A vase", nil)
	second, _ := svc.Description(context.Background(), "Vase", "Pottery", "A vase", nil)

	assert.Equal(t, first, second)
}

func TestDescriptionUsesGeminiWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"A masterwork of clay and fire."}]}}]}`))
	}))
	defer srv.Close()

	svc := services.NewEnhanceWithEndpoint("test-key", srv.URL)

	got, ai := svc.Description(context.Background(), "Pot", "Pottery", "desc", nil)

	assert.True(t, ai)
	assert.Equal(t, "A masterwork of clay and fire.", got)
}

func TestDescriptionFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := services.NewEnhanceWithEndpoint("test-key", srv.URL)

	got, ai := svc.Description(context.Background(), "Pot", "Pottery", "desc", nil)

	assert.False(t, ai)
	assert.Contains(t, got, "exquisite handcrafted pot")
}

func TestImageFallsBackToOriginalBytes(t *testing.T) {
	svc := services.NewEnhance("")

	raw := []byte("definitely not an image")
	got := svc.Image(raw)

	require.Equal(t, raw, got)
}
