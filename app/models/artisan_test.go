package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalakaksh/backend/app/models"
)

func TestNewArtisanDefaults(t *testing.T) {
	a := models.NewArtisan("Meera Devi", " MEERA@Example.com ", "9876543210", "Pottery", "Jaipur")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "meera@example.com", a.Email)
	assert.Equal(t, models.StatusActive, a.Status)
	assert.False(t, a.Verified)
	assert.Zero(t, a.Rating)
	assert.Zero(t, a.TotalProducts)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestUpdateRatingRoundsAndClamps(t *testing.T) {
	a := models.NewArtisan("n", "e@x.com", "9876543210", "c", "l")

	a.UpdateRating(4.26)
	assert.Equal(t, 4.3, a.Rating)

	a.UpdateRating(7.5)
	assert.Equal(t, 5.0, a.Rating)

	a.UpdateRating(-1)
	assert.Equal(t, 0.0, a.Rating)
}

func TestVerify(t *testing.T) {
	a := models.NewArtisan("n", "e@x.com", "9876543210", "c", "l")
	before := a.UpdatedAt

	a.Verify()

	assert.True(t, a.Verified)
	assert.False(t, a.UpdatedAt.Before(before))
}

func TestNormalizeLowercasesEmail(t *testing.T) {
	a := &models.Artisan{Email: "Mixed@Case.COM"}
	a.Normalize()

	assert.Equal(t, "mixed@case.com", a.Email)
	assert.Equal(t, models.StatusActive, a.Status)
}
