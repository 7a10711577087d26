// Package models defines the marketplace entities.
package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Artisan statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Artisan is a craftsperson profile.
type Artisan struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CraftType       string    `json:"craft_type"`
	Location        string    `json:"location"`
	Bio             string    `json:"bio"`
	ExperienceYears int       `json:"experience_years"`
	ProfileImage    string    `json:"profile_image"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Status          string    `json:"status"`
	Verified        bool      `json:"verified"`
	Rating          float64   `json:"rating"`
	TotalProducts   int       `json:"total_products"`
	TotalOrders     int       `json:"total_orders"`
}

// NewArtisan builds an Artisan with a fresh ID, timestamps, and defaults.
func NewArtisan(name, email, phone, craftType, location string) *Artisan {
	now := time.Now().UTC()
	return &Artisan{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		CraftType: craftType,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    StatusActive,
		Verified:  false,
		Rating:    0.0,
	}
}

// Normalize fills zero-value fields loaded from older store files with
// their defaults so every record carries the full shape.
func (a *Artisan) Normalize() {
	if a.Status == "" {
		a.Status = StatusActive
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
}

// Touch advances updated_at.
func (a *Artisan) Touch() {
	a.UpdatedAt = time.Now().UTC()
}

// UpdateRating sets the rating rounded to one decimal place, clamped to [0, 5].
func (a *Artisan) UpdateRating(r float64) {
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	a.Rating = math.Round(r*10) / 10
	a.Touch()
}

// Verify marks the artisan as verified.
func (a *Artisan) Verify() {
	a.Verified = true
	a.Touch()
}
