// Package controllers maps HTTP requests onto the service layer and writes
// the JSON envelope.
package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/pkg/bind"
	"github.com/kalakaksh/backend/pkg/logger"
	"github.com/kalakaksh/backend/pkg/response"
)

type ArtisanController struct {
	repo    *repositories.Repository
	catalog *services.CatalogService
	media   *services.MediaService
}

func NewArtisanController(repo *repositories.Repository, catalog *services.CatalogService, media *services.MediaService) *ArtisanController {
	return &ArtisanController{repo: repo, catalog: catalog, media: media}
}

type artisanInput struct {
	Name            string `json:"name"             validate:"required,min=2,max=100"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required,phone"`
	CraftType       string `json:"craft_type"       validate:"required"`
	Location        string `json:"location"         validate:"required"`
	Bio             string `json:"bio"              validate:"nullable,max=2000"`
	ExperienceYears int    `json:"experience_years" validate:"nullable,gte=0"`
}

// Index handles GET /api/artisans with optional craft_type and verified
// query filters.
func (c *ArtisanController) Index(w http.ResponseWriter, r *http.Request) {
	filter := services.ArtisanFilter{
		CraftType: r.URL.Query().Get("craft_type"),
	}
	if v := r.URL.Query().Get("verified"); v != "" {
		verified := v == "true" || v == "1"
		filter.Verified = &verified
	}

	artisans, err := c.catalog.Artisans(filter)
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.List(w, artisans, len(artisans))
}

// Show handles GET /api/artisans/{id}.
func (c *ArtisanController) Show(w http.ResponseWriter, r *http.Request) {
	artisan, err := c.repo.GetArtisan(chi.URLParam(r, "id"))
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.Success(w, artisan)
}

// Store handles POST /api/artisans.
func (c *ArtisanController) Store(w http.ResponseWriter, r *http.Request) {
	var in artisanInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	artisan := models.NewArtisan(in.Name, in.Email, in.Phone, in.CraftType, in.Location)
	artisan.Bio = in.Bio
	artisan.ExperienceYears = in.ExperienceYears

	created, err := c.repo.CreateArtisan(artisan)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	c.catalog.InvalidateFacets()
	logger.WithCtx(r.Context()).Info("artisan created", "artisan_id", created.ID)
	response.Created(w, created)
}

// Update handles PUT /api/artisans/{id} with a partial patch body.
func (c *ArtisanController) Update(w http.ResponseWriter, r *http.Request) {
	var patch repositories.ArtisanPatch
	if errs, err := bind.JSON(r, &patch); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	updated, err := c.repo.UpdateArtisan(chi.URLParam(r, "id"), patch)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	c.catalog.InvalidateFacets()
	response.Success(w, updated)
}

// UploadProfileImage handles POST /api/artisans/{id}/profile-image with a
// multipart "image" field.
func (c *ArtisanController) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	artisan, url, err := c.media.SaveProfileImage(chi.URLParam(r, "id"), filename, data)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	response.Raw(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"data":      artisan,
		"image_url": url,
	})
}

// readUpload pulls the "image" file out of a multipart body. On failure it
// writes the error response and returns ok=false.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(config.UploadMaxBytes()); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart request")
		return "", nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No image file provided")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Could not read uploaded file")
		return "", nil, false
	}

	return header.Filename, data, true
}
