package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalakaksh/backend/app/models"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/pkg/bind"
	"github.com/kalakaksh/backend/pkg/logger"
	"github.com/kalakaksh/backend/pkg/response"
)

type ProductController struct {
	repo    *repositories.Repository
	catalog *services.CatalogService
	media   *services.MediaService
	enhance *services.EnhanceService
}

func NewProductController(repo *repositories.Repository, catalog *services.CatalogService, media *services.MediaService, enhance *services.EnhanceService) *ProductController {
	return &ProductController{repo: repo, catalog: catalog, media: media, enhance: enhance}
}

type productInput struct {
	ArtisanID     string                 `json:"artisan_id"     validate:"required"`
	Name          string                 `json:"name"           validate:"required,min=2,max=200"`
	Description   string                 `json:"description"    validate:"required"`
	Price         float64                `json:"price"          validate:"required,gte=0"`
	Category      string                 `json:"category"       validate:"required"`
	Subcategory   string                 `json:"subcategory"`
	Materials     []string               `json:"materials"`
	Dimensions    map[string]interface{} `json:"dimensions"`
	Weight        float64                `json:"weight"         validate:"nullable,gte=0"`
	StockQuantity *int                   `json:"stock_quantity" validate:"nullable,gte=0"`
	Tags          []string               `json:"tags"`
	Featured      bool                   `json:"featured"`
}

type stockInput struct {
	Quantity int `json:"quantity"`
}

type enhanceInput struct {
	Name        string   `json:"name"        validate:"required"`
	CraftType   string   `json:"craft_type"  validate:"required"`
	Description string   `json:"description" validate:"required"`
	Materials   []string `json:"materials"`
}

// Index handles GET /api/products. Query params: search, category,
// artisan_id, featured, status.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ProductFilter{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		ArtisanID: q.Get("artisan_id"),
		Status:    q.Get("status"),
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}

	products, err := c.catalog.Products(filter)
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.List(w, products, len(products))
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.repo.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.Success(w, product)
}

// Store handles POST /api/products.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	product := models.NewProduct(in.ArtisanID, in.Name, in.Description, in.Price, in.Category)
	product.Subcategory = in.Subcategory
	product.Weight = in.Weight
	product.Featured = in.Featured
	if in.Materials != nil {
		product.Materials = in.Materials
	}
	if in.Dimensions != nil {
		product.Dimensions = in.Dimensions
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}
	if in.StockQuantity != nil {
		product.StockQuantity = *in.StockQuantity
	}

	created, err := c.repo.CreateProduct(product)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	c.catalog.InvalidateFacets()
	logger.WithCtx(r.Context()).Info("product created",
		"product_id", created.ID, "artisan_id", created.ArtisanID)
	response.Created(w, created)
}

// Update handles PUT /api/products/{id} with a partial patch body.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var patch repositories.ProductPatch
	if errs, err := bind.JSON(r, &patch); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	updated, err := c.repo.UpdateProduct(chi.URLParam(r, "id"), patch)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	c.catalog.InvalidateFacets()
	response.Success(w, updated)
}

// UpdateStock handles PUT /api/products/{id}/stock.
func (c *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var in stockInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := c.repo.UpdateStock(chi.URLParam(r, "id"), in.Quantity)
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.Success(w, updated)
}

// ToggleFeatured handles POST /api/products/{id}/featured.
func (c *ProductController) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	updated, err := c.repo.ToggleFeatured(chi.URLParam(r, "id"))
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.Success(w, updated)
}

// UploadImage handles POST /api/products/{id}/images with a multipart
// "image" field.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	product, url, err := c.media.SaveProductImage(chi.URLParam(r, "id"), filename, data)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	response.Raw(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"data":      product,
		"image_url": url,
	})
}

// UploadEnhancedImage handles POST /api/products/{id}/images/enhanced.
func (c *ProductController) UploadEnhancedImage(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	product, url, err := c.media.SaveEnhancedProductImage(chi.URLParam(r, "id"), filename, data)
	if err != nil {
		response.FromErr(w, err)
		return
	}

	response.Raw(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"data":      product,
		"image_url": url,
		"enhanced":  true,
	})
}

// EnhancePreview handles POST /api/enhance-description-preview: returns an
// enhanced description without persisting anything.
func (c *ProductController) EnhancePreview(w http.ResponseWriter, r *http.Request) {
	var in enhanceInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	enhanced, ai := c.enhance.Description(r.Context(), in.Name, in.CraftType, in.Description, in.Materials)

	response.Raw(w, http.StatusOK, map[string]interface{}{
		"success":              true,
		"enhanced_description": enhanced,
		"ai_generated":         ai,
	})
}
