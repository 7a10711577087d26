package controllers

import (
	"net/http"

	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/pkg/response"
)

// MetaController serves health, dashboard, and facet endpoints.
type MetaController struct {
	catalog   *services.CatalogService
	dashboard *services.DashboardService
}

func NewMetaController(catalog *services.CatalogService, dashboard *services.DashboardService) *MetaController {
	return &MetaController{catalog: catalog, dashboard: dashboard}
}

// Health handles GET /api/health.
func (c *MetaController) Health(w http.ResponseWriter, _ *http.Request) {
	response.Raw(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": config.AppName + " API is running",
		"version": config.Version,
	})
}

// Dashboard handles GET /api/dashboard.
func (c *MetaController) Dashboard(w http.ResponseWriter, _ *http.Request) {
	stats, err := c.dashboard.Stats()
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.Success(w, stats)
}

// Categories handles GET /api/categories.
func (c *MetaController) Categories(w http.ResponseWriter, _ *http.Request) {
	cats, err := c.catalog.Categories()
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.List(w, cats, len(cats))
}

// CraftTypes handles GET /api/craft-types.
func (c *MetaController) CraftTypes(w http.ResponseWriter, _ *http.Request) {
	crafts, err := c.catalog.CraftTypes()
	if err != nil {
		response.FromErr(w, err)
		return
	}
	response.List(w, crafts, len(crafts))
}
