// Package routes registers every API endpoint on the router.
package routes

import (
	"net/http"

	"github.com/kalakaksh/backend/app/controllers"
	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/pkg/metrics"
	"github.com/kalakaksh/backend/pkg/response"
	"github.com/kalakaksh/backend/pkg/router"
)

// Deps carries the wired services the controllers need.
type Deps struct {
	Repo      *repositories.Repository
	Catalog   *services.CatalogService
	Dashboard *services.DashboardService
	Media     *services.MediaService
	Enhance   *services.EnhanceService
}

// RegisterAPI mounts all endpoints.
func RegisterAPI(r *router.Router, d Deps) {
	artisanController := controllers.NewArtisanController(d.Repo, d.Catalog, d.Media)
	productController := controllers.NewProductController(d.Repo, d.Catalog, d.Media, d.Enhance)
	metaController := controllers.NewMetaController(d.Catalog, d.Dashboard)

	api := r.Group("/api")

	api.Get("/health", "meta.health", metaController.Health)
	api.Get("/dashboard", "meta.dashboard", metaController.Dashboard)
	api.Get("/categories", "meta.categories", metaController.Categories)
	api.Get("/craft-types", "meta.craft_types", metaController.CraftTypes)

	api.Get("/artisans", "artisans.index", artisanController.Index)
	api.Post("/artisans", "artisans.store", artisanController.Store)
	api.Get("/artisans/{id}", "artisans.show", artisanController.Show)
	api.Put("/artisans/{id}", "artisans.update", artisanController.Update)
	api.Post("/artisans/{id}/profile-image", "artisans.profile_image", artisanController.UploadProfileImage)

	api.Get("/products", "products.index", productController.Index)
	api.Post("/products", "products.store", productController.Store)
	api.Get("/products/{id}", "products.show", productController.Show)
	api.Put("/products/{id}", "products.update", productController.Update)
	api.Put("/products/{id}/stock", "products.stock", productController.UpdateStock)
	api.Post("/products/{id}/featured", "products.featured", productController.ToggleFeatured)
	api.Post("/products/{id}/images", "products.images", productController.UploadImage)
	api.Post("/products/{id}/images/enhanced", "products.images_enhanced", productController.UploadEnhancedImage)

	api.Post("/enhance-description-preview", "products.enhance_preview", productController.EnhancePreview)

	r.Get("/metrics", "metrics", metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
}
