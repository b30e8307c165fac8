package router

import (
	"uptown/internal/handler"
	"uptown/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ApiRouter 對外 API；讀取端公開，寫入端掛 Bearer 驗證
type ApiRouter struct {
	auth                 *middleware.Auth
	authHandler          *handler.AuthHandler
	propertyHandler      *handler.PropertyHandler
	stateHandler         *handler.StateHandler
	cityHandler          *handler.CityHandler
	microlocationHandler *handler.MicrolocationHandler
	amenityHandler       *handler.AmenityHandler
	planHandler          *handler.ColivingPlanHandler
	leadHandler          *handler.LeadHandler
	mediaHandler         *handler.MediaHandler
}

func NewApiRouter(
	auth *middleware.Auth,
	authHandler *handler.AuthHandler,
	propertyHandler *handler.PropertyHandler,
	stateHandler *handler.StateHandler,
	cityHandler *handler.CityHandler,
	microlocationHandler *handler.MicrolocationHandler,
	amenityHandler *handler.AmenityHandler,
	planHandler *handler.ColivingPlanHandler,
	leadHandler *handler.LeadHandler,
	mediaHandler *handler.MediaHandler,
) *ApiRouter {
	return &ApiRouter{
		auth:                 auth,
		authHandler:          authHandler,
		propertyHandler:      propertyHandler,
		stateHandler:         stateHandler,
		cityHandler:          cityHandler,
		microlocationHandler: microlocationHandler,
		amenityHandler:       amenityHandler,
		planHandler:          planHandler,
		leadHandler:          leadHandler,
		mediaHandler:         mediaHandler,
	}
}

func (ar *ApiRouter) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/admin/login", ar.authHandler.Login)

	properties := api.Group("/properties")
	{
		properties.GET("", ar.propertyHandler.List)
		properties.GET("/slug/:slug", ar.propertyHandler.GetBySlug)
		properties.GET("/:id", ar.propertyHandler.GetByID)

		guarded := properties.Group("", ar.auth.Guard())
		guarded.POST("", ar.propertyHandler.Create)
		guarded.PUT("/:id", ar.propertyHandler.Update)
		guarded.PATCH("/:id/status", ar.propertyHandler.SetStatus)
		guarded.PATCH("/:id/feature", ar.propertyHandler.SetFeatured)
		guarded.PATCH("/:id/images/reorder", ar.propertyHandler.ReorderImages)
		guarded.DELETE("/:id/images/:imageID", ar.propertyHandler.RemoveImage)
		guarded.DELETE("/:id", ar.propertyHandler.Delete)
	}

	states := api.Group("/states")
	{
		states.GET("", ar.stateHandler.List)
		states.GET("/:key", ar.stateHandler.Get)

		guarded := states.Group("", ar.auth.Guard())
		guarded.POST("", ar.stateHandler.Create)
		guarded.PUT("/:key", ar.stateHandler.Update)
		guarded.DELETE("/:key", ar.stateHandler.Delete)
	}

	cities := api.Group("/cities")
	{
		cities.GET("", ar.cityHandler.List)
		cities.GET("/:key", ar.cityHandler.Get)

		guarded := cities.Group("", ar.auth.Guard())
		guarded.POST("", ar.cityHandler.Create)
		guarded.PUT("/content/:slug", ar.cityHandler.UpsertContent)
		guarded.PUT("/:key", ar.cityHandler.Update)
		guarded.DELETE("/:key", ar.cityHandler.Delete)
	}

	microlocations := api.Group("/microlocations")
	{
		microlocations.GET("", ar.microlocationHandler.List)
		microlocations.GET("/:city/:slug", ar.microlocationHandler.Get)

		guarded := microlocations.Group("", ar.auth.Guard())
		guarded.POST("", ar.microlocationHandler.Create)
		guarded.PUT("/content/:city/:slug", ar.microlocationHandler.UpsertContent)
		guarded.PUT("/:id", ar.microlocationHandler.Update)
		guarded.DELETE("/:id", ar.microlocationHandler.Delete)
	}

	amenities := api.Group("/amenities")
	{
		amenities.GET("", ar.amenityHandler.List)
		amenities.GET("/:id", ar.amenityHandler.Get)

		guarded := amenities.Group("", ar.auth.Guard())
		guarded.POST("", ar.amenityHandler.Create)
		guarded.PUT("/:id", ar.amenityHandler.Update)
		guarded.PATCH("/:id/enable", ar.amenityHandler.SetEnabled)
		guarded.DELETE("/:id", ar.amenityHandler.Delete)
	}

	plans := api.Group("/coliving-plans")
	{
		plans.GET("", ar.planHandler.List)
		plans.GET("/:id", ar.planHandler.Get)

		guarded := plans.Group("", ar.auth.Guard())
		guarded.POST("", ar.planHandler.Create)
		guarded.PUT("/:id", ar.planHandler.Update)
		guarded.PATCH("/:id/enable", ar.planHandler.SetEnabled)
		guarded.DELETE("/:id", ar.planHandler.Delete)
	}

	leads := api.Group("/leads")
	{
		leads.POST("", ar.leadHandler.Create)

		guarded := leads.Group("", ar.auth.Guard())
		guarded.GET("", ar.leadHandler.List)
		guarded.DELETE("/:id", ar.leadHandler.Delete)
	}

	media := api.Group("/media", ar.auth.Guard())
	{
		media.POST("", ar.mediaHandler.Upload)
		media.GET("", ar.mediaHandler.List)
		media.PUT("/:id", ar.mediaHandler.Update)
		media.DELETE("/:id", ar.mediaHandler.Delete)
	}
}
