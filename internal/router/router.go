package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plateful/plateful-backend/internal/api"
	"github.com/plateful/plateful-backend/internal/database"
	"github.com/plateful/plateful-backend/internal/middleware"
	"github.com/plateful/plateful-backend/internal/models"
	"github.com/plateful/plateful-backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	db *gorm.DB,
	userHandler *api.UserHandler,
	recipeHandler *api.RecipeHandler,
	tagHandler *api.CatalogHandler[models.Tag],
	ingredientHandler *api.CatalogHandler[models.Ingredient],
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	tagHandler.RegisterRoutes(v1)
	ingredientHandler.RegisterRoutes(v1)

	return router
}

// Handlers builds the full handler set from shared services.
func Handlers(db *gorm.DB, authService *service.AuthService, imageService *service.ImageService, rateLimiter *middleware.RateLimiter) (*api.UserHandler, *api.RecipeHandler, *api.CatalogHandler[models.Tag], *api.CatalogHandler[models.Ingredient]) {
	userHandler := api.NewUserHandler(authService)
	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db), imageService, authService, rateLimiter)
	tagHandler := api.NewCatalogHandler(service.NewCatalogService[models.Tag](db), authService, "tags")
	ingredientHandler := api.NewCatalogHandler(service.NewCatalogService[models.Ingredient](db), authService, "ingredients")
	return userHandler, recipeHandler, tagHandler, ingredientHandler
}
