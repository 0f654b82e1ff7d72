package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful-backend/internal/middleware"
	"github.com/plateful/plateful-backend/internal/service"
)

// CatalogHandler serves one recipe attribute kind (tags or ingredients).
// Both kinds share routes and behavior; only the path segment differs.
type CatalogHandler[T service.CatalogItem] struct {
	catalogService *service.CatalogService[T]
	authService    *service.AuthService
	path           string
}

func NewCatalogHandler[T service.CatalogItem](catalogService *service.CatalogService[T], authService *service.AuthService, path string) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		catalogService: catalogService,
		authService:    authService,
		path:           path,
	}
}

func (h *CatalogHandler[T]) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/" + h.path)
	items.Use(middleware.AuthMiddleware(h.authService))
	{
		items.GET("", h.List)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.PATCH("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1" || c.Query("assigned_only") == "true"

	items, err := h.catalogService.List(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{h.path: items})
}

func (h *CatalogHandler[T]) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	item, err := h.catalogService.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.catalogService.UpdateName(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
