package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful-backend/internal/middleware"
	"github.com/plateful/plateful-backend/internal/service"
)

// RecipeHandler serves recipe CRUD and image upload.
type RecipeHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
	authService   *service.AuthService
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, imageService *service.ImageService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageService:  imageService,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)

		upload := recipes.Group("")
		if h.rateLimiter != nil {
			upload.Use(h.rateLimiter.RateLimitMiddleware())
		}
		upload.POST("/:id/image", h.UploadImage)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filters := service.RecipeFilters{
		TagIDs:        parseIDList(c.Query("tags")),
		IngredientIDs: parseIDList(c.Query("ingredients")),
	}

	recipes, err := h.recipeService.List(c.Request.Context(), userID, filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, toRecipeSummary(r))
	}

	c.JSON(http.StatusOK, gin.H{"recipes": summaries})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
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

	recipe, err := h.recipeService.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Ownership is pinned to the authenticated requester; any owner value
	// in the payload is ignored by the binding.
	recipe, err := h.recipeService.Create(c.Request.Context(), userID, service.CreateRecipeParams{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        namesOf(req.Tags),
		Ingredients: namesOf(req.Ingredients),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
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

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.UpdateRecipeParams{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}
	if req.Tags != nil {
		names := namesOf(*req.Tags)
		params.Tags = &names
	}
	if req.Ingredients != nil {
		names := namesOf(*req.Ingredients)
		params.Ingredients = &names
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, id, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
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

	recipe, err := h.recipeService.Delete(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.imageService.Remove(c.Request.Context(), recipe.ImagePath)
	c.Status(http.StatusNoContent)
}

// UploadImage replaces a recipe's image. The payload must arrive as the
// multipart field "image" and decode as an image; on failure the recipe is
// left unmodified. The previous stored object is released after the swap.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
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

	// The recipe must exist and be the caller's before any bytes land in
	// storage.
	if _, err := h.recipeService.Get(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "image file is required"}})
		return
	}

	path, err := h.imageService.Store(c.Request.Context(), fileHeader)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	previous, err := h.recipeService.SetImagePath(c.Request.Context(), userID, id, path)
	if err != nil {
		h.imageService.Remove(c.Request.Context(), path)
		handleServiceError(c, err)
		return
	}

	if previous != "" && previous != path {
		h.imageService.Remove(c.Request.Context(), previous)
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "image": path})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
