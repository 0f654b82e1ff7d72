package api

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/plateful-backend/internal/models"
)

func postRecipe(t *testing.T, router *gin.Engine, token string, payload map[string]interface{}) uint {
	t.Helper()
	w := PerformRequest(router, "POST", "/api/v1/recipes", token, payload)
	require.Equal(t, 201, w.Code, w.Body.String())
	response := decodeBody(t, w)
	recipe := response["recipe"].(map[string]interface{})
	return uint(recipe["id"].(float64))
}

func TestCreateRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title":        "Thai prawn curry",
		"description":  "Fragrant and quick",
		"time_minutes": 30,
		"price":        12.50,
		"link":         "https://example.com/curry",
		"tags":         []map[string]string{{"name": "Thai"}, {"name": "Dinner"}},
		"ingredients":  []map[string]string{{"name": "Prawns"}, {"name": "Coconut milk"}},
	})

	var recipe models.Recipe
	require.NoError(t, testDB.DB.Preload("Tags").Preload("Ingredients").First(&recipe, recipeID).Error)
	assert.Equal(t, userID, recipe.UserID)
	assert.Equal(t, "Thai prawn curry", recipe.Title)
	assert.Len(t, recipe.Tags, 2)
	assert.Len(t, recipe.Ingredients, 2)
}

func TestCreateRecipeReusesExistingTag(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	existing := models.Tag{Name: "Dinner", UserID: userID}
	require.NoError(t, testDB.DB.Create(&existing).Error)

	postRecipe(t, router, token, map[string]interface{}{
		"title":        "Pongal",
		"time_minutes": 60,
		"price":        4.50,
		"tags":         []map[string]string{{"name": "Dinner"}, {"name": "Indian"}},
	})

	// One reused, one created: count grows by exactly the new distinct names
	var count int64
	testDB.DB.Model(&models.Tag{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(2), count)

	var tag models.Tag
	require.NoError(t, testDB.DB.Where("user_id = ? AND name = ?", userID, "Dinner").First(&tag).Error)
	assert.Equal(t, existing.ID, tag.ID)
}

func TestCreateRecipeDuplicateNamesCollapse(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title":        "Lentil soup",
		"time_minutes": 45,
		"price":        3.00,
		"tags":         []map[string]string{{"name": "Vegan"}, {"name": "Vegan"}},
	})

	var count int64
	testDB.DB.Model(&models.Tag{}).Where("user_id = ?", userID).Count(&count)
	assert.Equal(t, int64(1), count)

	var recipe models.Recipe
	require.NoError(t, testDB.DB.Preload("Tags").First(&recipe, recipeID).Error)
	assert.Len(t, recipe.Tags, 1)
}

func TestCreateRecipeIgnoresOwnerInPayload(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)
	otherID, _ := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title":        "Steak",
		"time_minutes": 20,
		"price":        25.00,
		"user_id":      otherID.String(),
	})

	var recipe models.Recipe
	require.NoError(t, testDB.DB.First(&recipe, recipeID).Error)
	assert.Equal(t, userID, recipe.UserID)
	assert.NotEqual(t, otherID, recipe.UserID)
}

func TestListRecipesScopedAndOrdered(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	_, otherToken := CreateTestUserAndToken(t, testDB)

	first := postRecipe(t, router, token, map[string]interface{}{
		"title": "First", "time_minutes": 5, "price": 1.00,
	})
	second := postRecipe(t, router, token, map[string]interface{}{
		"title": "Second", "time_minutes": 5, "price": 1.00,
	})
	postRecipe(t, router, otherToken, map[string]interface{}{
		"title": "Other user's", "time_minutes": 5, "price": 1.00,
	})

	w := PerformRequest(router, "GET", "/api/v1/recipes", token, nil)
	require.Equal(t, 200, w.Code)

	response := decodeBody(t, w)
	recipes := response["recipes"].([]interface{})
	require.Len(t, recipes, 2)

	// Most recently created first
	assert.Equal(t, float64(second), recipes[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(first), recipes[1].(map[string]interface{})["id"])

	// Listing is the summary representation
	assert.NotContains(t, recipes[0].(map[string]interface{}), "description")
}

func TestFilterRecipesByTags(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	curry := postRecipe(t, router, token, map[string]interface{}{
		"title": "Curry", "time_minutes": 30, "price": 5.00,
		"tags": []map[string]string{{"name": "Vegan"}, {"name": "Dinner"}},
	})
	salad := postRecipe(t, router, token, map[string]interface{}{
		"title": "Salad", "time_minutes": 10, "price": 3.00,
		"tags": []map[string]string{{"name": "Fresh"}},
	})
	postRecipe(t, router, token, map[string]interface{}{
		"title": "Toast", "time_minutes": 5, "price": 1.00,
	})

	var vegan, dinner, fresh models.Tag
	require.NoError(t, testDB.DB.Where("user_id = ? AND name = ?", userID, "Vegan").First(&vegan).Error)
	require.NoError(t, testDB.DB.Where("user_id = ? AND name = ?", userID, "Dinner").First(&dinner).Error)
	require.NoError(t, testDB.DB.Where("user_id = ? AND name = ?", userID, "Fresh").First(&fresh).Error)

	// Union semantics: curry matches both ids but appears exactly once
	path := fmt.Sprintf("/api/v1/recipes?tags=%d,%d", vegan.ID, dinner.ID)
	w := PerformRequest(router, "GET", path, token, nil)
	require.Equal(t, 200, w.Code)

	response := decodeBody(t, w)
	recipes := response["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	assert.Equal(t, float64(curry), recipes[0].(map[string]interface{})["id"])

	path = fmt.Sprintf("/api/v1/recipes?tags=%d,%d", dinner.ID, fresh.ID)
	w = PerformRequest(router, "GET", path, token, nil)
	response = decodeBody(t, w)
	recipes = response["recipes"].([]interface{})
	require.Len(t, recipes, 2)
	ids := []float64{
		recipes[0].(map[string]interface{})["id"].(float64),
		recipes[1].(map[string]interface{})["id"].(float64),
	}
	assert.Contains(t, ids, float64(curry))
	assert.Contains(t, ids, float64(salad))
}

func TestFilterRecipesByIngredients(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	soup := postRecipe(t, router, token, map[string]interface{}{
		"title": "Soup", "time_minutes": 30, "price": 2.50,
		"ingredients": []map[string]string{{"name": "Leek"}},
	})
	postRecipe(t, router, token, map[string]interface{}{
		"title": "Omelette", "time_minutes": 10, "price": 2.00,
		"ingredients": []map[string]string{{"name": "Eggs"}},
	})

	var leek models.Ingredient
	require.NoError(t, testDB.DB.Where("user_id = ? AND name = ?", userID, "Leek").First(&leek).Error)

	w := PerformRequest(router, "GET", fmt.Sprintf("/api/v1/recipes?ingredients=%d", leek.ID), token, nil)
	require.Equal(t, 200, w.Code)

	response := decodeBody(t, w)
	recipes := response["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	assert.Equal(t, float64(soup), recipes[0].(map[string]interface{})["id"])
}

func TestUpdateRecipeClearsTagsWithEmptyList(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title": "Stew", "time_minutes": 90, "price": 6.00,
		"tags": []map[string]string{{"name": "Winter"}},
	})

	w := PerformRequest(router, "PATCH", fmt.Sprintf("/api/v1/recipes/%d", recipeID), token, map[string]interface{}{
		"tags": []map[string]string{},
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var recipe models.Recipe
	require.NoError(t, testDB.DB.Preload("Tags").First(&recipe, recipeID).Error)
	assert.Empty(t, recipe.Tags)
}

func TestUpdateRecipeOmittedTagsUnchanged(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title": "Stew", "time_minutes": 90, "price": 6.00,
		"tags": []map[string]string{{"name": "Winter"}},
	})

	w := PerformRequest(router, "PATCH", fmt.Sprintf("/api/v1/recipes/%d", recipeID), token, map[string]interface{}{
		"title": "Hearty stew",
	})
	require.Equal(t, 200, w.Code)

	var recipe models.Recipe
	require.NoError(t, testDB.DB.Preload("Tags").First(&recipe, recipeID).Error)
	assert.Equal(t, "Hearty stew", recipe.Title)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "Winter", recipe.Tags[0].Name)
}

func TestUpdateRecipeReplacesTags(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title": "Pasta", "time_minutes": 20, "price": 4.00,
		"tags": []map[string]string{{"name": "Quick"}},
	})

	w := PerformRequest(router, "PATCH", fmt.Sprintf("/api/v1/recipes/%d", recipeID), token, map[string]interface{}{
		"tags": []map[string]string{{"name": "Comfort"}},
	})
	require.Equal(t, 200, w.Code)

	var recipe models.Recipe
	require.NoError(t, testDB.DB.Preload("Tags").First(&recipe, recipeID).Error)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "Comfort", recipe.Tags[0].Name)
}

func TestRecipeCrossOwnerIsNotFound(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)
	_, otherToken := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title": "Secret sauce", "time_minutes": 5, "price": 99.99,
	})

	path := fmt.Sprintf("/api/v1/recipes/%d", recipeID)

	w := PerformRequest(router, "GET", path, otherToken, nil)
	assert.Equal(t, 404, w.Code)

	w = PerformRequest(router, "PATCH", path, otherToken, map[string]interface{}{"title": "Stolen"})
	assert.Equal(t, 404, w.Code)

	w = PerformRequest(router, "DELETE", path, otherToken, nil)
	assert.Equal(t, 404, w.Code)

	// Still intact for the owner
	w = PerformRequest(router, "GET", path, token, nil)
	require.Equal(t, 200, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "Secret sauce", response["recipe"].(map[string]interface{})["title"])
}

func TestDeleteRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title": "Ephemeral", "time_minutes": 1, "price": 0.50,
	})

	path := fmt.Sprintf("/api/v1/recipes/%d", recipeID)
	w := PerformRequest(router, "DELETE", path, token, nil)
	assert.Equal(t, 204, w.Code)

	w = PerformRequest(router, "GET", path, token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestRecipesRequireAuth(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "GET", "/api/v1/recipes", "", nil)
	assert.Equal(t, 401, w.Code)
}
