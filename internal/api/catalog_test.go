package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/plateful-backend/internal/models"
)

func TestListTagsScopedAndOrdered(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)
	otherID, _ := CreateTestUserAndToken(t, testDB)

	require.NoError(t, testDB.DB.Create(&models.Tag{Name: "Dessert", UserID: userID}).Error)
	require.NoError(t, testDB.DB.Create(&models.Tag{Name: "Vegan", UserID: userID}).Error)
	require.NoError(t, testDB.DB.Create(&models.Tag{Name: "Fruity", UserID: otherID}).Error)

	w := PerformRequest(router, "GET", "/api/v1/tags", token, nil)
	require.Equal(t, 200, w.Code)

	response := decodeBody(t, w)
	tags := response["tags"].([]interface{})
	require.Len(t, tags, 2)

	// Name descending
	assert.Equal(t, "Vegan", tags[0].(map[string]interface{})["name"])
	assert.Equal(t, "Dessert", tags[1].(map[string]interface{})["name"])
}

func TestListTagsAssignedOnly(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	postRecipe(t, router, token, map[string]interface{}{
		"title": "Eggs benedict", "time_minutes": 15, "price": 5.00,
		"tags": []map[string]string{{"name": "Breakfast"}},
	})
	// Assigned to two recipes but listed once
	postRecipe(t, router, token, map[string]interface{}{
		"title": "Porridge", "time_minutes": 5, "price": 1.50,
		"tags": []map[string]string{{"name": "Breakfast"}},
	})

	w := PerformRequest(router, "GET", "/api/v1/tags?assigned_only=1", token, nil)
	require.Equal(t, 200, w.Code)

	response := decodeBody(t, w)
	tags := response["tags"].([]interface{})
	require.Len(t, tags, 1)
	assert.Equal(t, "Breakfast", tags[0].(map[string]interface{})["name"])
}

func TestListIngredientsAssignedOnlyFiltersUnassigned(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	require.NoError(t, testDB.DB.Create(&models.Ingredient{Name: "Turmeric", UserID: userID}).Error)
	postRecipe(t, router, token, map[string]interface{}{
		"title": "Apple pie", "time_minutes": 50, "price": 7.00,
		"ingredients": []map[string]string{{"name": "Apples"}},
	})
	postRecipe(t, router, token, map[string]interface{}{
		"title": "Apple crumble", "time_minutes": 40, "price": 6.00,
		"ingredients": []map[string]string{{"name": "Apples"}},
	})

	w := PerformRequest(router, "GET", "/api/v1/ingredients", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Len(t, decodeBody(t, w)["ingredients"].([]interface{}), 2)

	w = PerformRequest(router, "GET", "/api/v1/ingredients?assigned_only=1", token, nil)
	require.Equal(t, 200, w.Code)

	items := decodeBody(t, w)["ingredients"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Apples", items[0].(map[string]interface{})["name"])
}

func TestRenameTag(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Desert", UserID: userID}
	require.NoError(t, testDB.DB.Create(&tag).Error)

	w := PerformRequest(router, "PATCH", fmt.Sprintf("/api/v1/tags/%d", tag.ID), token, map[string]interface{}{
		"name": "Dessert",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated models.Tag
	require.NoError(t, testDB.DB.First(&updated, tag.ID).Error)
	assert.Equal(t, "Dessert", updated.Name)
}

func TestRenameTagToTakenName(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	require.NoError(t, testDB.DB.Create(&models.Tag{Name: "Vegan", UserID: userID}).Error)
	tag := models.Tag{Name: "Veggie", UserID: userID}
	require.NoError(t, testDB.DB.Create(&tag).Error)

	w := PerformRequest(router, "PATCH", fmt.Sprintf("/api/v1/tags/%d", tag.ID), token, map[string]interface{}{
		"name": "Vegan",
	})
	assert.Equal(t, 400, w.Code)

	response := decodeBody(t, w)
	errs, ok := response["errors"].(map[string]interface{})
	require.True(t, ok, "expected field-scoped errors, got %v", response)
	assert.Contains(t, errs, "name")
}

func TestCatalogCrossOwnerIsNotFound(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, _ := CreateTestUserAndToken(t, testDB)
	_, otherToken := CreateTestUserAndToken(t, testDB)

	tag := models.Tag{Name: "Private", UserID: userID}
	require.NoError(t, testDB.DB.Create(&tag).Error)
	ingredient := models.Ingredient{Name: "Saffron", UserID: userID}
	require.NoError(t, testDB.DB.Create(&ingredient).Error)

	w := PerformRequest(router, "GET", fmt.Sprintf("/api/v1/tags/%d", tag.ID), otherToken, nil)
	assert.Equal(t, 404, w.Code)

	w = PerformRequest(router, "PATCH", fmt.Sprintf("/api/v1/ingredients/%d", ingredient.ID), otherToken, map[string]interface{}{
		"name": "Paprika",
	})
	assert.Equal(t, 404, w.Code)

	w = PerformRequest(router, "DELETE", fmt.Sprintf("/api/v1/tags/%d", tag.ID), otherToken, nil)
	assert.Equal(t, 404, w.Code)

	var count int64
	testDB.DB.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteIngredientDetachesFromRecipes(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	userID, token := CreateTestUserAndToken(t, testDB)

	recipeID := postRecipe(t, router, token, map[string]interface{}{
		"title": "Risotto", "time_minutes": 35, "price": 8.00,
		"ingredients": []map[string]string{{"name": "Arborio rice"}, {"name": "Parmesan"}},
	})

	var rice models.Ingredient
	require.NoError(t, testDB.DB.Where("user_id = ? AND name = ?", userID, "Arborio rice").First(&rice).Error)

	w := PerformRequest(router, "DELETE", fmt.Sprintf("/api/v1/ingredients/%d", rice.ID), token, nil)
	assert.Equal(t, 204, w.Code)

	var recipe models.Recipe
	require.NoError(t, testDB.DB.Preload("Ingredients").First(&recipe, recipeID).Error)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Parmesan", recipe.Ingredients[0].Name)
}

func TestCatalogRequiresAuth(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "GET", "/api/v1/tags", "", nil)
	assert.Equal(t, 401, w.Code)

	w = PerformRequest(router, "GET", "/api/v1/ingredients", "", nil)
	assert.Equal(t, 401, w.Code)
}
