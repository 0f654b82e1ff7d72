package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/plateful-backend/internal/models"
)

func TestCatalogListOrderedByNameDesc(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService[models.Ingredient](db)
	userID := createTestUser(t, db)

	for _, name := range []string{"Kale", "Apples", "Vanilla"} {
		require.NoError(t, db.Create(&models.Ingredient{Name: name, UserID: userID}).Error)
	}

	items, err := svc.List(context.Background(), userID, false)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Vanilla", items[0].Name)
	assert.Equal(t, "Kale", items[1].Name)
	assert.Equal(t, "Apples", items[2].Name)
}

func TestCatalogAssignedOnlyDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService[models.Tag](db)
	recipes := NewRecipeService(db)
	userID := createTestUser(t, db)

	// The same tag on two recipes must list once
	for _, title := range []string{"Eggs benedict", "Porridge"} {
		_, err := recipes.Create(context.Background(), userID, CreateRecipeParams{
			Title:       title,
			TimeMinutes: 10,
			Price:       2.00,
			Tags:        []string{"Breakfast"},
		})
		require.NoError(t, err)
	}
	require.NoError(t, db.Create(&models.Tag{Name: "Unused", UserID: userID}).Error)

	items, err := catalog.List(context.Background(), userID, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Breakfast", items[0].Name)
}

func TestCatalogUpdateNameTaken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService[models.Tag](db)
	userID := createTestUser(t, db)

	require.NoError(t, db.Create(&models.Tag{Name: "Vegan", UserID: userID}).Error)
	tag := models.Tag{Name: "Veggie", UserID: userID}
	require.NoError(t, db.Create(&tag).Error)

	_, err := svc.UpdateName(context.Background(), userID, tag.ID, "Vegan")
	assert.ErrorIs(t, err, ErrNameTaken)

	// Renaming to its own current name is a no-op, not a conflict
	renamed, err := svc.UpdateName(context.Background(), userID, tag.ID, "Veggie")
	require.NoError(t, err)
	assert.Equal(t, "Veggie", renamed.Name)
}

func TestCatalogDeleteScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService[models.Ingredient](db)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)

	ingredient := models.Ingredient{Name: "Saffron", UserID: userID}
	require.NoError(t, db.Create(&ingredient).Error)

	err := svc.Delete(context.Background(), otherID, ingredient.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), userID, ingredient.ID))

	_, err = svc.Get(context.Background(), userID, ingredient.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
