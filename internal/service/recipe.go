package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/plateful-backend/internal/models"
)

// RecipeService handles owner-scoped recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilters narrows a listing to recipes associated with at least one of
// the given tag ids and at least one of the given ingredient ids. Within one
// id set the semantics are OR; results are deduplicated.
type RecipeFilters struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// CreateRecipeParams holds the fields of a recipe create request. Tag and
// ingredient entries are identified by name; existing rows owned by the same
// user are reused, missing ones are created.
type CreateRecipeParams struct {
	Title       string
	Description string
	TimeMinutes int
	Price       float64
	Link        string
	Tags        []string
	Ingredients []string
}

// UpdateRecipeParams holds a partial update. Nil fields are untouched. A
// non-nil empty Tags or Ingredients list clears that relation set.
type UpdateRecipeParams struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// List returns the caller's recipes, most recently created first.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, filters RecipeFilters) ([]models.Recipe, error) {
	var recipes []models.Recipe

	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if len(filters.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filters.TagIDs)
	}
	if len(filters.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filters.IngredientIDs)
	}

	err := query.
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// Get returns a single recipe. A recipe owned by someone else is
// indistinguishable from a missing one.
func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create creates a recipe for the given user. Embedded tag and ingredient
// names are reconciled against the user's catalog inside the same
// transaction as the recipe insert.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, p CreateRecipeParams) (*models.Recipe, error) {
	recipe := models.Recipe{
		Title:       p.Title,
		Description: p.Description,
		TimeMinutes: p.TimeMinutes,
		Price:       p.Price,
		Link:        p.Link,
		UserID:      userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := reconcileTags(tx, userID, p.Tags)
		if err != nil {
			return err
		}
		ingredients, err := reconcileIngredients(tx, userID, p.Ingredients)
		if err != nil {
			return err
		}
		recipe.Tags = tags
		recipe.Ingredients = ingredients

		return tx.Omit("Tags.*", "Ingredients.*").Create(&recipe).Error
	})
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// Update applies a partial update. When the payload carries a tags or
// ingredients list the relation set of that kind is fully replaced by the
// reconciled set; an omitted list leaves existing associations untouched.
func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, id uint, p UpdateRecipeParams) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if p.Title != nil {
			updates["title"] = *p.Title
		}
		if p.Description != nil {
			updates["description"] = *p.Description
		}
		if p.TimeMinutes != nil {
			updates["time_minutes"] = *p.TimeMinutes
		}
		if p.Price != nil {
			updates["price"] = *p.Price
		}
		if p.Link != nil {
			updates["link"] = *p.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if p.Tags != nil {
			tags, err := reconcileTags(tx, userID, *p.Tags)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &recipe, "Tags", tags); err != nil {
				return err
			}
		}
		if p.Ingredients != nil {
			ingredients, err := reconcileIngredients(tx, userID, *p.Ingredients)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &recipe, "Ingredients", ingredients); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// Delete removes a recipe and its association rows. The removed recipe is
// returned so the caller can release its stored image.
func (s *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Select(clause.Associations).Delete(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SetImagePath records the stored image path for a recipe and returns the
// previous path so the caller can release the old object.
func (s *RecipeService) SetImagePath(ctx context.Context, userID uuid.UUID, id uint, path string) (string, error) {
	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		previous = recipe.ImagePath
		return tx.Model(&recipe).Update("image_path", path).Error
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}

// reconcileTags resolves tag names to rows owned by the user, creating the
// missing ones. Duplicate names within one payload collapse to a single row.
// The (user_id, name) unique index makes the lookup-then-create race a
// constraint violation rather than a duplicate row; FirstOrCreate runs
// inside the caller's write transaction.
func reconcileTags(tx *gorm.DB, userID uuid.UUID, names []string) ([]models.Tag, error) {
	out := make([]models.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var tag models.Tag
		if err := tx.Where(models.Tag{UserID: userID, Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

func reconcileIngredients(tx *gorm.DB, userID uuid.UUID, names []string) ([]models.Ingredient, error) {
	out := make([]models.Ingredient, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var ingredient models.Ingredient
		if err := tx.Where(models.Ingredient{UserID: userID, Name: name}).FirstOrCreate(&ingredient).Error; err != nil {
			return nil, err
		}
		out = append(out, ingredient)
	}
	return out, nil
}

func replaceAssociation(tx *gorm.DB, recipe *models.Recipe, name string, values interface{}) error {
	assoc := tx.Model(recipe).Association(name)
	switch v := values.(type) {
	case []models.Tag:
		if len(v) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(v)
	case []models.Ingredient:
		if len(v) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(v)
	}
	return nil
}
