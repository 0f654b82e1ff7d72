package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/plateful-backend/internal/models"
)

// CatalogItem is a recipe attribute kind: a Tag or an Ingredient. Both share
// the same owner-scoping and ordering rules, so one parametrized service
// covers them instead of a per-kind hierarchy.
type CatalogItem interface {
	models.Tag | models.Ingredient
}

// CatalogService provides owner-scoped queries for one attribute kind.
type CatalogService[T CatalogItem] struct {
	db *gorm.DB
}

func NewCatalogService[T CatalogItem](db *gorm.DB) *CatalogService[T] {
	return &CatalogService[T]{db: db}
}

// catalogTables returns the table, join table, and join key column for T.
func catalogTables[T CatalogItem]() (table, joinTable, joinKey string) {
	var zero T
	switch any(zero).(type) {
	case models.Tag:
		return "tags", "recipe_tags", "tag_id"
	case models.Ingredient:
		return "ingredients", "recipe_ingredients", "ingredient_id"
	}
	panic("unreachable")
}

// List returns the caller's rows ordered by name descending. With
// assignedOnly set, only rows attached to at least one of the caller's
// recipes are returned, deduplicated.
func (s *CatalogService[T]) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]T, error) {
	table, joinTable, joinKey := catalogTables[T]()

	var items []T
	query := s.db.WithContext(ctx).Table(table).
		Where(table+".user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", joinTable, joinTable, joinKey, table)).
			Distinct(table + ".*")
	}

	if err := query.Order(table + ".name DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns one row scoped to the caller.
func (s *CatalogService[T]) Get(ctx context.Context, userID uuid.UUID, id uint) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateName renames a row. Renaming onto a name the owner already uses is
// rejected rather than merged.
func (s *CatalogService[T]) UpdateName(ctx context.Context, userID uuid.UUID, id uint, name string) (*T, error) {
	table, _, _ := catalogTables[T]()

	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.WithContext(ctx).Table(table).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	if err := s.db.WithContext(ctx).Model(item).Update("name", name).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Delete removes a row and its recipe association rows.
func (s *CatalogService[T]) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	table, joinTable, joinKey := catalogTables[T]()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.Where("user_id = ?", userID).First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", joinTable, joinKey), id).Error; err != nil {
			return err
		}
		return tx.Table(table).Where("id = ?", id).Delete(&item).Error
	})
}
