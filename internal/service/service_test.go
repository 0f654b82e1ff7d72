package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/plateful-backend/internal/database"
	"github.com/plateful/plateful-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	user := models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "user+" + uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}
