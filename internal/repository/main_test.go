package repository

import (
	"context"
	"os"
	"testing"

	"sensei/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Reply{},
		&models.Reaction{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		DisplayName: username,
		Email:       username + "@example.com",
		Password:    "hashed-password",
		Role:        models.RoleStudent,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Content:  "content of " + title,
		Category: models.CategoryQuestion,
		UserID:   userID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func addReaction(t *testing.T, db *gorm.DB, userID uint, subjectType string, subjectID uint, kind string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Reaction{
		UserID:      userID,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Kind:        kind,
	}).Error)
}

var testCtx = context.Background()
