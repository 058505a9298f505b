package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	uid := "alice-uid"
	alice := &entities.User{Username: "alice", Email: "alice@example.com", DisplayName: "Alice", ExternalUID: &uid, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateUser(ctx, alice))
	require.NotZero(t, alice.ID)

	err := repo.CreateUser(ctx, &entities.User{Username: "alice", Email: "other@example.com", DisplayName: "A", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	err = repo.CreateUser(ctx, &entities.User{Username: "alice2", Email: "alice@example.com", DisplayName: "A", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindUserBy(ctx, domain.FieldExternalUID, "alice-uid")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = repo.FindUserBy(ctx, domain.UniqueField("displayName"), "Alice")
	assert.ErrorIs(t, err, domain.ErrUnknownUniqueKey)

	seen := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	updated, err := repo.UpdatePresence(ctx, alice.ID, true, seen)
	require.NoError(t, err)
	assert.True(t, updated.IsOnline)
	require.NotNil(t, updated.LastSeen)
	assert.True(t, updated.LastSeen.Equal(seen))

	_, err = repo.UpdatePresence(ctx, 99, true, seen)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
