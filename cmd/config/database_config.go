package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	migration "Go-Recipe-Chat/cmd/database/migrate"
	"Go-Recipe-Chat/internal/store"
	"Go-Recipe-Chat/internal/utils"
	"Go-Recipe-Chat/pkg/chat"
	"Go-Recipe-Chat/pkg/recipe"
	"Go-Recipe-Chat/pkg/user"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Repositories is one implementation of every repository, all backed by the
// same storage.
type Repositories struct {
	User   user.UserRepository
	Recipe recipe.RecipeRepository
	Chat   chat.ChatRepository
}

func NewMemoryRepositories(st *store.Store) Repositories {
	return Repositories{
		User:   user.NewMemoryUserRepository(st),
		Recipe: recipe.NewMemoryRecipeRepository(st),
		Chat:   chat.NewMemoryChatRepository(st),
	}
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		User:   user.NewUserRepository(db),
		Recipe: recipe.NewRecipeRepository(db),
		Chat:   chat.NewChatRepository(db),
	}
}

func ConnectDB(cfg utils.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.StorageDriver) {
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("storage driver %q has no database", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// OpenRepositories builds the repositories for the configured storage
// driver, migrating the schema first for database drivers. The returned
// close function releases the database, if any.
func OpenRepositories(cfg utils.Config) (Repositories, func() error, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", DriverMemory:
		return NewMemoryRepositories(store.New()), func() error { return nil }, nil
	case DriverPostgres, DriverSQLite:
		db, err := ConnectDB(cfg)
		if err != nil {
			return Repositories{}, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return Repositories{}, nil, err
		}
		if err := migration.Migrate(db); err != nil {
			_ = sqlDB.Close()
			return Repositories{}, nil, err
		}
		return NewGormRepositories(db), sqlDB.Close, nil
	default:
		return Repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
