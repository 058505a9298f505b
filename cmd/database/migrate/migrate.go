package migration

import (
	"fmt"

	"gorm.io/gorm"

	"Go-Recipe-Chat/entities"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"recipe", &entities.Recipe{}},
		{"favorite", &entities.Favorite{}},
		{"recent view", &entities.RecentView{}},
		{"chat", &entities.Chat{}},
		{"message", &entities.Message{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}
	return nil
}
