package migration

import (
	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"gorm.io/gorm"
)

type FirstMigration struct{}

func (FirstMigration) Name() string { return "02_08_2026_First_Migration" }

func (FirstMigration) Up(db *gorm.DB) error {
	// users d'abord : posts porte la clé étrangère author_id
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}
	return db.AutoMigrate(&models.Post{})
}
