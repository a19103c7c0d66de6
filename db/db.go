package db

import (
	"time"

	"github.com/Romain-GUILLEMOT/PlumyrBack/config"
	"github.com/Romain-GUILLEMOT/PlumyrBack/db/migration"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	utils.Success("MySQL connected successfully.")
	return database, nil
}

// AppliedMigration trace les migrations déjà passées.
type AppliedMigration struct {
	Name      string `gorm:"primaryKey;size:120"`
	AppliedAt time.Time
}

func (AppliedMigration) TableName() string { return "migrations_applied" }

func ApplyMigrations(database *gorm.DB) {
	if err := database.AutoMigrate(&AppliedMigration{}); err != nil {
		utils.Fatal("Cannot create migrations table", "error", err)
	}

	for _, m := range migration.AllMigrations {
		// Check si migration déjà faite
		var applied AppliedMigration
		if err := database.Where("name = ?", m.Name()).First(&applied).Error; err == nil {
			utils.Info("⏭️ Migration already applied", "name", m.Name())
			continue
		}

		utils.Info("⏳ Applying migration", "name", m.Name())
		if err := m.Up(database); err != nil {
			utils.Fatal("Migration failed", "name", m.Name(), "error", err)
		}

		// On log la migration comme faite
		if err := database.Create(&AppliedMigration{Name: m.Name(), AppliedAt: time.Now()}).Error; err != nil {
			utils.Fatal("Failed to record migration", "name", m.Name(), "error", err)
		}

		utils.Success("Migration applied", "name", m.Name())
	}
}
