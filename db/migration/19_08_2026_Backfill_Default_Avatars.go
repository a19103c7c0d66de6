package migration

import (
	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"gorm.io/gorm"
)

type BackfillDefaultAvatars struct{}

func (BackfillDefaultAvatars) Name() string { return "19_08_2026_Backfill_Default_Avatars" }

// Les comptes créés avant l'ajout de la valeur par défaut ont un avatar
// vide : on les ramène sur le sentinel.
func (BackfillDefaultAvatars) Up(db *gorm.DB) error {
	return db.Model(&models.User{}).
		Where("avatar = ?", "").
		Update("avatar", models.DefaultAvatar).Error
}
