package migration

import "gorm.io/gorm"

type Migration interface {
	Name() string
	Up(db *gorm.DB) error
}

// AllMigrations est l'ordre d'exécution. On ajoute à la fin, jamais au
// milieu.
var AllMigrations = []Migration{
	FirstMigration{},
	BackfillDefaultAvatars{},
}
