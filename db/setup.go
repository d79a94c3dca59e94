package db

import (
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection. TranslateError lets callers match
// uniqueness violations as gorm.ErrDuplicatedKey.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, err
	}

	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Project{},
		&models.Service{},
		&models.Policy{},
		&models.Integration{},
	}

	migrator := gdb.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := gdb.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
