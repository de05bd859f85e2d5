package database

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", path, err)
	}

	if err := GetMigrator(db).Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return db, nil
}

func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "0",
			Migrate: func(txn *gorm.DB) error {
				return txn.AutoMigrate(&PipelineRun{}, &SplitReport{})
			},
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		// Run by the migrator when no previous migration is detected;
		// creates the latest schema directly.
		log.Println("clean database detected, running full schema initialization")

		// Sqlite does not enable foreign key constraints by default.
		if err := txn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			slog.Error("error enabling foreign keys for SQLite", "error", err)
		}

		return txn.AutoMigrate(&PipelineRun{}, &SplitReport{})
	})

	return migrator
}
