package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func init() {
	register(&gormigrate.Migration{
		ID: "2024_01_15_090000_create_posts_table",
		Migrate: func(tx *gorm.DB) error {
			// Snapshot of the table at this version; later model changes need their own migration.
			type post struct {
				ID        uint   `gorm:"primaryKey"`
				Title     string `gorm:"size:255;not null"`
				Body      string `gorm:"type:text;not null"`
				CreatedAt time.Time
				UpdatedAt time.Time
			}
			return tx.Migrator().CreateTable(&post{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable("posts")
		},
	})
}
