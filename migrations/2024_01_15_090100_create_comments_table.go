package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func init() {
	register(&gormigrate.Migration{
		ID: "2024_01_15_090100_create_comments_table",
		Migrate: func(tx *gorm.DB) error {
			type comment struct {
				ID        uint   `gorm:"primaryKey"`
				PostID    uint   `gorm:"index;not null"`
				Author    string `gorm:"size:64;not null"`
				Body      string `gorm:"type:text;not null"`
				CreatedAt time.Time
				UpdatedAt time.Time
			}
			return tx.Migrator().CreateTable(&comment{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable("comments")
		},
	})
}
