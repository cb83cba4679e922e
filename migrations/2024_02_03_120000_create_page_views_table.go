package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func init() {
	register(&gormigrate.Migration{
		ID: "2024_02_03_120000_create_page_views_table",
		Migrate: func(tx *gorm.DB) error {
			type pageView struct {
				ID        uint      `gorm:"primaryKey"`
				Date      time.Time `gorm:"index:idx_pv_date_path,unique;type:date;not null"`
				Path      string    `gorm:"index:idx_pv_date_path,unique;size:255;not null"`
				PostID    uint      `gorm:"index;not null;default:0"`
				Count     int64     `gorm:"not null;default:0"`
				CreatedAt time.Time
				UpdatedAt time.Time
			}
			return tx.Migrator().CreateTable(&pageView{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable("page_views")
		},
	})
}
