package models

import (
	"strings"

	"gorm.io/gorm"
)

// Search limits posts to those whose title or body contains term.
func Search(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		like := "%" + term + "%"
		return db.Where("title LIKE ? OR body LIKE ?", like, like)
	}
}

// Paginate applies offset/limit for a 1-based page.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// DeletePost removes a post together with its comments.
func DeletePost(db *gorm.DB, post *Post) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}
