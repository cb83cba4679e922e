package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/utils"
)

const postDetailRoute = "/posts/:id"

// PageViewRecorder records page views per day and path.
func PageViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only successful GET page views count.
		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/") {
			return
		}

		if err := RecordPageView(db, path, postIDFor(c), time.Now()); err != nil {
			utils.Sugar.Warnf("record page view failed path=%s err=%v", path, err)
		}
	}
}

// RecordPageView increments the counter of path for the day of now.
func RecordPageView(db *gorm.DB, path string, postID uint, now time.Time) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
	}).Create(&models.PageView{Date: models.Day(now), Path: path, PostID: postID, Count: 1}).Error
}

func postIDFor(c *gin.Context) uint {
	if c.FullPath() != postDetailRoute {
		return 0
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
