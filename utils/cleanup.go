package utils

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cppla/postboard/models"
)

// PrunePageViews deletes page view rows older than retentionDays and returns how many were removed.
func PrunePageViews(db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -retentionDays)
	res := db.Where("date < ?", cutoff).Delete(&models.PageView{})
	return res.RowsAffected, res.Error
}

// StartPageViewPruner periodically prunes old page views until ctx is done.
// A non-positive retention disables it.
func StartPageViewPruner(ctx context.Context, db *gorm.DB, retentionDays int, interval time.Duration) {
	if retentionDays <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			n, err := PrunePageViews(db.WithContext(ctx), retentionDays, time.Now())
			if err != nil {
				Sugar.Warnf("page view pruning failed: %v", err)
				continue
			}
			if n > 0 {
				Sugar.Infof("pruned %d page view rows older than %d days", n, retentionDays)
			}
		}
	}()
}
