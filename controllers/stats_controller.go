package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/utils"
)

// StatsController provides board statistics such as counts and daily page views.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the board.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var postCount int64
	var commentCount int64
	var todayViews int64
	var totalViews int64

	// Counters degrade to 0 instead of failing the whole endpoint.
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := s.db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		commentCount = 0
	}

	// Bind the same value RecordPageView writes so drivers compare like with like.
	today := models.Day(time.Now())
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&todayViews).Error; err != nil {
		todayViews = 0
	}
	if err := s.db.Model(&models.PageView{}).
		Select("COALESCE(SUM(count),0)").
		Scan(&totalViews).Error; err != nil {
		totalViews = 0
	}

	utils.Success(ctx, gin.H{
		"post_count":       postCount,
		"comment_count":    commentCount,
		"today_view_count": todayViews,
		"total_view_count": totalViews,
	})
}

// GetPostStats returns page views and comment count for a post.
func (s *StatsController) GetPostStats(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40406, "post not found")
		return
	}
	var exists int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load post")
		return
	}
	if exists == 0 {
		utils.Error(ctx, http.StatusNotFound, 40406, "post not found")
		return
	}

	var pv int64
	if err := s.db.Model(&models.PageView{}).
		Where("post_id = ?", id).
		Select("COALESCE(SUM(count),0)").
		Scan(&pv).Error; err != nil {
		pv = 0
	}

	var commentsCount int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", id).Count(&commentsCount).Error; err != nil {
		commentsCount = 0
	}

	utils.Success(ctx, gin.H{
		"pv":             pv,
		"comments_count": commentsCount,
	})
}
