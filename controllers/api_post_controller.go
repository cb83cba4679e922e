package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/postboard/middleware"
	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/requests"
	"github.com/cppla/postboard/utils"
)

const (
	cachePostListPrefix   = "cache:posts:list:"
	cachePostDetailPrefix = "cache:post:detail:"
	cacheTTL              = time.Hour
)

func cachePostDetailKey(id uint) string {
	return cachePostDetailPrefix + strconv.FormatUint(uint64(id), 10)
}

// PostAPIController exposes posts and comments as JSON under /api/v1.
type PostAPIController struct {
	db *gorm.DB
}

// NewPostAPIController creates a new PostAPIController instance.
func NewPostAPIController(db *gorm.DB) *PostAPIController {
	return &PostAPIController{db: db}
}

// ListPosts returns paginated posts.
func (p *PostAPIController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))

	// Searches are not cached to keep the key space bounded.
	cacheKey := fmt.Sprintf("%spage=%d:size=%d", cachePostListPrefix, page, pageSize)
	if search == "" {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	posts := []models.Post{}
	var total int64
	query := func() *gorm.DB {
		return p.db.Model(&models.Post{}).Scopes(models.Search(search))
	}
	if err := query().Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count posts")
		return
	}
	if err := query().Order("created_at DESC").Order("id DESC").Scopes(models.Paginate(page, pageSize)).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to list posts")
		return
	}

	payload := gin.H{
		"items":      posts,
		"pagination": newPagination(page, pageSize, total),
	}
	if search == "" {
		utils.CacheSetSuccess(cacheKey, payload, cacheTTL)
	}
	utils.Success(ctx, payload)
}

// GetPost returns a single post with comments.
func (p *PostAPIController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	if b, ok := utils.CacheGetBytes(cachePostDetailKey(id)); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var post models.Post
	err := p.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC").Order("id ASC")
	}).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load post")
		return
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	payload := gin.H{"post": post}
	utils.CacheSetSuccess(cachePostDetailKey(id), payload, cacheTTL)
	utils.Success(ctx, payload)
}

// CreatePost stores a new post.
func (p *PostAPIController) CreatePost(ctx *gin.Context) {
	var req requests.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	req.Normalize()
	if errs := requests.Validate(&req); errs != nil {
		utils.ValidationError(ctx, 42201, errs)
		return
	}

	post := models.Post{Title: req.Title, Body: req.Body}
	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}
	invalidatePostCaches(post.ID)

	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost replaces the title and body of a post.
func (p *PostAPIController) UpdatePost(ctx *gin.Context) {
	post, ok := p.find(ctx, 40403)
	if !ok {
		return
	}

	var req requests.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}
	req.Normalize()
	if errs := requests.Validate(&req); errs != nil {
		utils.ValidationError(ctx, 42202, errs)
		return
	}

	post.Title = req.Title
	post.Body = req.Body
	if err := p.db.Save(post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to update post")
		return
	}
	invalidatePostCaches(post.ID)

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post and its comments.
func (p *PostAPIController) DeletePost(ctx *gin.Context) {
	post, ok := p.find(ctx, 40404)
	if !ok {
		return
	}
	if err := models.DeletePost(p.db, post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to delete post")
		return
	}
	invalidatePostCaches(post.ID)

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// ListComments returns the comments of a post, oldest first.
func (p *PostAPIController) ListComments(ctx *gin.Context) {
	post, ok := p.find(ctx, 40402)
	if !ok {
		return
	}
	comments := []models.Comment{}
	if err := p.db.Where("post_id = ?", post.ID).Order("created_at ASC").Order("id ASC").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to list comments")
		return
	}
	utils.Success(ctx, gin.H{"items": comments})
}

// CreateComment adds a comment authored by the token holder.
func (p *PostAPIController) CreateComment(ctx *gin.Context) {
	post, ok := p.find(ctx, 40402)
	if !ok {
		return
	}

	var req requests.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	author, ok := middleware.Author(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	req.Author = author
	req.Normalize()
	if errs := requests.Validate(&req); errs != nil {
		utils.ValidationError(ctx, 42203, errs)
		return
	}

	comment := models.Comment{PostID: post.ID, Author: req.Author, Body: req.Body}
	if err := p.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to create comment")
		return
	}
	utils.CacheDelete(cachePostDetailKey(post.ID))

	utils.Created(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment by id.
func (p *PostAPIController) DeleteComment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid comment id")
		return
	}
	var cmt models.Comment
	if err := p.db.First(&cmt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load comment")
		return
	}
	if err := p.db.Delete(&cmt).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to delete comment")
		return
	}
	utils.CacheDelete(cachePostDetailKey(cmt.PostID))
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

func (p *PostAPIController) find(ctx *gin.Context, notFoundCode int) (*models.Post, bool) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, notFoundCode, "post not found")
		return nil, false
	}
	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, notFoundCode, "post not found")
			return nil, false
		}
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to load post")
		return nil, false
	}
	return &post, true
}
