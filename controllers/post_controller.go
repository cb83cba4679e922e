package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/requests"
	"github.com/cppla/postboard/utils"
)

// PostController serves the HTML resource routes of posts.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// Index lists posts newest first, optionally filtered by ?search=.
func (p *PostController) Index(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), "")
	search := strings.TrimSpace(ctx.Query("search"))

	var posts []models.Post
	var total int64
	query := func() *gorm.DB {
		return p.db.Model(&models.Post{}).Scopes(models.Search(search))
	}
	if err := query().Count(&total).Error; err != nil {
		utils.Sugar.Errorf("count posts failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to list posts")
		return
	}
	if err := query().Order("created_at DESC").Order("id DESC").Scopes(models.Paginate(page, pageSize)).Find(&posts).Error; err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to list posts")
		return
	}

	render(ctx, http.StatusOK, "posts/index.html", gin.H{
		"title":      "Posts",
		"posts":      posts,
		"search":     search,
		"pagination": newPagination(page, pageSize, total),
	})
}

// Create shows the new post form.
func (p *PostController) Create(ctx *gin.Context) {
	render(ctx, http.StatusOK, "posts/create.html", gin.H{"title": "New post"})
}

// Store validates and saves a new post.
func (p *PostController) Store(ctx *gin.Context) {
	var req requests.PostRequest
	_ = ctx.ShouldBind(&req)
	req.Normalize()
	if errs := requests.Validate(&req); errs != nil {
		redirectWithErrors(ctx, "/posts/create", errs, req.Old())
		return
	}

	post := models.Post{Title: req.Title, Body: req.Body}
	if err := p.db.Create(&post).Error; err != nil {
		utils.Sugar.Errorf("create post failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to create post")
		return
	}
	invalidatePostCaches(post.ID)

	redirectWithStatus(ctx, "/posts", "Post created successfully.")
}

// Show renders a post with its comments.
func (p *PostController) Show(ctx *gin.Context) {
	post, ok := p.find(ctx, true)
	if !ok {
		return
	}
	render(ctx, http.StatusOK, "posts/show.html", gin.H{"title": post.Title, "post": post})
}

// Edit shows the edit form of a post.
func (p *PostController) Edit(ctx *gin.Context) {
	post, ok := p.find(ctx, false)
	if !ok {
		return
	}
	render(ctx, http.StatusOK, "posts/edit.html", gin.H{"title": "Edit post", "post": post})
}

// Update validates and saves changes to a post.
func (p *PostController) Update(ctx *gin.Context) {
	post, ok := p.find(ctx, false)
	if !ok {
		return
	}

	var req requests.PostRequest
	_ = ctx.ShouldBind(&req)
	req.Normalize()
	if errs := requests.Validate(&req); errs != nil {
		redirectWithErrors(ctx, fmt.Sprintf("/posts/%d/edit", post.ID), errs, req.Old())
		return
	}

	post.Title = req.Title
	post.Body = req.Body
	if err := p.db.Save(post).Error; err != nil {
		utils.Sugar.Errorf("update post %d failed: %v", post.ID, err)
		ctx.String(http.StatusInternalServerError, "failed to update post")
		return
	}
	invalidatePostCaches(post.ID)

	redirectWithStatus(ctx, fmt.Sprintf("/posts/%d", post.ID), "Post updated successfully.")
}

// Destroy deletes a post and its comments.
func (p *PostController) Destroy(ctx *gin.Context) {
	post, ok := p.find(ctx, false)
	if !ok {
		return
	}
	if err := models.DeletePost(p.db, post); err != nil {
		utils.Sugar.Errorf("delete post %d failed: %v", post.ID, err)
		ctx.String(http.StatusInternalServerError, "failed to delete post")
		return
	}
	invalidatePostCaches(post.ID)

	redirectWithStatus(ctx, "/posts", "Post deleted successfully.")
}

// find loads the post named by :id or renders the 404 page.
func (p *PostController) find(ctx *gin.Context, withComments bool) (*models.Post, bool) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		NotFound(ctx)
		return nil, false
	}

	q := p.db
	if withComments {
		q = q.Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		})
	}
	var post models.Post
	if err := q.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(ctx)
			return nil, false
		}
		utils.Sugar.Errorf("load post %d failed: %v", id, err)
		ctx.String(http.StatusInternalServerError, "failed to load post")
		return nil, false
	}
	return &post, true
}
