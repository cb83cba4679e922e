package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/requests"
	"github.com/cppla/postboard/utils"
)

// CommentController serves the comment routes nested under a post.
type CommentController struct {
	db    *gorm.DB
	posts *PostController
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db, posts: NewPostController(db)}
}

// Store adds a comment to the post named by :id.
func (c *CommentController) Store(ctx *gin.Context) {
	post, ok := c.posts.find(ctx, false)
	if !ok {
		return
	}
	back := fmt.Sprintf("/posts/%d", post.ID)

	var req requests.CommentRequest
	_ = ctx.ShouldBind(&req)
	req.Normalize()
	if errs := requests.Validate(&req); errs != nil {
		redirectWithErrors(ctx, back, errs, req.Old())
		return
	}

	comment := models.Comment{PostID: post.ID, Author: req.Author, Body: req.Body}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Sugar.Errorf("create comment on post %d failed: %v", post.ID, err)
		ctx.String(http.StatusInternalServerError, "failed to create comment")
		return
	}
	utils.CacheDelete(cachePostDetailKey(post.ID))

	redirectWithStatus(ctx, back, "Comment added.")
}

// Destroy removes :comment when it belongs to the post :id.
func (c *CommentController) Destroy(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		NotFound(ctx)
		return
	}
	commentID, ok := parseID(ctx.Param("comment"))
	if !ok {
		NotFound(ctx)
		return
	}

	var comment models.Comment
	if err := c.db.Where("post_id = ?", postID).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load comment %d failed: %v", commentID, err)
		ctx.String(http.StatusInternalServerError, "failed to load comment")
		return
	}
	if err := c.db.Delete(&comment).Error; err != nil {
		utils.Sugar.Errorf("delete comment %d failed: %v", commentID, err)
		ctx.String(http.StatusInternalServerError, "failed to delete comment")
		return
	}
	utils.CacheDelete(cachePostDetailKey(postID))

	redirectWithStatus(ctx, fmt.Sprintf("/posts/%d", postID), "Comment removed.")
}
