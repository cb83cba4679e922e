package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/utils"
)

const maxPageSize = 100

// Pagination describes one page of a listing, for templates and JSON alike.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := config.Get().PerPage
	if pageSize <= 0 {
		pageSize = 10
	}
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= maxPageSize {
		pageSize = s
	}
	return page, pageSize
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// render writes an HTML page. Every page gets the flashed errors, old input
// and status message of the previous request, plus the app name.
func render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	errs := map[string]string{}
	old := map[string]string{}
	var message string
	consumed := utils.TakeFlash(ctx, utils.FlashErrors, &errs)
	consumed = utils.TakeFlash(ctx, utils.FlashOld, &old) || consumed
	consumed = utils.TakeFlash(ctx, utils.FlashStatus, &message) || consumed
	if consumed {
		utils.SaveSession(ctx)
	}

	data["errors"] = errs
	data["old"] = old
	data["status"] = message
	data["app_name"] = config.Get().AppName
	ctx.HTML(status, name, data)
}

// NotFound renders the HTML 404 page.
func NotFound(ctx *gin.Context) {
	render(ctx, http.StatusNotFound, "errors/404.html", gin.H{"title": "Not found"})
}

// redirectWithErrors flashes validation errors and old input, then sends the
// browser back to the form.
func redirectWithErrors(ctx *gin.Context, to string, errs map[string]string, old map[string]string) {
	utils.Flash(ctx, utils.FlashErrors, errs)
	utils.Flash(ctx, utils.FlashOld, old)
	utils.SaveSession(ctx)
	ctx.Redirect(http.StatusFound, to)
}

// redirectWithStatus flashes a success message and redirects.
func redirectWithStatus(ctx *gin.Context, to, message string) {
	utils.Flash(ctx, utils.FlashStatus, message)
	utils.SaveSession(ctx)
	ctx.Redirect(http.StatusFound, to)
}

func invalidatePostCaches(postID uint) {
	utils.InvalidateByPrefix(cachePostListPrefix)
	utils.CacheDelete(cachePostDetailKey(postID))
}
