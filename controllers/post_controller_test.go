package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/models"
)

func TestPosts_CreateFlow(t *testing.T) {
	b := newBrowser(t)

	status, page := b.get("/posts")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, "No posts yet.")

	status, page = b.get("/posts/create")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, `action="/posts"`)

	code, location := b.submit("/posts", url.Values{"title": {"First post"}, "body": {"Hello gophers"}})
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/posts", location)

	_, page = b.get(location)
	assert.Contains(t, page, "Post created successfully.")
	assert.Contains(t, page, "First post")

	_, page = b.get("/posts")
	assert.NotContains(t, page, "Post created successfully.", "flash is shown only once")

	var post models.Post
	require.NoError(t, b.db.First(&post).Error)
	assert.Equal(t, "First post", post.Title)
	assert.Equal(t, "Hello gophers", post.Body)
}

func TestPosts_StoreValidationFlashesErrors(t *testing.T) {
	b := newBrowser(t)

	code, location := b.submit("/posts", url.Values{"title": {"Keep me"}, "body": {"   "}})
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/posts/create", location)

	_, page := b.get(location)
	assert.Contains(t, page, "The body field is required.")
	assert.NotContains(t, page, "The title field is required.")
	assert.Contains(t, page, `value="Keep me"`)

	_, page = b.get("/posts/create")
	assert.NotContains(t, page, "The body field is required.")

	var count int64
	require.NoError(t, b.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPosts_StoreSanitizesInput(t *testing.T) {
	b := newBrowser(t)

	code, _ := b.submit("/posts", url.Values{"title": {" <b>Bold</b> "}, "body": {"<script>x()</script>safe & sound"}})
	require.Equal(t, http.StatusFound, code)

	var post models.Post
	require.NoError(t, b.db.First(&post).Error)
	assert.Equal(t, "Bold", post.Title)
	assert.Equal(t, "safe & sound", post.Body)
}

func TestPosts_ShowAndEdit(t *testing.T) {
	b := newBrowser(t)
	post := models.Post{Title: "Readable", Body: "line one\nline two"}
	require.NoError(t, b.db.Create(&post).Error)
	require.NoError(t, b.db.Create(&models.Comment{PostID: post.ID, Author: "ann", Body: "first!"}).Error)

	status, page := b.get(fmt.Sprintf("/posts/%d", post.ID))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, "Readable")
	assert.Contains(t, page, "line one\nline two")
	assert.Contains(t, page, "Comments (1)")
	assert.Contains(t, page, "first!")

	status, page = b.get(fmt.Sprintf("/posts/%d/edit", post.ID))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, `value="Readable"`)
	assert.Contains(t, page, `name="_method" value="PUT"`)
}

func TestPosts_NotFound(t *testing.T) {
	b := newBrowser(t)

	for _, path := range []string{"/posts/999", "/posts/abc", "/posts/999/edit", "/nowhere"} {
		t.Run(path, func(t *testing.T) {
			status, page := b.get(path)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Contains(t, page, "Not found")
		})
	}

	code, _ := b.submit("/posts/999", url.Values{"_method": {"DELETE"}})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPosts_UpdateWithMethodSpoofing(t *testing.T) {
	b := newBrowser(t)
	post := models.Post{Title: "Old title", Body: "old body"}
	require.NoError(t, b.db.Create(&post).Error)
	postURL := fmt.Sprintf("/posts/%d", post.ID)

	code, location := b.submit(postURL, url.Values{"_method": {"PUT"}, "title": {"New title"}, "body": {"new body"}})
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, postURL, location)

	_, page := b.get(location)
	assert.Contains(t, page, "Post updated successfully.")
	assert.Contains(t, page, "New title")

	var reloaded models.Post
	require.NoError(t, b.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "New title", reloaded.Title)
	assert.Equal(t, "new body", reloaded.Body)
}

func TestPosts_UpdateValidationKeepsOldInput(t *testing.T) {
	b := newBrowser(t)
	post := models.Post{Title: "Stable", Body: "unchanged"}
	require.NoError(t, b.db.Create(&post).Error)

	code, location := b.submit(fmt.Sprintf("/posts/%d", post.ID), url.Values{
		"_method": {"PATCH"},
		"title":   {strings.Repeat("t", 256)},
		"body":    {"edited"},
	})
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/edit", post.ID), location)

	_, page := b.get(location)
	assert.Contains(t, page, "The title field must not be greater than 255 characters.")
	assert.Contains(t, page, ">edited</textarea>")

	var reloaded models.Post
	require.NoError(t, b.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "Stable", reloaded.Title)
}

func TestPosts_Destroy(t *testing.T) {
	b := newBrowser(t)
	post := models.Post{Title: "Doomed", Body: "bye"}
	require.NoError(t, b.db.Create(&post).Error)
	require.NoError(t, b.db.Create(&models.Comment{PostID: post.ID, Author: "ann", Body: "rip"}).Error)

	code, location := b.submit(fmt.Sprintf("/posts/%d", post.ID), url.Values{"_method": {"DELETE"}})
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/posts", location)

	_, page := b.get(location)
	assert.Contains(t, page, "Post deleted successfully.")

	var posts, comments int64
	require.NoError(t, b.db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, b.db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
}

func TestPosts_IndexPaginatesAndSearches(t *testing.T) {
	b := newBrowser(t, func(c *config.AppConfig) { c.PerPage = 2 })
	for _, title := range []string{"Alpha", "Bravo", "Charlie"} {
		require.NoError(t, b.db.Create(&models.Post{Title: title, Body: "body of " + title}).Error)
	}

	_, page := b.get("/posts")
	assert.Contains(t, page, "Charlie")
	assert.Contains(t, page, "Bravo")
	assert.NotContains(t, page, "Alpha")
	assert.Contains(t, page, "Page 1 of 2")

	_, page = b.get("/posts?page=2")
	assert.Contains(t, page, "Alpha")
	assert.NotContains(t, page, "Charlie")

	_, page = b.get("/posts?search=brav")
	assert.Contains(t, page, "Bravo")
	assert.NotContains(t, page, "Charlie")
	assert.NotContains(t, page, "Page 1 of")
	assert.NotContains(t, page, "No posts")

	_, page = b.get("/posts?search=zulu")
	assert.Contains(t, page, `No posts match "zulu".`)
	assert.NotContains(t, page, "No posts yet.")

	b.db.Where("1 = 1").Delete(&models.Post{})
	_, page = b.get("/posts")
	assert.Contains(t, page, "No posts yet.")
}

func TestPosts_UnchangedResubmitKeepsContent(t *testing.T) {
	b := newBrowser(t)

	code, _ := b.submit("/posts", url.Values{"title": {"Escapes"}, "body": {"&lt;i&gt;hi&lt;/i&gt; and a < b"}})
	require.Equal(t, http.StatusFound, code)

	var stored models.Post
	require.NoError(t, b.db.Where("title = ?", "Escapes").First(&stored).Error)
	assert.Equal(t, "hi and a < b", stored.Body)

	postURL := fmt.Sprintf("/posts/%d", stored.ID)
	code, location := b.submit(postURL, url.Values{"_method": {"PUT"}, "title": {stored.Title}, "body": {stored.Body}})
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, postURL, location)

	var reloaded models.Post
	require.NoError(t, b.db.First(&reloaded, stored.ID).Error)
	assert.Equal(t, stored.Title, reloaded.Title)
	assert.Equal(t, stored.Body, reloaded.Body)
}
