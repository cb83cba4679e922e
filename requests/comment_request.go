package requests

// CommentRequest is the input of a new comment. Author is filled from the API
// token for JSON requests.
type CommentRequest struct {
	Author string `form:"author" json:"author" validate:"required,max=64"`
	Body   string `form:"body" json:"body" validate:"required,max=1000"`
}

// Normalize trims and sanitizes the fields.
func (r *CommentRequest) Normalize() {
	r.Author = clean(r.Author)
	r.Body = clean(r.Body)
}

// Old returns the submitted values for re-populating a form.
func (r *CommentRequest) Old() map[string]string {
	return map[string]string{"author": r.Author, "body": r.Body}
}
