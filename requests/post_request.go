package requests

// PostRequest is the input of storing or updating a post.
type PostRequest struct {
	Title string `form:"title" json:"title" validate:"required,max=255"`
	Body  string `form:"body" json:"body" validate:"required"`
}

// Normalize trims the title and sanitizes both fields.
func (r *PostRequest) Normalize() {
	r.Title = clean(r.Title)
	r.Body = clean(r.Body)
}

// Old returns the submitted values for re-populating a form.
func (r *PostRequest) Old() map[string]string {
	return map[string]string{"title": r.Title, "body": r.Body}
}
