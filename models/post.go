package models

import "time"

// Post is a single article on the board.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}

// Excerpt returns at most n runes of the body, suffixed with an ellipsis when cut.
func (p *Post) Excerpt(n int) string {
	rs := []rune(p.Body)
	if n <= 0 || len(rs) <= n {
		return p.Body
	}
	return string(rs[:n]) + "…"
}
