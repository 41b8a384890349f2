package models

import "time"

// Post - represents a single blog post
// @ID - ID created by database
// @Content - markdown content
// @Date - creation time. Posts dated in the future are scheduled and hidden from the public site
// @Type - post type slug (e.g. "note", "link", "photo")
// @Metadata - optional open key-value metadata
type Post struct {
	ID       int64                  `json:"id"`
	Content  string                 `json:"content"`
	Date     time.Time              `json:"date"`
	Type     string                 `json:"type"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Year - returns the calendar year of the post's creation time
func (p *Post) Year() int {
	return p.Date.Year()
}

// Month - returns the calendar month of the post's creation time
func (p *Post) Month() int {
	return int(p.Date.Month())
}

// CreatePostRequest - represents post creation request
// PostType is optional and defaults to "note"
type CreatePostRequest struct {
	Content  string                 `json:"content"`
	PostType string                 `json:"post_type"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// UpdatePostRequest - represents post update request
// nil fields are left untouched
type UpdatePostRequest struct {
	Content  *string                `json:"content"`
	PostType *string                `json:"post_type"`
	Metadata map[string]interface{} `json:"metadata"`
}
