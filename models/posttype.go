package models

import "time"

// PostType - a category tag on a post with display metadata
type PostType struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IconFilename string    `json:"icon_filename,omitempty"`
	IsActive     bool      `json:"is_active"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// CreatePostTypeRequest - represents post type creation request
type CreatePostTypeRequest struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IconFilename string `json:"icon_filename"`
	IsActive     *bool  `json:"is_active"`
	SortOrder    *int   `json:"sort_order"`
}

// UpdatePostTypeRequest - represents post type update request
// nil fields are left untouched
type UpdatePostTypeRequest struct {
	Slug         *string `json:"slug"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	IconFilename *string `json:"icon_filename"`
	IsActive     *bool   `json:"is_active"`
	SortOrder    *int    `json:"sort_order"`
}

// PostTypeUsage - usage statistics of a single post type
type PostTypeUsage struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	PostCount int    `json:"post_count"`
}
