package models

// ErrorResponse - error envelope of the admin API
// ProvidedType/ValidTypes are filled on post type validation failures only
type ErrorResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	Code         int      `json:"code,omitempty"`
	ProvidedType string   `json:"provided_type,omitempty"`
	ValidTypes   []string `json:"valid_types,omitempty"`
}

// MessageResponse - minimal success envelope
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PostTypeInfo - post type summary embedded in post responses
type PostTypeInfo struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	IconPath string `json:"icon_path"`
}

// CreatePostResponse - response of POST /admin/posts
type CreatePostResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	PostID   int64        `json:"post_id"`
	PostHash string       `json:"post_hash"`
	PostURL  string       `json:"post_url"`
	PostType PostTypeInfo `json:"post_type"`
}

// UpdatePostResponse - response of PUT /admin/posts/{hash}
type UpdatePostResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	PostID   int64        `json:"post_id"`
	PostHash string       `json:"post_hash"`
	PostType PostTypeInfo `json:"post_type"`
}

// MigrateResponse - response of POST /admin/update
type MigrateResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Applied []string `json:"applied,omitempty"`
}

// PostTypeResponse - response carrying a single post type
type PostTypeResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	PostType PostType `json:"post_type"`
	IconPath string   `json:"icon_path"`
}

// PostTypesResponse - response of GET /admin/post-types
type PostTypesResponse struct {
	Success    bool       `json:"success"`
	PostTypes  []PostType `json:"post_types"`
	TotalCount int        `json:"total_count"`
}

// PostTypeStatsResponse - response of GET /admin/post-types/stats
type PostTypeStatsResponse struct {
	Success    bool            `json:"success"`
	Stats      []PostTypeUsage `json:"post_type_stats"`
	TotalTypes int             `json:"total_types"`
}
