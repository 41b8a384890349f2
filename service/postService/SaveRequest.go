package postService

// SaveRequest - represents data of a new post
type SaveRequest struct {
	Content  string
	PostType string
	Metadata map[string]interface{}
}
