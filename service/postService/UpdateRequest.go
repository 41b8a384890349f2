package postService

// UpdateRequest - represents the full post state written by an update
// Partial-update semantics live in the handler, which merges the request
// with the current row before calling Update
type UpdateRequest struct {
	ID       int64
	Content  string
	PostType string
	Metadata map[string]interface{}
}
