package models

import "time"

// PostGroup - posts bucketed by calendar day for display
// Groups are derived on every request from a flat post list and never persisted
type PostGroup struct {
	Date  time.Time
	Posts []Post
}
