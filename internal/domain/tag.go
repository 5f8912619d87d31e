package domain

import "time"

// Tag is a label shared across many posts via the post_tags join table.
// Tags are global — they are created independently of any post, and deleting
// a tag never deletes a post (only the association rows).
type Tag struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
