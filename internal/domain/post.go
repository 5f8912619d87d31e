package domain

import "time"

// Post is a piece of content written by one Person.
// Tags is the in-memory tag association set; PostRepo.Save persists it to the
// post_tags join table. The set has no duplicates and no meaningful order.
type Post struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"person_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
