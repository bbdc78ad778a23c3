package models

import "time"

// PublicPageSize is the number of public entries on one profile page.
const PublicPageSize = 10

// PublicEntry is an entry the owner chose to publish in plaintext.
type PublicEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfile is one page of a user's public diary.
type PublicProfile struct {
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Entries  []PublicEntry `json:"entries"`
	Page     int           `json:"page"`
	HasMore  bool          `json:"has_more"`
}
