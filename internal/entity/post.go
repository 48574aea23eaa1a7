package entity

import "time"

const (
	MaxTitleLength   = 200
	MaxContentLength = 20000
)

type Post struct {
	ID          string
	Title       string
	Content     string
	CreatedAt   time.Time
	AuthorID    string
	AuthorEmail string
}
