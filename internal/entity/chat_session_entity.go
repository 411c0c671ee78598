package entity

import "time"

type ChatSession struct {
	Id          int64
	UserId      string
	Name        string
	SessionType string
	// Context is an opaque handler-specific payload (e.g. {"material_id": "M101"}).
	// This layer only stores and subset-matches it.
	Context   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
