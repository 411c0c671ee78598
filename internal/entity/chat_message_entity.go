package entity

import "time"

// ChatMessage rows are immutable once written. MessageOrder is assigned by
// the persistence layer and stays contiguous from 1 per session.
type ChatMessage struct {
	Id           int64
	SessionId    int64
	Role         string
	Content      string
	MessageOrder int
	CreatedAt    time.Time
}
