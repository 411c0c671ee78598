package entity

import "time"

// TaskContext is cross-turn scratch state for a long-running collection
// flow (one row per session + task name, upserted every turn).
type TaskContext struct {
	Id        int64
	SessionId int64
	TaskName  string
	Status    string
	Payload   map[string]any
	UpdatedAt time.Time
}
