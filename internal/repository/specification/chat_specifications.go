package specification

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID int64
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type BySessionType struct {
	SessionType string
}

func (s BySessionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_type = ?", s.SessionType)
}

type ByTaskName struct {
	TaskName string
}

func (s ByTaskName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("task_name = ?", s.TaskName)
}

// ContextContains matches sessions whose jsonb context contains every
// filter pair (postgres @> containment). Extra stored keys are ignored,
// which is what makes find-or-create idempotent.
type ContextContains struct {
	Filter map[string]any
}

func (s ContextContains) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Filter) == 0 {
		return db
	}
	raw, err := json.Marshal(s.Filter)
	if err != nil {
		// Unmarshalable filter can never match anything.
		return db.Where("1 = 0")
	}
	return db.Where("context @> ?", datatypes.JSON(raw))
}
