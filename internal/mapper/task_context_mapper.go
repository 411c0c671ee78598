package mapper

import (
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/model"

	"gorm.io/datatypes"
)

type TaskContextMapper struct{}

func NewTaskContextMapper() *TaskContextMapper {
	return &TaskContextMapper{}
}

func (m *TaskContextMapper) ToEntity(t *model.TaskContext) *entity.TaskContext {
	if t == nil {
		return nil
	}
	return &entity.TaskContext{
		Id:        t.Id,
		SessionId: t.SessionId,
		TaskName:  t.TaskName,
		Status:    t.Status,
		Payload:   map[string]any(t.Payload),
		UpdatedAt: t.UpdatedAt,
	}
}

func (m *TaskContextMapper) ToModel(t *entity.TaskContext) *model.TaskContext {
	if t == nil {
		return nil
	}
	var payload datatypes.JSONMap
	if t.Payload != nil {
		payload = datatypes.JSONMap(t.Payload)
	}
	return &model.TaskContext{
		Id:        t.Id,
		SessionId: t.SessionId,
		TaskName:  t.TaskName,
		Status:    t.Status,
		Payload:   payload,
		UpdatedAt: t.UpdatedAt,
	}
}
