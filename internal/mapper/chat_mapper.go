package mapper

import (
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Name:        s.Name,
		SessionType: s.SessionType,
		Context:     map[string]any(s.Context),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	var ctx datatypes.JSONMap
	if s.Context != nil {
		ctx = datatypes.JSONMap(s.Context)
	}
	return &model.ChatSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Name:        s.Name,
		SessionType: s.SessionType,
		Context:     ctx,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:           msg.Id,
		SessionId:    msg.SessionId,
		Role:         msg.Role,
		Content:      msg.Content,
		MessageOrder: msg.MessageOrder,
		CreatedAt:    msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:           msg.Id,
		SessionId:    msg.SessionId,
		Role:         msg.Role,
		Content:      msg.Content,
		MessageOrder: msg.MessageOrder,
		CreatedAt:    msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
