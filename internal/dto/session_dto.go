package dto

import "time"

type CreateSessionRequest struct {
	Name        string         `json:"name" validate:"required"`
	SessionType string         `json:"session_type"`
	Context     map[string]any `json:"context"`
}

type CreateSessionResponse struct {
	Id int64 `json:"id"`
}

type SessionSummaryResponse struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RenameSessionRequest struct {
	NewName string `json:"new_name" validate:"required,min=1"`
}

type FindSessionRequest struct {
	SessionType string         `json:"session_type" validate:"required"`
	Context     map[string]any `json:"context"`
}

type MessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type SessionHistoryResponse struct {
	SessionId int64             `json:"session_id"`
	Messages  []MessageResponse `json:"messages"`
}
