package dto

type ChatRequest struct {
	SessionId *int64 `json:"session_id"`
	UserInput string `json:"user_input" validate:"required"`
	// RedirectTo is the caller's confirmation of an earlier redirect
	// proposal: create a fresh session of this intent and re-submit
	// OriginalQuestion into it.
	RedirectTo       string `json:"redirect_to,omitempty"`
	OriginalQuestion string `json:"original_question,omitempty"`
}

type ChatResponse struct {
	SessionId  int64  `json:"session_id"`
	AiResponse string `json:"ai_response"`
	// Set only on a redirect proposal; no state was written when these
	// fields are present.
	RedirectTo       string `json:"redirect_to,omitempty"`
	OriginalQuestion string `json:"original_question,omitempty"`
}

type ChatEditRequest struct {
	SessionId      int64  `json:"session_id" validate:"required"`
	CorrectedInput string `json:"corrected_input" validate:"required"`
}
