package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"nihongo-tutor-be/internal/repository/specification"
	"nihongo-tutor-be/internal/repository/unitofwork"
	"nihongo-tutor-be/pkg/embedding"
	"nihongo-tutor-be/pkg/llm"
)

// RetrievalAgent grounds its answers in the study-material corpus: embed
// the question, pull top-k chunks, hand them to the model as context.
// Used for the qna and learning intents.
type RetrievalAgent struct {
	name              string
	systemPrompt      string
	topK              int
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	logger            *log.Logger
}

func NewRetrievalAgent(
	name, systemPrompt string,
	topK int,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	logger *log.Logger,
) *RetrievalAgent {
	if topK <= 0 {
		topK = 3
	}
	return &RetrievalAgent{
		name:              name,
		systemPrompt:      systemPrompt,
		topK:              topK,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		logger:            logger,
	}
}

func (a *RetrievalAgent) Handle(ctx context.Context, request *Request) (*Response, error) {
	grounding := a.retrieveGrounding(ctx, request)

	systemPrompt := a.systemPrompt
	if grounding != "" {
		systemPrompt = systemPrompt + "\n\nReference material:\n" + grounding
	}

	messages := buildMessages(systemPrompt, request.History, request.Input)
	output, err := a.llmProvider.Chat(ctx, messages)
	if err != nil {
		a.logger.Printf("[AGENT:%s] chat failed for session %d: %v", a.name, request.SessionID, err)
		return nil, fmt.Errorf("agent %s failed: %w", a.name, err)
	}

	return &Response{Output: output}, nil
}

// retrieveGrounding degrades to an empty string on any failure; a missing
// corpus should never fail the whole turn.
func (a *RetrievalAgent) retrieveGrounding(ctx context.Context, request *Request) string {
	vector, err := a.embeddingProvider.Embed(ctx, request.Input)
	if err != nil {
		a.logger.Printf("[AGENT:%s] embedding failed, answering without grounding: %v", a.name, err)
		return ""
	}

	uow := a.uowFactory.NewUnitOfWork(ctx)

	filters := a.sessionFilters(ctx, uow, request.SessionID)
	chunks, err := uow.ContentChunkRepository().Search(ctx, vector, a.topK, filters)
	if err != nil {
		a.logger.Printf("[AGENT:%s] chunk search failed, answering without grounding: %v", a.name, err)
		return ""
	}

	var sb strings.Builder
	for i, chunk := range chunks {
		fmt.Fprintf(&sb, "[%d] (%s, %s) %s\n", i+1, chunk.MaterialId, chunk.Level, chunk.ChunkText)
	}
	return sb.String()
}

// sessionFilters narrows retrieval to the session's study material when
// the opaque context carries a material_id or level.
func (a *RetrievalAgent) sessionFilters(ctx context.Context, uow unitofwork.UnitOfWork, sessionId int64) map[string]string {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil || session == nil || session.Context == nil {
		return nil
	}
	filters := make(map[string]string)
	if v, ok := session.Context["material_id"].(string); ok && v != "" {
		filters["material_id"] = v
	}
	if v, ok := session.Context["level"].(string); ok && v != "" {
		filters["level"] = v
	}
	return filters
}
