package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/repository/unitofwork"
	"nihongo-tutor-be/pkg/llm"
)

const (
	plannerTaskName = "planner_preferences"

	// The model closes the collection flow by emitting this marker once
	// it has level, goal and hobby and produced the final plan.
	planCompleteMarker = "[PLAN_COMPLETE]"

	TaskStatusCollecting = "collecting"
)

// PlannerAgent runs the multi-turn preference-collection flow. Partial
// progress is upserted into task_contexts on every turn and cleared once
// the plan is delivered, so an interrupted flow can resume later.
type PlannerAgent struct {
	systemPrompt string
	llmProvider  llm.LLMProvider
	uowFactory   unitofwork.RepositoryFactory
	logger       *log.Logger
}

func NewPlannerAgent(systemPrompt string, llmProvider llm.LLMProvider, uowFactory unitofwork.RepositoryFactory, logger *log.Logger) *PlannerAgent {
	return &PlannerAgent{
		systemPrompt: systemPrompt,
		llmProvider:  llmProvider,
		uowFactory:   uowFactory,
		logger:       logger,
	}
}

func (a *PlannerAgent) Handle(ctx context.Context, request *Request) (*Response, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	systemPrompt := a.systemPrompt
	taskContext, err := uow.TaskContextRepository().Find(ctx, request.SessionID, plannerTaskName)
	if err != nil {
		a.logger.Printf("[AGENT:planner] task context load failed for session %d: %v", request.SessionID, err)
	} else if taskContext != nil {
		systemPrompt = fmt.Sprintf("%s\n\nCollected so far: %v", systemPrompt, taskContext.Payload)
	}

	messages := buildMessages(systemPrompt, request.History, request.Input)
	output, err := a.llmProvider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("agent planner failed: %w", err)
	}

	if strings.Contains(output, planCompleteMarker) {
		if err := uow.TaskContextRepository().Clear(ctx, request.SessionID, plannerTaskName); err != nil {
			a.logger.Printf("[AGENT:planner] failed to clear task context for session %d: %v", request.SessionID, err)
		}
		output = strings.TrimSpace(strings.ReplaceAll(output, planCompleteMarker, ""))
		return &Response{Output: output}, nil
	}

	progress := a.accumulate(request.SessionID, taskContext, request.Input)
	if err := uow.TaskContextRepository().Upsert(ctx, progress); err != nil {
		// Progress loss degrades the next turn but must not eat this one.
		a.logger.Printf("[AGENT:planner] failed to save task context for session %d: %v", request.SessionID, err)
	}

	return &Response{Output: output}, nil
}

func (a *PlannerAgent) accumulate(sessionId int64, previous *entity.TaskContext, input string) *entity.TaskContext {
	var answers []any
	if previous != nil {
		if existing, ok := previous.Payload["answers"].([]any); ok {
			answers = existing
		}
	}
	answers = append(answers, input)

	return &entity.TaskContext{
		SessionId: sessionId,
		TaskName:  plannerTaskName,
		Status:    TaskStatusCollecting,
		Payload:   map[string]any{"answers": answers},
	}
}
