package bootstrap

import (
	"log"
	"os"

	"nihongo-tutor-be/internal/config"
	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/internal/controller"
	"nihongo-tutor-be/internal/pkg/logger"
	"nihongo-tutor-be/internal/repository/unitofwork"
	"nihongo-tutor-be/internal/service"
	"nihongo-tutor-be/pkg/agent"
	"nihongo-tutor-be/pkg/embedding"
	"nihongo-tutor-be/pkg/intent"
	"nihongo-tutor-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

const (
	qnaSystemPrompt = `You are a helpful Japanese-learning assistant. Answer the
student's questions about Japanese language and culture clearly and concisely.`

	learningSystemPrompt = `You are a Japanese tutor walking a student through
study material. Explain grammar points with examples and keep the level
appropriate to the student.`

	reviewerSystemPrompt = `You are a strict but encouraging Japanese teacher.
Review the student's submitted work, point out mistakes with corrections,
and grade it briefly.`

	speakingSystemPrompt = `You are a Japanese conversation partner. Keep the
dialogue going in simple Japanese, gently correcting the student when they
slip, with short notes in English.`

	plannerSystemPrompt = `You are a Japanese study planner. Collect the student's
current level, goal and available time, one question at a time. Once you
have all three, produce a weekly study plan and end your reply with
[PLAN_COMPLETE].`
)

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stdLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)

	classifier := intent.NewClassifier(llmProvider, stdLogger)

	// 4. Agent Registry
	registry := agent.NewRegistry()
	registry.Register(constant.IntentQna,
		agent.NewRetrievalAgent("qna", qnaSystemPrompt, 3, llmProvider, embeddingProvider, uowFactory, stdLogger))
	registry.Register(constant.IntentLearning,
		agent.NewRetrievalAgent("learning", learningSystemPrompt, 3, llmProvider, embeddingProvider, uowFactory, stdLogger))
	registry.Register(constant.IntentReviewer,
		agent.NewPromptAgent("reviewer", reviewerSystemPrompt, llmProvider, stdLogger))
	registry.Register(constant.IntentSpeaking,
		agent.NewPromptAgent("speaking", speakingSystemPrompt, llmProvider, stdLogger))
	registry.Register(constant.IntentPlanner,
		agent.NewPlannerAgent(plannerSystemPrompt, llmProvider, uowFactory, stdLogger))

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, sysLogger)
	sessionService := service.NewSessionService(uowFactory, sysLogger)
	chatService := service.NewChatService(sessionService, classifier, registry, publisherService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, sessionService, llmProvider, sysLogger)

	// 6. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		ChatController:    controller.NewChatController(chatService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
