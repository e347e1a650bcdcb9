package bootstrap

import (
	"log"

	"grant-advisor-be/internal/config"
	"grant-advisor-be/internal/controller"
	"grant-advisor-be/internal/pkg/logger"
	"grant-advisor-be/internal/repository/memory"
	"grant-advisor-be/internal/service"
	"grant-advisor-be/internal/websocket"
	"grant-advisor-be/pkg/chatbot"
	"grant-advisor-be/pkg/knowledge"
	"grant-advisor-be/pkg/llm"
)

type Container struct {
	// Controllers
	SessionController   controller.ISessionController
	KnowledgeController controller.IKnowledgeController
	ReviewController    controller.IReviewController

	// WebSocket chat streaming
	ChatStreamHandler *websocket.ChatStreamHandler
}

func NewContainer(knowledgeStore *knowledge.Store, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Generation backend
	if cfg.Ai.GeminiAPIKey == "" {
		log.Println("[WARN] GEMINI_API_KEY is not set; every generation call will fail until it is configured")
	}
	var llmProvider llm.LLMProvider = chatbot.NewGeminiChatbot(cfg.Ai.GeminiAPIKey, cfg.Ai.ChatModel)

	// 3. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	advisorService := service.NewAdvisorService(knowledgeStore, llmProvider, sessionRepo, sysLogger)
	reviewService := service.NewReviewService(knowledgeStore, llmProvider, sessionRepo, sysLogger, cfg.Ai.ReviewModel)

	// 5. WebSocket handler with its own domain log
	wsLogger := logger.NewIsolatedLogger("logs/chat_stream.log")
	chatStreamHandler := websocket.NewChatStreamHandler(advisorService, wsLogger)

	return &Container{
		SessionController:   controller.NewSessionController(advisorService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeStore, cfg.Knowledge.TemplatesDir),
		ReviewController:    controller.NewReviewController(reviewService),
		ChatStreamHandler:   chatStreamHandler,
	}
}
