package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"docchat/internal/ai"
	appsvc "docchat/internal/app"
	"docchat/internal/bootstrap"
	"docchat/internal/chunker"
	"docchat/internal/index"
	"docchat/internal/loader"
	"docchat/internal/platform/rabbitmq"
	"docchat/internal/repository"
	"docchat/internal/session"
	"docchat/internal/transport/http/handler"
	"docchat/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.LoadHTMLGlob("web/templates/*.html")

	cfg := app.Config
	outboundTimeout := time.Duration(cfg.Outbound.TimeoutSeconds) * time.Second
	retryAttempts := uint(cfg.Outbound.RetryAttempts)
	retryDelay := time.Duration(cfg.Outbound.RetryDelayMilli) * time.Millisecond

	llmClient := ai.NewOpenAICompatibleClient(ai.Policy{
		Timeout:  outboundTimeout,
		Attempts: retryAttempts,
		Delay:    retryDelay,
	})
	embedding := ai.NewEmbeddingService(llmClient, ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	})
	chat := ai.NewChatService(llmClient, ai.ChatConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})

	resolver := loader.NewResolver(outboundTimeout, retryAttempts, retryDelay)
	docLoader := loader.NewLoader(resolver)
	ck := chunker.New(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)
	indexStore := index.NewDiskStore(cfg.Storage.IndexDir)
	builder := index.NewBuilder(docLoader, ck, embedding, indexStore, cfg.LLM.EmbeddingModel)

	docRepo := repository.NewDocumentRepository(app.MySQL)
	documents := appsvc.NewDocumentService(docRepo, cfg.Storage.UploadDir)

	publisher := rabbitmq.NewQAPublisher(app.MQConn, cfg.RabbitMQ.QAPersistQueue)
	qa := appsvc.NewQAService(builder, embedding, chat, publisher, cfg.Retrieval.TopK)

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	sessions := session.NewRedisStore(app.Redis, sessionTTL)

	homeHandler := handler.NewHomeHandler(documents, builder, qa, sessions, cfg.Retrieval.MaxQuestionLength)
	historyHandler := handler.NewHistoryHandler(docRepo, repository.NewQARecordRepository(app.MySQL))
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/healthz", healthHandler.Check)
	router.GET("/api/documents", historyHandler.ListDocuments)
	router.GET("/api/documents/:id/history", historyHandler.DocumentHistory)

	root := router.Group("/")
	root.Use(middleware.Session(cfg.Session.Secret, cfg.Session.CookieName, sessionTTL))
	root.GET("", homeHandler.Show)
	root.POST("", homeHandler.Submit)

	return router
}
