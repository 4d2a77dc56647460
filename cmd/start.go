/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/handler"
	"github.com/tieubaoca/docqa-be/middleware"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document Q&A server",
	Long:  `Starts the HTTP server exposing the ask, search and ingestion API`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		var aiService service.AIService
		var embedder handler.EmbeddingDiagnosticsService
		switch cfg.AIProvider {
		case "gemini":
			geminiService, err := service.NewGeminiService(cfg.GeminiAPIKeys, cfg.Model, cfg.EmbeddingModel)
			if err != nil {
				log.Fatalf("Failed to create Gemini service: %v", err)
			}
			aiService = geminiService
			embedder = geminiService
		default:
			openaiService := service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.EmbeddingModel)
			aiService = openaiService
			embedder = openaiService
		}

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		//init repo
		queryLogRepo := repository.NewQueryLogRepo(mongoDb)

		//init services
		sourceService := service.NewSourceService(weaviateDb, cfg.FallbackSources)
		retriever := service.NewRetriever(weaviateDb, sourceService)
		ingestService := service.NewIngestService(weaviateDb, cfg.UploadDir, cfg.Chunking)
		answerService := service.NewAnswerService(retriever, aiService, queryLogRepo, cfg.Retrieval.ContextCharLimit)
		wsService := service.NewWebSocketService(answerService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		askHandler := handler.NewAskHandler(answerService)
		searchHandler := handler.NewSearchHandler(retriever, sourceService)
		ingestHandler := handler.NewIngestHandler(ingestService)
		historyHandler := handler.NewHistoryHandler(queryLogRepo)
		loginHandler := handler.NewLoginHandler(cfg.AdminUsername, cfg.AdminPassword)
		diagnosticsHandler := handler.NewDiagnosticsHandler(embedder)
		documentHandler := handler.NewDocumentHandler(cfg.UploadDir)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/ask", askHandler.HandleAsk)
			apiV1.POST("/documents/search", searchHandler.HandleSearch)
			apiV1.GET("/documents/sources", searchHandler.HandleSources)
			apiV1.GET("/history", historyHandler.HandleHistory)
			apiV1.GET("/files", documentHandler.ServeDocument)
			apiV1.GET("/ws/ask", func(c *gin.Context) {
				wsService.HandleAsk(c.Writer, c.Request)
			})
		}

		// Admin routes - require admin authentication
		adminRoutes := router.Group("/admin/api/v1")
		adminRoutes.POST("/login", loginHandler.HandleLogin)
		protected := adminRoutes.Group("/")
		protected.Use(middleware.AdminAuthMiddleware)
		{
			protected.POST("/documents/text", ingestHandler.HandleIngestText)
			protected.POST("/documents/upload", ingestHandler.HandleUpload)
			protected.GET("/diagnostics/embedding", diagnosticsHandler.HandleEmbedding)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
