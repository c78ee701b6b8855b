package main

import (
	"log"
	"os"

	"qanunyar/internal/api"
	"qanunyar/internal/audio"
	"qanunyar/internal/chat"
	"qanunyar/internal/config"
	"qanunyar/internal/transcription"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	normalizer := audio.NewNormalizer(cfg.ScratchDir, cfg.MaxAudioSeconds)
	transcriber := transcription.NewClient(cfg.OpenAIKey, cfg.STTModel, cfg.STTLanguage)
	engine := chat.NewEngine(cfg.OpenAIKey, cfg.ChatModel, cfg.SystemPrompt)

	r := gin.Default()

	// Add CORS middleware for the embedded chat widget
	r.Use(corsMiddleware())

	handlers := api.NewHandlers(cfg, normalizer, transcriber, engine)
	handlers.RegisterRoutes(r)

	log.Printf("QanunYar backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the chat widget
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Domain")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
