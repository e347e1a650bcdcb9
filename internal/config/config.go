package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Knowledge KnowledgeConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type KnowledgeConfig struct {
	DataDir      string
	TemplatesDir string
}

type AIConfig struct {
	GeminiAPIKey string
	ChatModel    string
	ReviewModel  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Knowledge: KnowledgeConfig{
			DataDir:      getEnv("KNOWLEDGE_DIR", "./data"),
			TemplatesDir: getEnv("TEMPLATES_DIR", "./templates"),
		},
		Ai: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			ChatModel:    getEnv("GEMINI_CHAT_MODEL", "gemini-2.5-flash"),
			ReviewModel:  getEnv("GEMINI_REVIEW_MODEL", "gemini-2.5-flash"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
