package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds service-level configuration, loaded from the environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	QuestionCount int // default number of questionnaire turns per session
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "riskscope"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		QuestionCount: getEnvInt("QUESTION_COUNT", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using default %d", key, val, defaultVal)
	}
	return defaultVal
}
