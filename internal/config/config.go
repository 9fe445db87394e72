package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Init() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load()
	}
	InitLogger()
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// QuizRetryInterval returns the quiz retake cooldown in seconds.
func QuizRetryInterval() int {
	raw := GetEnv("RETRY_INTERVAL_SECONDS", "86400")
	interval, err := strconv.Atoi(raw)
	if err != nil || interval <= 0 {
		panic("RETRY_INTERVAL_SECONDS must be a positive integer")
	}
	return interval
}
