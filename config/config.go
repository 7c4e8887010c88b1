// Package config collects the environment the process runs with. main loads
// .env via godotenv before calling Load.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	PublicBaseURL string

	SMSGatewayURL  string
	RecognitionURL string
	RecognitionKey string
	ScanAPIKey     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	OwnerEmail   string

	CORSOrigins []string
}

func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "1414"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getenv("DB_NAME", "familypos"),
		JWTSecret:      getenv("JWT_SECRET", "dev_secret_change_me"),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:1414"),
		SMSGatewayURL:  os.Getenv("SMS_GATEWAY_URL"),
		RecognitionURL: os.Getenv("RECOGNITION_URL"),
		RecognitionKey: os.Getenv("RECOGNITION_KEY"),
		ScanAPIKey:     os.Getenv("SCAN_API_KEY"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		OwnerEmail:     os.Getenv("OWNER_EMAIL"),
	}
	cfg.SMTPPort, _ = strconv.Atoi(getenv("SMTP_PORT", "465"))
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = []string{origins}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
