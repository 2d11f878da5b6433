package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	MongoURL       string
	MongoDB        string
	CookieSecret   string
	AllowedOrigins string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	// Operator copy of every order confirmation.
	AdminEmail string

	AWSRegion    string
	AWSKeyID     string
	AWSSecretKey string
	AWSBucket    string

	GoogleClientID string

	LogFile string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		log.Printf("[config] bad SMTP_PORT, falling back to 587: %v", err)
		smtpPort = 587
	}

	cfg := Config{
		Port:           getenv("PORT", "3000"),
		MongoURL:       getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "shoecrew"),
		CookieSecret:   os.Getenv("COOKIE_SECRET"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174"),
		SMTPHost:       getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       smtpPort,
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		MailFrom:       getenv("MAIL_FROM", "ShoeCrew <no-reply@shoecrew.test>"),
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@shoecrew.com"),
		AWSRegion:      getenv("AWS_REGION", "us-east-1"),
		AWSKeyID:       os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSBucket:      os.Getenv("AWS_BUCKET"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	log.Printf("[config] PORT=%s MONGO_DB=%s AWS_BUCKET=%s SMTP_HOST=%s ORIGINS=%s",
		cfg.Port, cfg.MongoDB, cfg.AWSBucket, cfg.SMTPHost, cfg.AllowedOrigins)
	return cfg
}
