package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config main tarafından bir kez yüklenir ve ihtiyaç duyan bileşenlere
// parametre olarak geçilir; paket globali tutulmaz.
type Config struct {
	Server  ServerConfig
	DB      DatabaseConfig
	JWT     JWTConfig
	Email   EmailConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port    string
	BaseURL string // şifre sıfırlama linkleri için frontend adresi
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

type StorageConfig struct {
	Bucket string
	Region string
}

func Load() *Config {
	godotenv.Load() // .env dosyasını yükle

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "3000"),
			BaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		DB: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "dev-only-secret"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "HostelHub <noreply@hostelhub.app>"),
		},
		Storage: StorageConfig{
			Bucket: getEnv("S3_BUCKET", "hostelhub-images"),
			Region: getEnv("S3_REGION", "eu-central-1"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
