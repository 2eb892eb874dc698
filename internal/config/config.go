package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	KakaoClientID     string
	KakaoClientSecret string
	KakaoRedirectURL  string

	NaverClientID     string
	NaverClientSecret string
	NaverRedirectURL  string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	GuardianBaseURL string
	GuardianAPIKey  string
	GuardianSection string

	HuggingFaceToken string

	ElasticsearchURL string

	CookieSecure bool
}

func Load() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		AppPort: getenv("APP_PORT", "8080"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		KakaoClientID:     os.Getenv("KAKAO_CLIENT_ID"),
		KakaoClientSecret: os.Getenv("KAKAO_CLIENT_SECRET"),
		KakaoRedirectURL:  os.Getenv("KAKAO_REDIRECT_URL"),

		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		NaverRedirectURL:  os.Getenv("NAVER_REDIRECT_URL"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		GuardianBaseURL: getenv("GUARDIAN_BASE_URL", "https://content.guardianapis.com"),
		GuardianAPIKey:  os.Getenv("GUARDIAN_API_KEY"),
		GuardianSection: getenv("GUARDIAN_SECTION", "world"),

		HuggingFaceToken: os.Getenv("HUGGINGFACE_API_TOKEN"),

		ElasticsearchURL: getenv("ELASTICSEARCH_URL", "http://localhost:9200"),

		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
