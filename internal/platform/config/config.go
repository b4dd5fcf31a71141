package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CertificateQueueName      string
	CertificateLockKey        string
	CertificateLockTTLSeconds int
	CertificateTemplatePath   string
	CertificateFontPath       string
	CertificateUnlockAt       time.Time

	MediaRoot          string
	PlanMaxUploadBytes int64

	DefaultTeamMaxSize int
	ProblemTeamLimit   int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:                   getEnv("API_PORT", "8080"),
		JWTKey:                    []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:                    time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:                    getEnv("DB_HOST", "localhost"),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "user"),
		DBPassword:                getEnv("DB_PASSWORD", "password"),
		DBName:                    getEnv("DB_NAME", "hackfest_db"),
		DBSslMode:                 getEnv("DB_SSLMODE", "disable"),
		RedisAddr:                 getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:             getEnv("REDIS_PASSWORD", ""),
		RedisDB:                   getEnvAsInt("REDIS_DB", 0),
		CertificateQueueName:      getEnv("CERTIFICATE_QUEUE_NAME", "certificate_jobs_queue"),
		CertificateLockKey:        getEnv("CERTIFICATE_LOCK_KEY", "certificate_job_lock"),
		CertificateLockTTLSeconds: getEnvAsInt("CERTIFICATE_LOCK_TTL_SECONDS", 300),
		CertificateTemplatePath:   getEnv("CERTIFICATE_TEMPLATE_PATH", "static/images/certificate_template.png"),
		CertificateFontPath:       getEnv("CERTIFICATE_FONT_PATH", "static/fonts/Inter-Bold.ttf"),
		CertificateUnlockAt:       getEnvAsTime("CERTIFICATE_UNLOCK_AT"),
		MediaRoot:                 getEnv("MEDIA_ROOT", "media"),
		PlanMaxUploadBytes:        int64(getEnvAsInt("PLAN_MAX_UPLOAD_BYTES", 10<<20)),
		DefaultTeamMaxSize:        getEnvAsInt("DEFAULT_TEAM_MAX_SIZE", 6),
		ProblemTeamLimit:          getEnvAsInt("PROBLEM_TEAM_LIMIT", 3),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsTime parses an RFC3339 timestamp. The zero time means the gate is
// open immediately.
func getEnvAsTime(key string) time.Time {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Time{}
	}
	value, err := time.Parse(time.RFC3339, valueStr)
	if err != nil {
		log.Printf("WARN: invalid %s value %q, ignoring: %v", key, valueStr, err)
		return time.Time{}
	}
	return value
}
