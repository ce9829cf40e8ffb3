package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port       string
	DBDriver   string
	DBSource   string
	DBLogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	UploadDir      string
	UploadMaxBytes int64

	AdminEmail    string
	AdminPassword string
	AdminName     string

	// dashboard
	APIURL        string
	DashboardPort string
	SessionSecret string
	SessionSecure bool
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "3001")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SOURCE", "test.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "changeme")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("ADMIN_NAME", "Admin")
	v.SetDefault("API_URL", "http://localhost:3001")
	v.SetDefault("DASHBOARD_PORT", "3000")
	v.SetDefault("SESSION_SECRET", "changeme-session")

	return &Config{
		Port:           v.GetString("PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBSource:       v.GetString("DB_SOURCE"),
		DBLogLevel:     v.GetString("DB_LOG_LEVEL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		AdminName:      v.GetString("ADMIN_NAME"),
		APIURL:         strings.TrimRight(v.GetString("API_URL"), "/"),
		DashboardPort:  v.GetString("DASHBOARD_PORT"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionSecure:  v.GetBool("SESSION_SECURE"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
