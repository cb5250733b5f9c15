package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          int
	DataPath      string
	DBPath        string
	GlossaryPath  string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string

	ChunkSize    int
	BatchSize    int
	RequestDelay time.Duration
	CallTimeout  time.Duration
	GlossaryTTL  time.Duration

	GoogleEndpoint string
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:           port,
		DataPath:       dataPath,
		DBPath:         getEnv("DB_PATH", dataPath+"/translator.db"),
		GlossaryPath:   getEnv("GLOSSARY_PATH", dataPath+"/glossaries"),
		JWTSecret:      jwtSecret,
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:    corsOrigins,
		ChunkSize:      getEnvInt("CHUNK_SIZE", 4500),
		BatchSize:      getEnvInt("BATCH_SIZE", 20),
		RequestDelay:   time.Duration(getEnvInt("REQUEST_DELAY_MS", 100)) * time.Millisecond,
		CallTimeout:    time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 30)) * time.Second,
		GlossaryTTL:    time.Duration(getEnvInt("GLOSSARY_TTL_SECONDS", 300)) * time.Second,
		GoogleEndpoint: getEnv("GOOGLE_TRANSLATE_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
