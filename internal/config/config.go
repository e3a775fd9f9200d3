package config

import "os"

type Config struct {
	Port              string
	DataDir           string
	UploadsDir        string
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
	CORSAllowOrigins  string
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8081"),
		DataDir:           getEnv("DATA_DIR", "data"),
		UploadsDir:        getEnv("UPLOADS_DIR", "public/uploads"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@dimaa.cafe"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		CORSAllowOrigins:  os.Getenv("CORS_ALLOW_ORIGINS"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
