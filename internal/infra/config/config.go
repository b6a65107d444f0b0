package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and never mutated afterwards. Required
// keys fail the process closed.
type Config struct {
	HTTPAddress string

	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	PasswordPepper string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	UploadTimeout time.Duration
	UserCacheTTL  time.Duration

	AllowedOrigins []string

	// LoginRevealsAccount switches login failure for an unknown email from the
	// uniform "invalid credentials" to a distinct "not found". Off by default:
	// the distinct message leaks account existence.
	LoginRevealsAccount bool
}

var keys = []string{
	"HTTP_ADDRESS",
	"DATABASE_URL",
	"REDIS_ADDRESS",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"JWT_SECRET",
	"JWT_ISSUER",
	"TOKEN_TTL",
	"PASSWORD_PEPPER",
	"S3_ENDPOINT",
	"S3_REGION",
	"S3_BUCKET",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
	"S3_PUBLIC_URL",
	"UPLOAD_TIMEOUT",
	"USER_CACHE_TTL",
	"ALLOWED_ORIGINS",
	"LOGIN_REVEALS_ACCOUNT",
}

var required = []string{
	"DATABASE_URL",
	"REDIS_ADDRESS",
	"JWT_SECRET",
	"S3_BUCKET",
}

func Load() (*Config, error) {
	viper.AutomaticEnv()
	for _, k := range keys {
		if err := viper.BindEnv(k); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("JWT_ISSUER", "lumenchat-auth")
	viper.SetDefault("TOKEN_TTL", "168h")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("UPLOAD_TIMEOUT", "30s")
	viper.SetDefault("USER_CACHE_TTL", "5m")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	for _, k := range required {
		if viper.GetString(k) == "" {
			return nil, fmt.Errorf("required configuration %s is not set", k)
		}
	}

	cfg := &Config{
		HTTPAddress:         viper.GetString("HTTP_ADDRESS"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisAddress:        viper.GetString("REDIS_ADDRESS"),
		RedisPassword:       viper.GetString("REDIS_PASSWORD"),
		RedisDB:             viper.GetInt("REDIS_DB"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		JWTIssuer:           viper.GetString("JWT_ISSUER"),
		TokenTTL:            viper.GetDuration("TOKEN_TTL"),
		PasswordPepper:      viper.GetString("PASSWORD_PEPPER"),
		S3Endpoint:          viper.GetString("S3_ENDPOINT"),
		S3Region:            viper.GetString("S3_REGION"),
		S3Bucket:            viper.GetString("S3_BUCKET"),
		S3AccessKey:         viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:         viper.GetString("S3_SECRET_KEY"),
		S3PublicURL:         viper.GetString("S3_PUBLIC_URL"),
		UploadTimeout:       viper.GetDuration("UPLOAD_TIMEOUT"),
		UserCacheTTL:        viper.GetDuration("USER_CACHE_TTL"),
		AllowedOrigins:      viper.GetStringSlice("ALLOWED_ORIGINS"),
		LoginRevealsAccount: viper.GetBool("LOGIN_REVEALS_ACCOUNT"),
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %v", cfg.TokenTTL)
	}

	return cfg, nil
}
