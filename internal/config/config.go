package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	HTTPAddress    string
	AllowedOrigins []string

	JWTSecret string
	Issuer    string
	Audience  string

	// AccessTokenTTL is the fixed short lifetime of access tokens.
	// RefreshTokenTTL is the default refresh lifetime; the login policy
	// overrides it with the remember-me choice.
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderName   string
	SenderEmail  string
}

var envKeys = []string{
	"DATABASE_URL",
	"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
	"HTTP_ADDRESS", "ALLOWED_ORIGINS",
	"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE",
	"ACCESS_TOKEN_MINUTES", "REFRESH_TOKEN_DAYS",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
	"SENDER_NAME", "SENDER_EMAIL",
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range envKeys {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ACCESS_TOKEN_MINUTES", 60)
	viper.SetDefault("REFRESH_TOKEN_DAYS", 7)
	viper.SetDefault("SMTP_PORT", "587")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:     viper.GetString("DATABASE_URL"),
		RedisAddress:    viper.GetString("REDIS_ADDRESS"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		RedisDB:         viper.GetInt("REDIS_DB"),
		HTTPAddress:     viper.GetString("HTTP_ADDRESS"),
		AllowedOrigins:  viper.GetStringSlice("ALLOWED_ORIGINS"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		Issuer:          viper.GetString("JWT_ISSUER"),
		Audience:        viper.GetString("JWT_AUDIENCE"),
		AccessTokenTTL:  time.Duration(viper.GetInt("ACCESS_TOKEN_MINUTES")) * time.Minute,
		RefreshTokenTTL: time.Duration(viper.GetInt("REFRESH_TOKEN_DAYS")) * 24 * time.Hour,
		SMTPHost:        viper.GetString("SMTP_HOST"),
		SMTPPort:        viper.GetString("SMTP_PORT"),
		SMTPUsername:    viper.GetString("SMTP_USERNAME"),
		SMTPPassword:    viper.GetString("SMTP_PASSWORD"),
		SenderName:      viper.GetString("SENDER_NAME"),
		SenderEmail:     viper.GetString("SENDER_EMAIL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("JWT_ISSUER is not set")
	}
	if cfg.Audience == "" {
		return nil, fmt.Errorf("JWT_AUDIENCE is not set")
	}

	return cfg, nil
}
