package config

import (
    "log"
    "os"
    "strconv"
    "time"

    "github.com/joho/godotenv"

    "pawmart-storefront-api/cart"
    "pawmart-storefront-api/database"
)

type Config struct {
    Database database.DatabaseConfig
    Server   ServerConfig
    Redis    RedisConfig
    Session  SessionConfig
    JWT      JWTConfig
    SMTP     SMTPConfig
    Delivery cart.Tariff
}

type ServerConfig struct {
    Port string
}

type RedisConfig struct {
    URL               string
    CartTTL           time.Duration
    WorkerConcurrency int
}

type SessionConfig struct {
    Secret string
    Domain string
    MaxAge int
}

type JWTConfig struct {
    Secret string
    Issuer string
}

type SMTPConfig struct {
    Host     string
    Port     string
    Username string
    Password string
    From     string
}

func Load() *Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    cfg := &Config{
        Database: database.DatabaseConfig{
            Host:     os.Getenv("DB_HOST"),
            User:     os.Getenv("DB_USER"),
            Password: os.Getenv("DB_PASSWORD"),
            DBName:   os.Getenv("DB_NAME"),
        },
        Server: ServerConfig{
            Port: os.Getenv("SERVER_PORT"),
        },
        Redis: RedisConfig{
            URL:               os.Getenv("REDIS_URL"),
            CartTTL:           30 * 24 * time.Hour,
            WorkerConcurrency: 2,
        },
        Session: SessionConfig{
            Secret: os.Getenv("SESSION_SECRET"),
            Domain: os.Getenv("SESSION_DOMAIN"),
            MaxAge: 86400 * 30,
        },
        JWT: JWTConfig{
            Secret: os.Getenv("JWT_SECRET"),
            Issuer: "pawmart-storefront",
        },
        SMTP: SMTPConfig{
            Host:     os.Getenv("SMTP_HOST"),
            Port:     os.Getenv("SMTP_PORT"),
            Username: os.Getenv("SMTP_USER"),
            Password: os.Getenv("SMTP_PASSWORD"),
            From:     os.Getenv("SMTP_FROM"),
        },
        Delivery: cart.DefaultTariff(),
    }

    if cfg.Server.Port == "" {
        cfg.Server.Port = "8080"
    }

    if cfg.Redis.URL == "" {
        cfg.Redis.URL = "redis://localhost:6379/0"
        log.Printf("Warning: REDIS_URL not set, using default: %s", cfg.Redis.URL)
    }

    // Published delivery rates can be overridden per environment.
    if district := os.Getenv("DELIVERY_CITY_DISTRICT"); district != "" {
        cfg.Delivery.CityDistrict = district
    }
    cfg.Delivery.CityBaseFee = envFloat("DELIVERY_CITY_BASE_FEE", cfg.Delivery.CityBaseFee)
    cfg.Delivery.StandardBaseFee = envFloat("DELIVERY_STANDARD_BASE_FEE", cfg.Delivery.StandardBaseFee)
    cfg.Delivery.ExtraPerKg = envFloat("DELIVERY_EXTRA_PER_KG", cfg.Delivery.ExtraPerKg)

    return cfg
}

func envFloat(key string, fallback float64) float64 {
    raw := os.Getenv(key)
    if raw == "" {
        return fallback
    }
    v, err := strconv.ParseFloat(raw, 64)
    if err != nil {
        log.Printf("Warning: invalid %s=%q, using %v", key, raw, fallback)
        return fallback
    }
    return v
}
