package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pauljones0/skysold-bot/internal/validator"
)

type Config struct {
	HypixelAPIKey     string        `validate:"required"`
	HypixelAPIURL     string        `validate:"required,url"`
	Player            uuid.UUID     `validate:"required"`
	DiscordWebhookURL string        `validate:"omitempty,url"`
	NotificationTitle string        `validate:"required"`
	MinPrice          uint64        `validate:"gte=0"`
	FetchInterval     time.Duration `validate:"gt=0"`
	Port              string        `validate:"required,numeric"`
	ProjectID         string
	MaxStoredSales    int    `validate:"gte=1"`
	LogLevel          string `validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFile           string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	apiKey := os.Getenv("HYPIXEL_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("HYPIXEL_API_KEY environment variable is required but not set")
	}

	playerStr := os.Getenv("HYPIXEL_PLAYER")
	if playerStr == "" {
		return nil, fmt.Errorf("HYPIXEL_PLAYER environment variable is required but not set")
	}
	player, err := uuid.Parse(playerStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HYPIXEL_PLAYER %q: %w", playerStr, err)
	}

	apiURL := os.Getenv("HYPIXEL_API_URL")
	if apiURL == "" {
		apiURL = "https://api.hypixel.net"
	}

	discordWebhookURL := os.Getenv("DISCORD_WEBHOOK_URL")
	if discordWebhookURL == "" {
		slog.Warn("DISCORD_WEBHOOK_URL not set, Discord notifications will be skipped")
	}

	title := os.Getenv("NOTIFICATION_TITLE")
	if title == "" {
		title = "Auction sold"
	}

	var minPrice uint64
	if v := os.Getenv("MIN_PRICE"); v != "" {
		minPrice, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_PRICE %q: %w", v, err)
		}
	}

	fetchIntervalStr := os.Getenv("FETCH_INTERVAL")
	if fetchIntervalStr == "" {
		fetchIntervalStr = "20s"
	}
	fetchInterval, err := time.ParseDuration(fetchIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL %q: %w", fetchIntervalStr, err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		slog.Info("GOOGLE_CLOUD_PROJECT not set, sale ledger disabled")
	}

	maxStoredSales := 500
	if v := os.Getenv("MAX_STORED_SALES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_STORED_SALES %q: %w", v, err)
		}
		maxStoredSales = parsed
	}

	cfg := &Config{
		HypixelAPIKey:     apiKey,
		HypixelAPIURL:     apiURL,
		Player:            player,
		DiscordWebhookURL: discordWebhookURL,
		NotificationTitle: title,
		MinPrice:          minPrice,
		FetchInterval:     fetchInterval,
		Port:              port,
		ProjectID:         projectID,
		MaxStoredSales:    maxStoredSales,
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFile:           os.Getenv("LOG_FILE"),
	}
	if err := validator.New().ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
