package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"darts-tournament/internal/constants"
	"darts-tournament/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath            string
	ServerPort        string
	LogLevel          string
	RulesFile         string
	BracketWebhookURL string
	CORSOrigins       []string
	DefaultRules      domain.MatchRules
}

// rulesFile is the optional YAML file holding default match rules.
type rulesFile struct {
	StartingScore int    `yaml:"starting_score"`
	LegsToWin     int    `yaml:"legs_to_win"`
	CheckoutMode  string `yaml:"checkout_mode"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:            getEnv("DB_PATH", "darts.db"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RulesFile:         getEnv("RULES_FILE", ""),
		BracketWebhookURL: getEnv("BRACKET_WEBHOOK_URL", ""),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		DefaultRules: domain.MatchRules{
			StartingScore: constants.DefaultStartingScore,
			LegsToWin:     constants.DefaultLegsToWin,
			CheckoutMode:  domain.CheckoutMode(constants.DefaultCheckoutMode),
		},
	}

	if cfg.RulesFile != "" {
		if err := loadRules(cfg.RulesFile, &cfg.DefaultRules); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.DefaultRules.StartingScore, err = getEnvInt("STARTING_SCORE", cfg.DefaultRules.StartingScore); err != nil {
		return nil, err
	}
	if cfg.DefaultRules.LegsToWin, err = getEnvInt("LEGS_TO_WIN", cfg.DefaultRules.LegsToWin); err != nil {
		return nil, err
	}
	cfg.DefaultRules.CheckoutMode = domain.CheckoutMode(getEnv("CHECKOUT_MODE", string(cfg.DefaultRules.CheckoutMode)))

	if !cfg.DefaultRules.CheckoutMode.Valid() {
		return nil, fmt.Errorf("invalid checkout mode %q", cfg.DefaultRules.CheckoutMode)
	}
	if cfg.DefaultRules.StartingScore < 2 || cfg.DefaultRules.LegsToWin < 1 {
		return nil, fmt.Errorf("invalid default rules: starting score %d, legs to win %d",
			cfg.DefaultRules.StartingScore, cfg.DefaultRules.LegsToWin)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("rules_file", cfg.RulesFile).
		Int("starting_score", cfg.DefaultRules.StartingScore).
		Int("legs_to_win", cfg.DefaultRules.LegsToWin).
		Str("checkout_mode", string(cfg.DefaultRules.CheckoutMode)).
		Bool("bracket_export", cfg.BracketWebhookURL != "").
		Msg("configuration loaded")

	return cfg, nil
}

func loadRules(path string, rules *domain.MatchRules) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	if f.StartingScore != 0 {
		rules.StartingScore = f.StartingScore
	}
	if f.LegsToWin != 0 {
		rules.LegsToWin = f.LegsToWin
	}
	if f.CheckoutMode != "" {
		rules.CheckoutMode = domain.CheckoutMode(f.CheckoutMode)
	}
	return nil
}

// ScoreboardConfig configures the board display client.
type ScoreboardConfig struct {
	ServerURL    string
	BoardID      string
	PollInterval time.Duration
	LogLevel     string
}

func LoadScoreboard(logger zerolog.Logger) (*ScoreboardConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &ScoreboardConfig{
		ServerURL:    strings.TrimRight(getEnv("SERVER_URL", "http://localhost:8080"), "/"),
		BoardID:      getEnv("BOARD_ID", ""),
		PollInterval: constants.ScoreboardPollInterval,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	if cfg.BoardID == "" {
		return nil, errors.New("BOARD_ID is required")
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL %q", v)
		}
		cfg.PollInterval = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
