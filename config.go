package kontenbot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment, same contract as the original
// deployment: the Firebase credential arrives as one JSON blob.
type Config struct {
	TelegramToken              string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	AdminUserID                int64  `envconfig:"ADMIN_USER_ID" required:"true"`
	FirebaseServiceAccountJSON string `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON" required:"true"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"` // json|console
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// envconfig's required check only fires for unset keys; a variable set
	// to the empty string slips through it.
	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is required")
	}
	if cfg.AdminUserID == 0 {
		return nil, errors.New("ADMIN_USER_ID must be a non-zero Telegram user id")
	}
	if !json.Valid([]byte(cfg.FirebaseServiceAccountJSON)) {
		return nil, errors.New("FIREBASE_SERVICE_ACCOUNT_JSON is not valid JSON")
	}

	return &cfg, nil
}
