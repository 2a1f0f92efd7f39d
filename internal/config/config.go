package config

import "errors"

type Config struct {
	TelegramBotToken string `envconfig:"TG_BOT_TOKEN" required:"true"`
	TelegramDebug    bool   `envconfig:"TG_DEBUG" default:"false"`
	// AuthorizedUserID is the only sender allowed to post, zero allows everyone.
	AuthorizedUserID int64 `envconfig:"YOUR_TELEGRAM_ID" default:"0"`

	VKToken      string `envconfig:"VK_TOKEN" required:"true"`
	VKGroupID    int64  `envconfig:"VK_GROUP_ID" required:"true"`
	VKFromGroup  bool   `envconfig:"VK_FROM_GROUP" default:"false"`
	VKAPIVersion string `envconfig:"VK_API_VERSION"`

	LogDevelopment bool `envconfig:"LOG_DEVELOPMENT" default:"false"`
	// HTTPAddr serves /healthz and /metrics, empty disables the server.
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func (c Config) Validate() error {
	if c.VKGroupID <= 0 {
		return errors.New("VK_GROUP_ID must be a positive group id")
	}

	if c.AuthorizedUserID < 0 {
		return errors.New("YOUR_TELEGRAM_ID must not be negative")
	}

	return nil
}
