package notification

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// Config selects the notifiers of a run. The log notifier is always on.
type Config struct {
	BufferSize          int    `yaml:"buffer_size" json:"buffer_size" jsonschema:"title=Buffer Size,description=Number of alerts queued before new ones are dropped,default=16,minimum=1" validate:"gte=1"`
	WebhookURL          string `yaml:"webhook_url" json:"webhook_url" jsonschema:"title=Webhook URL,description=Alerts are posted as JSON to this URL" validate:"omitempty,url"`
	TelegramToken       string `yaml:"telegram_token" json:"telegram_token" jsonschema:"title=Telegram Token,description=Bot token used to send alerts" validate:"required_with=TelegramChatID"`
	TelegramChatID      int64  `yaml:"telegram_chat_id" json:"telegram_chat_id" jsonschema:"title=Telegram Chat ID,description=Chat that receives alerts" validate:"required_with=TelegramToken"`
	TelegramAPIEndpoint string `yaml:"telegram_api_endpoint,omitempty" json:"telegram_api_endpoint,omitempty" jsonschema:"title=Telegram API Endpoint,description=Bot API URL format with token and method verbs. Defaults to the public Telegram API"`
}

func DefaultConfig() Config {
	return Config{BufferSize: 16}
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid notification config", err)
	}

	return nil
}

// Notifiers builds the notifiers named by the config.
func (c *Config) Notifiers(log *logger.Logger) ([]Notifier, error) {
	notifiers := []Notifier{NewLogNotifier(log)}

	if c.WebhookURL != "" {
		notifiers = append(notifiers, NewWebhookNotifier(c.WebhookURL, SendTimeout))
	}

	if c.TelegramToken != "" {
		telegram, err := NewTelegramNotifier(c.TelegramToken, c.TelegramChatID, c.TelegramAPIEndpoint)
		if err != nil {
			return nil, err
		}

		notifiers = append(notifiers, telegram)
	}

	return notifiers, nil
}
