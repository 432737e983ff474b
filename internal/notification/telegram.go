package notification

import (
	"context"
	"net/http"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// telegramSender is the part of the bot API the notifier uses.
type telegramSender interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
}

// TelegramNotifier sends alerts to one chat.
type TelegramNotifier struct {
	bot    telegramSender
	chatID int64
}

// NewTelegramNotifier logs in with token. It contacts the Telegram API at
// endpoint, or the public one when endpoint is empty.
func NewTelegramNotifier(token string, chatID int64, endpoint string) (*TelegramNotifier, error) {
	if endpoint == "" {
		endpoint = tgbot.APIEndpoint
	}

	bot, err := tgbot.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: SendTimeout})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotificationFailed, "failed to connect telegram bot", err)
	}

	return newTelegramNotifier(bot, chatID), nil
}

func newTelegramNotifier(bot telegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (n *TelegramNotifier) Name() string { return "telegram" }

func (n *TelegramNotifier) Send(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, "telegram send cancelled", err)
	}

	if _, err := n.bot.Send(tgbot.NewMessage(n.chatID, alert.Text())); err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, "telegram send failed", err)
	}

	return nil
}
