package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
)

// Notifier delivers an order summary to one channel.
type Notifier interface {
	Name() string
	// Enabled reports whether the channel is configured. Disabled channels are skipped.
	Enabled() bool
	Send(ctx context.Context, text string) error
}

// NewNotifiers builds every channel the config enables.
func NewNotifiers(cfg config.NotifyConfig, logger *zap.Logger) []Notifier {
	candidates := []Notifier{
		NewTelegramNotifier(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID),
		NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailTo),
	}

	var enabled []Notifier
	for _, n := range candidates {
		if !n.Enabled() {
			logger.Info("Notification channel not configured, skipping", zap.String("channel", n.Name()))
			continue
		}
		enabled = append(enabled, n)
	}
	return enabled
}
