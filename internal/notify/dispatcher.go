// Package notify formats and delivers order notifications to an external
// messaging channel. Delivery is a best-effort post-commit hook: every
// send attempt is independently guarded, failures are logged and
// swallowed, and the outcome never reaches the request path.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atelier-mireille/backend/internal/domain"
	"go.uber.org/zap"
)

// Channel is the explicit notification handle the dispatcher writes to.
// Its lifecycle is owned by the process entry point.
type Channel interface {
	SendText(ctx context.Context, text string, chatID string) error
	SendPhoto(ctx context.Context, path string, caption string, chatID string) error
}

// Settings supplies the runtime toggles consulted per dispatch, so the
// channel can be muted or redirected without a restart.
type Settings interface {
	GetSettingsStringValue(category, name string) string
	GetSettingsBoolValue(category, name string) bool
}

type Dispatcher struct {
	channel  Channel
	settings Settings
	enabled  bool
	timeout  time.Duration
}

// NewDispatcher builds a dispatcher around an already-initialized channel.
// A nil channel or enabled=false turns dispatch into a no-op.
func NewDispatcher(channel Channel, settings Settings, enabled bool) *Dispatcher {
	return &Dispatcher{
		channel:  channel,
		settings: settings,
		enabled:  enabled,
		timeout:  30 * time.Second,
	}
}

// OrderCreated formats a summary of the new order and attempts delivery of
// the text plus each attached image. It never returns an error: callers
// fire it after a successful write and discard the outcome. imagePaths are
// the on-disk attachment paths of the order.
func (d *Dispatcher) OrderCreated(order *domain.CustomOrder, imagePaths []string) {
	if d == nil || d.channel == nil || !d.enabled {
		return
	}
	if d.settings != nil && d.settings.GetSettingsStringValue("notify", "enabled") == "false" {
		zap.L().Debug("notify: dispatch muted by settings", zap.Int64("order_id", order.ID))
		return
	}
	chatID := ""
	if d.settings != nil {
		chatID = d.settings.GetSettingsStringValue("notify", "chat_id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.channel.SendText(ctx, formatOrderSummary(order, len(imagePaths)), chatID); err != nil {
		zap.L().Warn("notify: order summary delivery failed",
			zap.Int64("order_id", order.ID), zap.Error(err))
		// keep going: image sends are independent of the summary
	}

	for _, path := range imagePaths {
		caption := fmt.Sprintf("Image for order #%d", order.ID)
		if err := d.channel.SendPhoto(ctx, path, caption, chatID); err != nil {
			zap.L().Warn("notify: order image delivery failed",
				zap.Int64("order_id", order.ID), zap.String("image", path), zap.Error(err))
		}
	}
}

func formatOrderSummary(o *domain.CustomOrder, imageCount int) string {
	var b strings.Builder
	b.WriteString("\U0001F514 New custom order!\n\n")
	fmt.Fprintf(&b, "\U0001F464 Name: %s\n", o.Name)
	fmt.Fprintf(&b, "\U0001F4E7 Email: %s\n", o.Email)
	fmt.Fprintf(&b, "\U0001F4F1 Phone: %s\n", orFallback(o.Phone, "not provided"))
	fmt.Fprintf(&b, "\U0001F3A8 Project type: %s\n", o.ProjectType)
	fmt.Fprintf(&b, "\U0001F4B0 Budget: %s\n", orFallback(o.Budget, "not specified"))
	fmt.Fprintf(&b, "\U0001F4DD Description: %s\n", o.Description)
	fmt.Fprintf(&b, "\U0001F4A1 Inspiration: %s\n", orFallback(o.Inspiration, "none"))
	fmt.Fprintf(&b, "⏰ Deadline: %s\n", orFallback(o.Deadline, "not specified"))
	if imageCount > 0 {
		fmt.Fprintf(&b, "\U0001F5BC Images: %d uploaded\n", imageCount)
	} else {
		b.WriteString("\U0001F5BC Images: none\n")
	}
	fmt.Fprintf(&b, "\nOrder ID: %d", o.ID)
	return b.String()
}

func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
