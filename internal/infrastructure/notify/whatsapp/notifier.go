// Package whatsapp dispatches critical-document alerts through a wa.me deep
// link. Opening the link is treated as "sent"; there is no delivery
// confirmation and no retry.
package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

type Notifier struct {
	recipient string
	opener    ports.LinkOpener
	history   ports.NotificationHistory
	logger    *slog.Logger
	now       func() time.Time
}

func NewNotifier(
	recipient string,
	opener ports.LinkOpener,
	history ports.NotificationHistory,
	logger *slog.Logger,
) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		recipient: recipient,
		opener:    opener,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the audit timestamp source. Test hook.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// SendCriticalAlert always reports true: the dispatch is fire-and-forget and
// a failed link open is logged, not surfaced.
func (n *Notifier) SendCriticalAlert(ctx context.Context, payload domain.NotificationPayload) bool {
	link := n.DeepLink(payload)

	if err := n.opener.Open(ctx, link); err != nil {
		n.logger.Warn("whatsapp_open_failed", "recipient", n.recipient, "error", err)
	}

	record := domain.NotificationRecord{
		Timestamp: n.now().UTC(),
		Payload:   payload,
		Sent:      true,
	}
	if err := n.history.Append(ctx, record); err != nil {
		n.logger.Warn("notification_audit_failed", "error", err)
	}

	n.logger.Info("whatsapp_alert_dispatched",
		"title", payload.DocumentTitle,
		"department", payload.Department,
		"priority", payload.Priority,
	)
	return true
}

// DeepLink builds the externally-addressed messaging URL with the formatted
// message as an encoded query parameter.
func (n *Notifier) DeepLink(payload domain.NotificationPayload) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", n.recipient, url.QueryEscape(FormatMessage(payload)))
}

func FormatMessage(p domain.NotificationPayload) string {
	return fmt.Sprintf(
		"🚨 CRITICAL DOCUMENT ALERT\n\nTitle: %s\nDepartment: %s\nPriority: %s\n\nSummary: %s\n\nView Dashboard: %s",
		p.DocumentTitle, p.Department, p.Priority, p.Summary, p.DashboardLink,
	)
}
