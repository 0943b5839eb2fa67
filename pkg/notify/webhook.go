package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrDisabled is returned when no webhook URL is configured
var ErrDisabled = errors.New("webhook notifications are disabled")

// OverdueRoom is one room whose guest stayed past check-out
type OverdueRoom struct {
	RoomID         uuid.UUID  `json:"room_id"`
	RoomNumber     string     `json:"room_number"`
	ReservationID  *uuid.UUID `json:"reservation_id,omitempty"`
	GuestName      *string    `json:"guest_name,omitempty"`
	OverdueHours   int        `json:"overdue_hours"`
	OverdueMinutes int        `json:"overdue_minutes"`
}

// OverdueAlert is posted once per business and sweep
type OverdueAlert struct {
	Event        string        `json:"event"`
	BusinessID   uuid.UUID     `json:"business_id"`
	BusinessName string        `json:"business_name"`
	BusinessDate string        `json:"business_date"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Rooms        []OverdueRoom `json:"rooms"`
}

// WebhookConfig holds the endpoint settings
type WebhookConfig struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
}

// WebhookNotifier posts JSON events to a front-desk webhook
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

// NewWebhookNotifier creates a notifier; an empty URL yields a disabled notifier
func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(3*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &WebhookNotifier{url: cfg.URL, client: client}
}

// Enabled reports whether a URL is configured
func (n *WebhookNotifier) Enabled() bool {
	return n.url != ""
}

// NotifyOverdue posts an overdue check-out alert
func (n *WebhookNotifier) NotifyOverdue(ctx context.Context, alert OverdueAlert) error {
	if !n.Enabled() {
		return ErrDisabled
	}
	if alert.Event == "" {
		alert.Event = "room.checkout_overdue"
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(alert).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to post overdue alert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("overdue webhook returned status %d", resp.StatusCode())
	}

	return nil
}
