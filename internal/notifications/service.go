package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shifttrack/internal/config"
)

const userAgent = "Shifttrack-Go/0.1.0"

// Service defines the notification surface exposed to the daemon and CLI.
type Service interface {
	NotifyShiftRecorded(ctx context.Context, position string, hours float64) error
	NotifyAuditVerdict(ctx context.Context, tier string, computedHours, claimedHours float64) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	endpoint := topic
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://ntfy.sh/" + endpoint
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:    endpoint,
		client:      client,
		shiftEvents: cfg.Notifications.Shifts,
		auditEvents: cfg.Notifications.Audit,
		errorEvents: cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint    string
	client      *http.Client
	shiftEvents bool
	auditEvents bool
	errorEvents bool
}

func (n *ntfyService) NotifyShiftRecorded(ctx context.Context, position string, hours float64) error {
	if !n.shiftEvents {
		return nil
	}
	position = strings.TrimSpace(position)
	if position == "" {
		position = "unspecified position"
	}
	data := payload{
		title:   "Shifttrack - Shift Recorded",
		message: fmt.Sprintf("Recorded %.2f hours (%s)", hours, position),
		tags:    []string{"shifttrack", "shift", "recorded"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAuditVerdict(ctx context.Context, tier string, computedHours, claimedHours float64) error {
	if !n.auditEvents {
		return nil
	}
	tier = strings.TrimSpace(tier)
	if tier == "" {
		tier = "unknown"
	}
	data := payload{
		title:   "Shifttrack - Paystub Audit",
		message: fmt.Sprintf("Audit verdict: %s (recorded %.2fh, claimed %.2fh)", tier, computedHours, claimedHours),
		tags:    []string{"shifttrack", "audit", tier},
	}
	switch tier {
	case "discrepancy", "off_track":
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errorEvents {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Shifttrack - Error",
		message:  builder.String(),
		tags:     []string{"shifttrack", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shifttrack - Test",
		message:  "Notification system test",
		tags:     []string{"shifttrack", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyShiftRecorded(context.Context, string, float64) error { return nil }
func (noopService) NotifyAuditVerdict(context.Context, string, float64, float64) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error          { return nil }
