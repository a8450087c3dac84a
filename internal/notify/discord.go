package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/terminusgps/wialon-registration/internal/metrics"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // accepted
	colorOrange = 0xE67E22 // rejected
	colorRed    = 0xE74C3C // session failure
)

// ErrRateLimited is returned when Discord answers 429.
var ErrRateLimited = errors.New("discord rate limited (429)")

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendRegistration posts a registration submission as a Discord embed.
func (d *DiscordNotifier) SendRegistration(ctx context.Context, p *RegistrationPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{registrationEmbed(p)},
	})
}

// SendSessionAlert posts a session refresh failure as a Discord embed.
func (d *DiscordNotifier) SendSessionAlert(ctx context.Context, p *SessionAlertPayload) error {
	embed := discordEmbed{
		Title:       "Wialon session refresh failed",
		Color:       colorRed,
		Description: p.Error,
		Fields: []discordEmbedField{
			{Name: "Consecutive Failures", Value: strconv.Itoa(p.Failures), Inline: true},
			{Name: "Host", Value: orDash(p.Host), Inline: true},
		},
	}
	if !p.At.IsZero() {
		embed.Timestamp = p.At.UTC().Format(time.RFC3339)
	}
	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

func registrationEmbed(p *RegistrationPayload) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("Registration %s: %s", p.Status, orDash(p.AssetName)),
		Color: statusColor(p.Status),
		Fields: []discordEmbedField{
			{Name: "Name", Value: orDash(p.Name), Inline: true},
			{Name: "Email", Value: orDash(p.Email), Inline: true},
			{Name: "IMEI", Value: orDash(p.IMEI), Inline: true},
		},
	}
	if p.UnitID != nil {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name: "Unit ID", Value: strconv.FormatInt(*p.UnitID, 10), Inline: true,
		})
	}
	if len(p.ErrorFields) > 0 {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name: "Invalid Fields", Value: strings.Join(p.ErrorFields, ", "),
		})
	}
	embed.Description = "Submission " + p.SubmissionID
	return embed
}

func statusColor(s domain.SubmissionStatus) int {
	if s == domain.SubmissionAccepted {
		return colorGreen
	}
	return colorOrange
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) (err error) {
	defer func() {
		if err != nil {
			metrics.NotificationFailuresTotal.Inc()
		}
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
