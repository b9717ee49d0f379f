package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pauljones0/skysold-bot/internal/composer"
	"github.com/pauljones0/skysold-bot/internal/util"
)

const (
	colorSold = 16766720 // #FFD700

	// Discord rejects embeds with more fields than this.
	maxEmbedFields = 25
	maxRetries     = 3
)

type Client struct {
	webhookURL  string
	title       string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func New(webhookURL, title string) *Client {
	return &Client{
		webhookURL: webhookURL,
		title:      title,
		client:     &http.Client{Timeout: 10 * time.Second},
		// Webhooks allow 5 requests per 2 seconds.
		rateLimiter: rate.NewLimiter(rate.Every(400*time.Millisecond), 1),
	}
}

// Send posts a composed notification as a single embed.
func (c *Client) Send(ctx context.Context, n composer.Notification) error {
	if c.webhookURL == "" {
		return nil
	}
	embed := formatNotificationToEmbed(c.title, n, time.Now())
	return c.postWithRetry(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbedThumbnail struct {
	URL string `json:"url,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbed struct {
	Title       string                `json:"title,omitempty"`
	Description string                `json:"description,omitempty"`
	Timestamp   string                `json:"timestamp,omitempty"`
	Color       int                   `json:"color,omitempty"`
	Thumbnail   discordEmbedThumbnail `json:"thumbnail,omitempty"`
	Fields      []discordEmbedField   `json:"fields,omitempty"`
}

func formatNotificationToEmbed(title string, n composer.Notification, at time.Time) discordEmbed {
	var fields []discordEmbedField
	for i := len(n.Sales) - 1; i >= 0 && len(fields) < maxEmbedFields; i-- {
		sale := n.Sales[i]
		fields = append(fields, discordEmbedField{
			Name:   sale.Label(),
			Value:  util.FormatCoins(sale.Price) + " coins",
			Inline: true,
		})
	}

	return discordEmbed{
		Title:       title,
		Description: n.Body,
		Timestamp:   at.UTC().Format(time.RFC3339),
		Color:       colorSold,
		Thumbnail:   discordEmbedThumbnail{URL: n.IconURL},
		Fields:      fields,
	}
}

func (c *Client) postWithRetry(ctx context.Context, payload discordWebhookPayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payloadBytes))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}

		backoff := retryBackoff(resp, attempt)
		if backoff == 0 || attempt >= maxRetries {
			return fmt.Errorf("discord status: %s, body: %s", resp.Status, string(bodyBytes))
		}
		slog.Warn("Discord webhook failed, retrying", "status", resp.StatusCode, "attempt", attempt+1, "backoff", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// retryBackoff returns how long to wait before retrying resp, or zero when
// the request must not be retried.
func retryBackoff(resp *http.Response, attempt int) time.Duration {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		if secs, err := strconv.ParseFloat(resp.Header.Get("Retry-After"), 64); err == nil && secs > 0 {
			return time.Duration(secs * float64(time.Second))
		}
		return time.Duration(1<<attempt) * time.Second
	case resp.StatusCode >= 500:
		return time.Duration(1<<attempt) * 250 * time.Millisecond
	default:
		return 0
	}
}
