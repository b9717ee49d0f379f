// Package hypixel fetches a player's auctions from the Hypixel SkyBlock API.
package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pauljones0/skysold-bot/internal/models"
	"github.com/pauljones0/skysold-bot/internal/validator"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.hypixel.net"

var (
	// ErrInvalidRequest wraps transport failures.
	ErrInvalidRequest = errors.New("invalid http request")
	// ErrInvalidResponse wraps bodies that are not a well-formed auction response.
	ErrInvalidResponse = errors.New("invalid api response")
	// ErrUnsuccessful is returned when the API answers with success=false.
	ErrUnsuccessful = errors.New("invalid api status")
)

// StatusError is returned for any non-200 reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid api status code %d: %s", e.Code, e.Body)
}

type auctionResponse struct {
	Success  bool                `json:"success"`
	Cause    string              `json:"cause"`
	Auctions []models.RawListing `json:"auctions"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	validator  *validator.Validator
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		validator:  validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAuctions returns every auction currently listed by player, sold or not.
func (c *Client) FetchAuctions(ctx context.Context, player uuid.UUID) ([]models.RawListing, error) {
	q := url.Values{}
	q.Set("player", strings.ReplaceAll(player.String(), "-", ""))
	endpoint := c.baseURL + "/skyblock/auction?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data auctionResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !data.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, data.Cause)
	}
	if err := validator.ValidateEach(c.validator, data.Auctions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	slog.Debug("Fetched auctions", "player", player, "count", len(data.Auctions))
	return data.Auctions, nil
}
