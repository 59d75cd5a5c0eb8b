// Package fetch talks to the remote usage API on behalf of the
// background poller. Display processes never import it; they only read
// what the poller persisted.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// Credentials is the bundle a profile carries for the remote service.
type Credentials struct {
	SessionToken string
	OrgID        string
	APIToken     string
	APIOrgID     string
}

// UsageFetcher fetches the current usage snapshot for one account.
type UsageFetcher interface {
	FetchUsage(ctx context.Context, creds Credentials) (*models.UsageSnapshot, error)
}

// DefaultBaseURL is the production usage endpoint.
const DefaultBaseURL = "https://api.anthropic.com"

const requestTimeout = 30 * time.Second

// Client is the HTTP implementation of UsageFetcher.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL, defaulting to the
// production endpoint when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// usageResponse mirrors the wire shape of the usage endpoint.
type usageResponse struct {
	FiveHour struct {
		Utilization float64   `json:"utilization"`
		ResetsAt    time.Time `json:"resets_at"`
	} `json:"five_hour"`
	SevenDay struct {
		Utilization float64   `json:"utilization"`
		ResetsAt    time.Time `json:"resets_at"`
	} `json:"seven_day"`
	Models map[string]struct {
		Utilization float64 `json:"utilization"`
	} `json:"models"`
	ExtraUsage *struct {
		UsedCents  int64  `json:"used_cents"`
		LimitCents int64  `json:"limit_cents"`
		Currency   string `json:"currency"`
	} `json:"extra_usage"`
}

// FetchUsage retrieves the account's usage and maps it into a snapshot
// stamped with the current time.
func (c *Client) FetchUsage(ctx context.Context, creds Credentials) (*models.UsageSnapshot, error) {
	if creds.SessionToken == "" && creds.APIToken == "" {
		return nil, fmt.Errorf("no credentials configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/oauth/usage", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create usage request: %w", err)
	}
	token := creds.SessionToken
	orgID := creds.OrgID
	if token == "" {
		token = creds.APIToken
		orgID = creds.APIOrgID
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if orgID != "" {
		req.Header.Set("anthropic-organization-id", orgID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usage request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usage fetch failed (status %d): %s", resp.StatusCode, string(body))
	}

	var usage usageResponse
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, fmt.Errorf("failed to parse usage response: %w", err)
	}

	snap := &models.UsageSnapshot{
		SessionPercentage:  usage.FiveHour.Utilization,
		SessionResetAt:     usage.FiveHour.ResetsAt,
		WeeklyPercentage:   usage.SevenDay.Utilization,
		WeeklyResetAt:      usage.SevenDay.ResetsAt,
		PerModelPercentage: make(map[string]float64, len(usage.Models)),
		CapturedAt:         time.Now().UTC(),
	}
	for name, m := range usage.Models {
		snap.PerModelPercentage[name] = m.Utilization
	}
	if usage.ExtraUsage != nil && usage.ExtraUsage.Currency != "" {
		snap.ExtraUsage = &models.ExtraUsage{
			AmountUsedCents:  usage.ExtraUsage.UsedCents,
			AmountLimitCents: usage.ExtraUsage.LimitCents,
			CurrencyCode:     usage.ExtraUsage.Currency,
		}
	}
	return snap, nil
}
