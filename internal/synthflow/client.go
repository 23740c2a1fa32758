package synthflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"callcenter-platform/internal/calls"
	"callcenter-platform/internal/config"
	"callcenter-platform/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// Client fetches call records from the external calling platform.
//
// Contract quirks handled here so nothing downstream sees them:
// - the envelope reports success via status=="ok"; anything else, and any
//   malformed payload, is an empty result set rather than an error,
// - start_time arrives as an integer (sometimes a quoted one) whose unit is
//   explicit configuration, never inferred from digit count,
// - the API key comes from config only.
type Client struct {
	baseURL string
	apiKey  string
	unit    string

	httpc       *http.Client
	maxAttempts uint64
}

func NewClient(cfg config.SynthflowConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		unit:        cfg.StartTimeUnit,
		httpc:       &http.Client{Timeout: cfg.FetchTimeout},
		maxAttempts: 3,
	}
}

type envelope struct {
	Status   string `json:"status"`
	Response struct {
		Calls []wireCall `json:"calls"`
	} `json:"response"`
}

type wireCall struct {
	CallID          string      `json:"call_id"`
	PhoneNumberFrom string      `json:"phone_number_from"`
	StartTime       json.Number `json:"start_time"`
	Duration        int         `json:"duration"`
	Status          string      `json:"status"`
	Transcript      string      `json:"transcript"`
	RecordingURL    string      `json:"recording_url"`
}

// ListCalls returns the records scoped to modelID. An empty modelID short
// circuits to an empty slice: "no model ID configured" is a displayable
// state, not a reason to hit the upstream.
//
// Transport failures are returned as errors so callers can log them; the
// caller still degrades to an empty list either way.
func (c *Client) ListCalls(ctx context.Context, modelID string) ([]calls.Record, error) {
	if modelID == "" {
		return []calls.Record{}, nil
	}

	u := fmt.Sprintf("%s/calls?model_id=%s", c.baseURL, url.QueryEscape(modelID))

	var env envelope
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("upstream returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			// Auth/config problems won't heal on retry.
			return backoff.Permanent(fmt.Errorf("upstream returned %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			// Malformed payload: contract says empty result set.
			logger.From(ctx).Warn("calls payload malformed", "err", err)
			env = envelope{}
		}
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), c.maxAttempts-1),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, fmt.Errorf("calls fetch failed: %w", err)
	}

	if env.Status != "ok" {
		logger.From(ctx).Warn("calls envelope not ok", "status", env.Status)
		return []calls.Record{}, nil
	}

	out := make([]calls.Record, 0, len(env.Response.Calls))
	for _, w := range env.Response.Calls {
		out = append(out, calls.Record{
			CallID:          w.CallID,
			PhoneNumberFrom: w.PhoneNumberFrom,
			StartTime:       c.resolveStartTime(w.StartTime),
			DurationSeconds: w.Duration,
			Status:          calls.ParseStatus(w.Status),
			Transcript:      w.Transcript,
			RecordingURL:    w.RecordingURL,
		})
	}
	return out, nil
}

func (c *Client) resolveStartTime(n json.Number) time.Time {
	v, err := n.Int64()
	if err != nil || v == 0 {
		return time.Time{}
	}
	if c.unit == "s" {
		return time.Unix(v, 0).UTC()
	}
	return time.UnixMilli(v).UTC()
}
