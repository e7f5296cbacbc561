// Package steamapi is a small client for the two read-only Steam Web API
// endpoints the roster uses.
package steamapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Steam Web API host.
const DefaultBaseURL = "https://api.steampowered.com"

// MaxBatch is the most SteamIDs the API accepts in one call.
const MaxBatch = 100

const (
	summariesPath = "/ISteamUser/GetPlayerSummaries/v2/"
	bansPath      = "/ISteamUser/GetPlayerBans/v1/"
)

// ErrMissingAPIKey is returned before any request is made when no key is set.
var ErrMissingAPIKey = errors.New("steamapi: no API key configured")

// RequestError wraps any failure talking to an endpoint. It never carries
// the request URL so the API key does not end up in messages.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("steamapi: %s: HTTP %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("steamapi: %s: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Summary is the public profile data for one SteamID.
type Summary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
}

// Bans is the ban record for one SteamID.
type Bans struct {
	SteamID          string `json:"SteamId"`
	CommunityBanned  bool   `json:"CommunityBanned"`
	VACBanned        bool   `json:"VACBanned"`
	NumberOfVACBans  int    `json:"NumberOfVACBans"`
	DaysSinceLastBan int    `json:"DaysSinceLastBan"`
	NumberOfGameBans int    `json:"NumberOfGameBans"`
	EconomyBan       string `json:"EconomyBan"`
}

type summariesResponse struct {
	Response struct {
		Players []Summary `json:"players"`
	} `json:"response"`
}

type bansResponse struct {
	Players []Bans `json:"players"`
}

// Client calls the Steam Web API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger
}

// New returns a client with its own http.Client bounded by timeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

// PlayerSummaries returns the summaries the API knows about, keyed by
// SteamID. IDs the API does not return are simply absent.
func (c *Client) PlayerSummaries(ctx context.Context, key string, ids []string) (map[string]Summary, error) {
	out := map[string]Summary{}
	err := c.batched(ctx, "GetPlayerSummaries", summariesPath, key, ids, func(body []byte) error {
		var resp summariesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return err
		}
		for _, p := range resp.Response.Players {
			out[p.SteamID] = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PlayerBans returns the ban records the API knows about, keyed by SteamID.
func (c *Client) PlayerBans(ctx context.Context, key string, ids []string) (map[string]Bans, error) {
	out := map[string]Bans{}
	err := c.batched(ctx, "GetPlayerBans", bansPath, key, ids, func(body []byte) error {
		var resp bansResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return err
		}
		for _, p := range resp.Players {
			out[p.SteamID] = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) batched(ctx context.Context, endpoint, path, key string, ids []string, decode func([]byte) error) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingAPIKey
	}
	ids = compact(ids)
	for start := 0; start < len(ids); start += MaxBatch {
		end := start + MaxBatch
		if end > len(ids) {
			end = len(ids)
		}
		body, err := c.get(ctx, endpoint, path, key, ids[start:end])
		if err != nil {
			return err
		}
		if err := decode(body); err != nil {
			return &RequestError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, path, key string, ids []string) ([]byte, error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("steamids", strings.Join(ids, ","))
	u := c.BaseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.Log.Debug().Str("endpoint", endpoint).Int("ids", len(ids)).Msg("steam api request")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// compact drops blanks and duplicates while keeping order.
func compact(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
