// Package upstream implements the HTTP client for the ScreenApp REST API.
//
// All requests carry the bearer token and team identifier from the server
// configuration. Failures are normalized into a single *Error type; the
// client never retries, every failure surfaces immediately to the caller.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the ScreenApp API.
type Client struct {
	baseURL string
	token   string
	teamID  string

	httpClient *http.Client
}

// NewClient creates a ScreenApp API client.
// Every call made through the client is bounded by the given timeout.
func NewClient(baseURL, token, teamID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		teamID:     teamID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListRecordings fetches a page of recordings for the configured team.
func (c *Client) ListRecordings(ctx context.Context, limit, offset int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return c.call(ctx, http.MethodGet, "/recordings", q, nil)
}

// GetRecording fetches a single recording by id.
func (c *Client) GetRecording(ctx context.Context, id string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, "/recordings/"+url.PathEscape(id), nil, nil)
}

// GetTranscript fetches the transcript of a recording in the given format.
func (c *Client) GetTranscript(ctx context.Context, id, format string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("format", format)
	return c.call(ctx, http.MethodGet, "/recordings/"+url.PathEscape(id)+"/transcript", q, nil)
}

// GetSummary fetches the AI-generated summary of a recording.
func (c *Client) GetSummary(ctx context.Context, id string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, "/recordings/"+url.PathEscape(id)+"/summary", nil, nil)
}

// ListTeams fetches all teams the authenticated user belongs to.
func (c *Client) ListTeams(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, "/teams", nil, nil)
}

// GetTeam fetches a single team by id.
func (c *Client) GetTeam(ctx context.Context, id string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, "/team/"+url.PathEscape(id), nil, nil)
}

// RegisterWebhook registers a webhook URL for the configured team.
func (c *Client) RegisterWebhook(ctx context.Context, webhookURL, name string) (json.RawMessage, error) {
	body := map[string]string{"url": webhookURL, "name": name}
	return c.call(ctx, http.MethodPost, "/team/"+url.PathEscape(c.teamID)+"/integrations/webhook", nil, body)
}

// UnregisterWebhook removes a webhook URL from the configured team.
func (c *Client) UnregisterWebhook(ctx context.Context, webhookURL string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("url", webhookURL)
	return c.call(ctx, http.MethodDelete, "/team/"+url.PathEscape(c.teamID)+"/integrations/webhook", q, nil)
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, "/profile", nil, nil)
}

// AddFileTag attaches a key/value tag to a file.
func (c *Client) AddFileTag(ctx context.Context, fileID, key, value string) (json.RawMessage, error) {
	body := map[string]string{"key": key, "value": value}
	return c.call(ctx, http.MethodPost, "/files/"+url.PathEscape(fileID)+"/tag", nil, body)
}

// RemoveFileTag removes a tag from a file by key.
func (c *Client) RemoveFileTag(ctx context.Context, fileID, key string) (json.RawMessage, error) {
	body := map[string]string{"key": key}
	return c.call(ctx, http.MethodDelete, "/files/"+url.PathEscape(fileID)+"/tag", nil, body)
}

// call performs a single HTTP request against the upstream API and returns
// the raw response body. All failures, transport-level or HTTP-level, are
// returned as *Error.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to marshal request body: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Team-ID", c.teamID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("request to %s failed: %v", u, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newErrorFromResponse(resp.StatusCode, data)
	}

	if len(data) == 0 {
		return json.RawMessage("null"), nil
	}
	return data, nil
}
