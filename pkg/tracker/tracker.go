// Package tracker is a read-only client for the Pivotal Tracker v5 API.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storybot/pkg/config"
)

const defaultRequestTimeout = 10 * time.Second

// Story is the subset of the Tracker story resource the relay needs.
// Description is optional in the API payload and decodes to "" when absent.
type Story struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Kind        string `json:"kind"`
	ProjectID   int64  `json:"project_id"`
}

type project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Client issues authenticated reads against one Tracker account.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New validates tracker configuration and constructs a client. Requests
// carry a bounded timeout; the default applies when the config leaves it
// unset.
func New(cfg config.TrackerConfig) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("tracker.token is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = config.DefaultTrackerBaseURL
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FetchStory retrieves one story by id.
func (c *Client) FetchStory(ctx context.Context, id string) (Story, error) {
	var story Story
	if err := c.get(ctx, "stories/"+id, &story); err != nil {
		return Story{}, err
	}

	return story, nil
}

// FetchProjectName retrieves the display name of one project.
func (c *Client) FetchProjectName(ctx context.Context, projectID string) (string, error) {
	var p project
	if err := c.get(ctx, "projects/"+projectID, &p); err != nil {
		return "", err
	}

	return p.Name, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	log := trackerLogger().With("operation", path)
	startedAt := time.Now()
	log.Debug("tracker request started")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return fmt.Errorf("build tracker request: %w", err)
	}
	req.Header.Set("X-TrackerToken", c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("tracker request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
		return &UpstreamError{Op: path, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Debug("tracker request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "status", res.StatusCode)
		return &UpstreamError{Op: path, StatusCode: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		log.Debug("tracker request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
		return &UpstreamError{Op: path, StatusCode: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	log.Debug("tracker request completed", "duration_ms", time.Since(startedAt).Milliseconds(), "status", res.StatusCode)
	return nil
}

func trackerLogger() *slog.Logger {
	return slog.Default().With("component", "tracker")
}
