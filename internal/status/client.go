// Package status probes the backend's grade-result endpoint for one job
// at a time. The remote status vocabulary is opaque to the watcher: only
// the literal value "completed" is meaningful, and every other value
// (including "failed", "not_found", or an absent field) reads as still
// pending.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gradeflow/jobwatch/internal/errors"
	"github.com/gradeflow/jobwatch/internal/util"
)

// Completed is the only remote status value this component acts on.
const Completed = "completed"

// defaultTimeout bounds a single probe request. A probe that outlives the
// poll interval is allowed; the ledger guards against the resulting
// overlap.
const defaultTimeout = 10 * time.Second

// Result is the decoded body of a probe response. The backend may include
// further fields; the watcher only reads the status.
type Result struct {
	Status string `json:"status"`
}

// IsCompleted reports whether the result carries the completed status.
func (r Result) IsCompleted() bool {
	return r.Status == Completed
}

// Client issues probe requests against a backend base address.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a probe client for the given backend base URL.
// Trailing slashes on the base are stripped so that "http://host:8501/"
// and "http://host:8501" build identical probe URLs.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: util.TrimTrailingSlash(baseURL),
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProbeURL returns the outbound URL for a job's status probe.
func (c *Client) ProbeURL(jobID string) string {
	return c.base + "/ai_grading/grade_result/" + url.PathEscape(jobID)
}

// Fetch issues one probe for the job and decodes its status. Transport
// failures, non-2xx responses, and undecodable bodies all return an error;
// the poller treats every error as "still pending" and retries on the
// next tick.
func (c *Client) Fetch(ctx context.Context, jobID string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProbeURL(jobID), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", errors.ErrProbe, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("%w: status %s", errors.ErrProbe, resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", errors.ErrProbe, err)
	}
	return result, nil
}
