// Package directory is the outbound boundary to the remote user directory.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

const (
	// APIKeyHeader carries the directory API key.
	APIKeyHeader = "x-api-key"
	// MaxBodySize bounds every response body read from the directory.
	MaxBodySize = 10 << 20
)

// ErrCallFailed is the single failure kind for every outbound call.
var ErrCallFailed = errors.New("failed to make API call")

var _ model.Directory = (*Client)(nil)

// Client performs GET requests against the directory and arbitrary resource URLs.
// Transport errors, non-2xx responses and undecodable bodies are logged and
// reported as ErrCallFailed naming only the URL.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *logger.Logger
}

// NewHTTPClient creates an HTTP client with bounded dial and total timeouts.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// New creates a directory Client. The API key, when set, is only sent to baseURL.
func New(httpClient *http.Client, baseURL, apiKey string, logger *logger.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// UserURL returns the directory URL of the user profile.
func (c *Client) UserURL(id int64) string {
	return fmt.Sprintf("%s/users/%d", c.baseURL, id)
}

// GetUser fetches a user profile by id.
func (c *Client) GetUser(ctx context.Context, id int64) (model.RemoteProfile, error) {
	resp, err := FetchJSON[model.DirectoryResponse[model.RemoteProfile]](ctx, c, c.UserURL(id))
	if err != nil {
		return model.RemoteProfile{}, err
	}
	return resp.Data, nil
}

// FetchBinary downloads the raw bytes behind url.
func (c *Client) FetchBinary(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url)
}

// FetchJSON issues a GET to url and decodes the JSON body into T.
func FetchJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	var out T

	body, err := c.get(ctx, url)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Error("Directory client: failed to decode response",
			"url", url,
			"error", err.Error())
		return out, callFailed(url)
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Directory client: failed to build request",
			"url", url,
			"error", err.Error())
		return nil, callFailed(url)
	}
	if c.apiKey != "" && strings.HasPrefix(url, c.baseURL+"/") {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Directory client: request failed",
			"url", url,
			"error", err.Error())
		return nil, callFailed(url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Directory client: unexpected status",
			"url", url,
			"status", resp.StatusCode)
		return nil, callFailed(url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		c.logger.Error("Directory client: failed to read body",
			"url", url,
			"error", err.Error())
		return nil, callFailed(url)
	}
	if len(body) > MaxBodySize {
		c.logger.Error("Directory client: response body too large",
			"url", url,
			"limit", MaxBodySize)
		return nil, callFailed(url)
	}

	c.logger.Debug("Directory client: call succeeded",
		"url", url,
		"bytes", len(body))

	return body, nil
}

func callFailed(url string) error {
	return fmt.Errorf("%w to URL: %s", ErrCallFailed, url)
}
