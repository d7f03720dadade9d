package azdevops

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

const (
	apiVersion = "7.1"

	// DefaultRetryMax is the number of retries for transient transport failures.
	DefaultRetryMax = 3

	continuationHeader = "x-ms-continuationtoken"
)

// Client represents an Azure DevOps API client scoped to one project
type Client struct {
	org        string
	project    string
	pat        string
	baseURL    string
	httpClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithRetryMax sets how many times a transient failure is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.httpClient.RetryMax = n
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLogger routes transport and retry logging through log.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) {
		if log != nil {
			c.httpClient.Logger = logAdapter{log: log.WithField("project", c.project)}
		}
	}
}

// NewClient creates a new Azure DevOps API client
func NewClient(org, project, pat string, opts ...Option) (*Client, error) {
	if org == "" {
		return nil, fmt.Errorf("organization cannot be empty")
	}

	if project == "" {
		return nil, fmt.Errorf("project cannot be empty")
	}

	if pat == "" {
		return nil, fmt.Errorf("PAT cannot be empty")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = DefaultRetryMax
	retryClient.HTTPClient.Timeout = 30 * time.Second
	retryClient.Logger = logAdapter{log: logrus.NewEntry(logrus.StandardLogger())}

	c := &Client{
		org:        org,
		project:    project,
		pat:        pat,
		baseURL:    fmt.Sprintf("https://dev.azure.com/%s/%s/_apis", org, project),
		httpClient: retryClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetProject returns the project this client is scoped to.
func (c *Client) GetProject() string { return c.project }

// response is a successful API response body with the headers we use.
type response struct {
	body              []byte
	continuationToken string
}

// get performs a GET request to the Azure DevOps API
func (c *Client) get(ctx context.Context, path string) (*response, error) {
	url := c.baseURL + path

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &response{
		body:              body,
		continuationToken: resp.Header.Get(continuationHeader),
	}, nil
}

// setAuthHeader sets the Authorization header with Basic auth using PAT
// Azure DevOps uses the format ":{PAT}" for basic auth
func (c *Client) setAuthHeader(req *retryablehttp.Request) {
	auth := ":" + c.pat
	encodedAuth := base64.StdEncoding.EncodeToString([]byte(auth))
	req.Header.Set("Authorization", "Basic "+encodedAuth)
}

// logAdapter routes retryablehttp logging through a logrus entry.
type logAdapter struct {
	log *logrus.Entry
}

func (logAdapter) fields(kv []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}

func (a logAdapter) Error(msg string, kv ...interface{}) {
	a.log.WithFields(a.fields(kv)).Error(msg)
}

func (a logAdapter) Info(msg string, kv ...interface{}) {
	a.log.WithFields(a.fields(kv)).Debug(msg)
}

func (a logAdapter) Debug(msg string, kv ...interface{}) {
	a.log.WithFields(a.fields(kv)).Trace(msg)
}

func (a logAdapter) Warn(msg string, kv ...interface{}) {
	a.log.WithFields(a.fields(kv)).Warn(msg)
}

var _ retryablehttp.LeveledLogger = logAdapter{}
