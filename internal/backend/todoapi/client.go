// Package todoapi implements the service.Service interface over the
// paginated /todos REST API.
package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"todolist/internal/config"
	"todolist/internal/service"
)

const (
	// DefaultBaseURL is the API root used when none is configured.
	DefaultBaseURL = "https://dummyjson.com/"

	// APITimeout is the default timeout for a single API call.
	APITimeout = 5 * time.Second

	listPath   = "todos"
	createPath = "todos/add"
	taskPath   = "todos/{id}"
)

// Client implements service.Service. It holds no state that changes
// between calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// New creates a client from configuration.
// When cfg.Token is set every request carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return newClient(httpClient, cfg.BaseURL, cfg.Timeout)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	return newClient(httpClient, baseURL, APITimeout)
}

func newClient(httpClient *http.Client, baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidURL, baseURL)
	}
	// ResolveRelative drops the last path segment unless the base ends in a slash.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = APITimeout
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
	}, nil
}

// listResponse is the envelope returned by GET /todos.
type listResponse struct {
	Todos *[]service.Task `json:"todos"`
	Total int             `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
}

// FetchPage returns up to limit tasks starting at skip.
func (c *Client) FetchPage(ctx context.Context, skip, limit int) ([]service.Task, error) {
	if skip < 0 || limit < 1 {
		return nil, fmt.Errorf("invalid page: skip=%d limit=%d", skip, limit)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := c.endpoint(listPath, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidURL, err)
	}

	var resp listResponse
	if err := c.do(req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	if resp.Todos == nil {
		return nil, fmt.Errorf("%w: response has no todos field", service.ErrDecoding)
	}
	return *resp.Todos, nil
}

// CreateTask creates a new task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, title string, completed bool, ownerID int) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := struct {
		Todo      string `json:"todo"`
		Completed bool   `json:"completed"`
		UserID    int    `json:"userId"`
	}{title, completed, ownerID}

	req, err := c.newJSONRequest(ctx, http.MethodPost, createPath, nil, body)
	if err != nil {
		return service.Task{}, err
	}

	var task service.Task
	if err := c.do(req, http.StatusCreated, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateCompletion sets the completed flag of a task.
func (c *Client) UpdateCompletion(ctx context.Context, id int, completed bool) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := struct {
		Completed bool `json:"completed"`
	}{completed}

	req, err := c.newJSONRequest(ctx, http.MethodPut, taskPath, map[string]string{"id": strconv.Itoa(id)}, body)
	if err != nil {
		return service.Task{}, err
	}

	var task service.Task
	if err := c.do(req, http.StatusOK, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// endpoint resolves a path template against the base URL and expands
// its {placeholders}.
func (c *Client) endpoint(path string, params map[string]string) (*url.URL, error) {
	u, err := url.Parse(googleapi.ResolveRelative(c.baseURL, path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidURL, err)
	}
	googleapi.Expand(u, params)
	return u, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, params map[string]string, body any) (*http.Request, error) {
	u, err := c.endpoint(path, params)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", service.ErrDecoding, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do performs a single round trip, checks the status code against want
// and decodes the body into out.
func (c *Client) do(req *http.Request, want int, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(err)
	}

	if resp.StatusCode != want {
		return fmt.Errorf("%w: %w", service.ErrInvalidResponse, &googleapi.Error{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("expected status %d", want),
			Body:    string(data),
			Header:  resp.Header,
		})
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", service.ErrDecoding, err)
	}
	return nil
}

// wrapError classifies transport failures as service.ErrNetwork.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", service.ErrNetwork)
	}
	return fmt.Errorf("%w: %v", service.ErrNetwork, err)
}
