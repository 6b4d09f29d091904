// Package client is a typed HTTP client for the employees API. Every failure
// comes back as *Error with a message fit for showing to a user.
package client

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

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second
	DefaultLimit   = 10
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.Named("client")
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []FieldError    `json:"errors"`
	Pagination *Pagination     `json:"pagination"`
}

// ListEmployees fetches one page. Search takes precedence over Department
// on the server.
func (c *Client) ListEmployees(ctx context.Context, p ListParams) (*EmployeePage, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Department != "" {
		q.Set("department", p.Department)
	}

	var employees []Employee
	env, err := c.do(ctx, http.MethodGet, "/employees", q, nil, &employees)
	if err != nil {
		return nil, err
	}

	page := &EmployeePage{Employees: employees}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// EmployeesByDepartment returns the first page of employees whose department
// is exactly department.
func (c *Client) EmployeesByDepartment(ctx context.Context, department string) (*EmployeePage, error) {
	return c.ListEmployees(ctx, ListParams{Department: department})
}

func (c *Client) GetEmployee(ctx context.Context, id uint64) (*Employee, error) {
	var e Employee
	if _, err := c.do(ctx, http.MethodGet, employeePath(id), nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var e Employee
	if _, err := c.do(ctx, http.MethodPost, "/employees", nil, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id uint64, in EmployeeInput) (*Employee, error) {
	var e Employee
	if _, err := c.do(ctx, http.MethodPut, employeePath(id), nil, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id uint64) error {
	_, err := c.do(ctx, http.MethodDelete, employeePath(id), nil, nil, nil)
	return err
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if _, err := c.do(ctx, http.MethodGet, "/employees/stats", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SearchEmployees returns every match, unpaginated.
func (c *Client) SearchEmployees(ctx context.Context, term string) ([]Employee, error) {
	var employees []Employee
	body := map[string]string{"searchTerm": term}
	if _, err := c.do(ctx, http.MethodPost, "/employees/search", nil, body, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) Departments(ctx context.Context) ([]string, error) {
	var names []string
	if _, err := c.do(ctx, http.MethodGet, "/departments", nil, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func employeePath(id uint64) string {
	return "/employees/" + strconv.FormatUint(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, &Error{Message: MsgUnexpected, Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &Error{Message: MsgUnexpected, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", zap.String("method", method), zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, &Error{Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: MsgNetwork, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = MsgServerError
		}
		c.logger.Debug("api error response",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, &Error{
			StatusCode:  resp.StatusCode,
			Message:     msg,
			FieldErrors: env.Errors,
			Err:         fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode),
		}
	}

	if decodeErr != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: MsgUnexpected, Err: decodeErr}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{StatusCode: resp.StatusCode, Message: MsgUnexpected, Err: err}
		}
	}
	return &env, nil
}
