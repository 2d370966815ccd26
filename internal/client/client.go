// Package client is a typed HTTP client for the task API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/domain"
)

// Fallback messages used when a failed response carries no error text.
const (
	MsgFetchFailed  = "Failed to fetch tasks"
	MsgCreateFailed = "Failed to create task"
	MsgUpdateFailed = "Failed to update task"
	MsgDeleteFailed = "Failed to delete task"
)

// APIError is returned for any non-2xx response, and for transport failures
// with StatusCode 0. Error returns Message so it can be shown to the user as is.
type APIError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Client talks to a taskboard server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. A zero timeout means no timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListTasks fetches every task, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks, MsgFetchFailed); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task and returns it as stored.
func (c *Client) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", input, &task, MsgCreateFailed); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask sends the fields present in input and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id string, input domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), input, &task, MsgUpdateFailed); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, MsgDeleteFailed)
}

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fallback, Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: fallback, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: fallback, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fallback, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, fallback)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fallback, Cause: err}
	}
	return nil
}

// errorMessage extracts the server's error text from a failed response body.
func errorMessage(data []byte, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil || strings.TrimSpace(body.Error) == "" {
		return fallback
	}
	return body.Error
}
