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

	"taskboard/internal/dashboard"
	"taskboard/internal/handlers/dto"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/stats"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError - ответ сервера с кодом ошибки
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type ListOptions struct {
	Search   string
	Status   string
	Category string
	Priority string
}

func (o ListOptions) query() string {
	q := url.Values{}
	for k, v := range map[string]string{
		"search":   o.Search,
		"status":   o.Status,
		"category": o.Category,
		"priority": o.Priority,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListTasks(ctx context.Context, opts ListOptions) (dto.TaskListResponse, error) {
	var res dto.TaskListResponse
	err := c.do(ctx, http.MethodGet, "/tasks"+opts.query(), nil, &res)
	return res, err
}

// AddTask создаёт задачу через быструю форму панели
func (c *Client) AddTask(ctx context.Context, q dashboard.QuickAdd) (task.Task, error) {
	var res task.Task
	err := c.do(ctx, http.MethodPost, "/dashboard/tasks", q, &res)
	return res, err
}

func (c *Client) ToggleTask(ctx context.Context, id int64) (task.Task, error) {
	var res task.Task
	err := c.do(ctx, http.MethodPost, "/tasks/"+strconv.FormatInt(id, 10)+"/toggle", nil, &res)
	return res, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (stats.Stats, error) {
	var res stats.Stats
	err := c.do(ctx, http.MethodGet, "/stats", nil, &res)
	return res, err
}

func (c *Client) Categories(ctx context.Context) ([]category.View, error) {
	var res []category.View
	err := c.do(ctx, http.MethodGet, "/categories", nil, &res)
	return res, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация запроса: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("разбор ответа %s: %w", path, err)
	}
	return nil
}
