// Package browseruse drives form submissions through the Browser Use Cloud API.
package browseruse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	StatusCreated  = "created"
	StatusRunning  = "running"
	StatusPaused   = "paused"
	StatusFinished = "finished"
	StatusFailed   = "failed"
	StatusStopped  = "stopped"
)

var ErrUnauthorized = errors.New("browser use: unauthorized")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("browser use error %d: %s", e.StatusCode, e.Body)
}

type RunTaskRequest struct {
	Task                  string `json:"task"`
	LLMModel              string `json:"llm_model,omitempty"`
	MaxAgentSteps         int    `json:"max_agent_steps,omitempty"`
	UseAdblock            bool   `json:"use_adblock"`
	UseProxy              bool   `json:"use_proxy"`
	ProxyCountryCode      string `json:"proxy_country_code,omitempty"`
	HighlightElements     bool   `json:"highlight_elements"`
	BrowserViewportWidth  int    `json:"browser_viewport_width,omitempty"`
	BrowserViewportHeight int    `json:"browser_viewport_height,omitempty"`
	EnablePublicShare     bool   `json:"enable_public_share"`
	SaveBrowserData       bool   `json:"save_browser_data"`
}

type RunTaskResponse struct {
	ID      string `json:"id"`
	LiveURL string `json:"live_url"`
}

type TaskStep struct {
	ID         string `json:"id"`
	Step       int    `json:"step"`
	Evaluation string `json:"evaluation_previous_goal"`
	NextGoal   string `json:"next_goal"`
	URL        string `json:"url"`
}

type TaskDetails struct {
	ID             string     `json:"id"`
	Task           string     `json:"task"`
	Output         string     `json:"output"`
	Status         string     `json:"status"`
	LiveURL        string     `json:"live_url"`
	PublicShareURL string     `json:"public_share_url"`
	Steps          []TaskStep `json:"steps"`
}

// Client is a thin JSON client for the Browser Use Cloud REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) RunTask(ctx context.Context, req RunTaskRequest) (*RunTaskResponse, error) {
	var resp RunTaskResponse
	if err := c.do(ctx, http.MethodPost, "/run-task", req, &resp); err != nil {
		return nil, fmt.Errorf("run task: %w", err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("run task: response has no task id")
	}
	return &resp, nil
}

func (c *Client) TaskStatus(ctx context.Context, taskID string) (string, error) {
	var status string
	if err := c.do(ctx, http.MethodGet, "/task/"+url.PathEscape(taskID)+"/status", nil, &status); err != nil {
		return "", fmt.Errorf("task %s status: %w", taskID, err)
	}
	return status, nil
}

func (c *Client) Task(ctx context.Context, taskID string) (*TaskDetails, error) {
	var details TaskDetails
	if err := c.do(ctx, http.MethodGet, "/task/"+url.PathEscape(taskID), nil, &details); err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}
	return &details, nil
}

func (c *Client) StopTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPut, "/stop-task?task_id="+url.QueryEscape(taskID), nil, nil); err != nil {
		return fmt.Errorf("stop task %s: %w", taskID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
