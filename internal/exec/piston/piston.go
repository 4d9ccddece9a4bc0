package piston

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/heyymateen/CodeSync/internal/exec"
)

const executePath = "/api/v2/piston/execute"

// Client calls the Piston execute API over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zerolog.Logger
}

// New builds a Piston client against the given base URL (e.g. https://emkc.org).
func New(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     logger,
	}
}

type executeRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Files    []file `json:"files"`
	Stdin    string `json:"stdin"`
}

type file struct {
	Content string `json:"content"`
}

// Execute runs the code once and returns the service's result.
func (c *Client) Execute(ctx context.Context, req exec.Request) (*exec.Result, error) {
	body, err := json.Marshal(executeRequest{
		Language: req.Language,
		Version:  req.Version,
		Files:    []file{{Content: req.Code}},
		Stdin:    req.Stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal execute request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+executePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build execute request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call execution service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("execution service returned status %d", resp.StatusCode)
	}

	var result exec.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode execute response: %w", err)
	}

	c.log.Debug().
		Str("language", result.Language).
		Str("version", result.Version).
		Int("exit_code", result.Run.Code).
		Msg("execution completed")

	return &result, nil
}

var _ exec.Runner = (*Client)(nil)
