package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
)

// ErrUnexpectedStatus is returned for responses outside the API contract.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client talks to the combine HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/healthz", nil, &out, http.StatusOK)
}

// PostBatch sends one batch. A 429 is not an error: the result lists the
// rejected items and full reports that the queue pushed back.
func (c *Client) PostBatch(ctx context.Context, subs []model.Submission) (res service.BatchResult, full bool, err error) {
	body := struct {
		Submissions []model.Submission `json:"submissions"`
	}{Submissions: subs}

	status, err := c.send(ctx, http.MethodPost, "/v1/assessments/batch", body, &res, http.StatusAccepted, http.StatusTooManyRequests)
	if err != nil {
		return service.BatchResult{}, false, err
	}
	return res, status == http.StatusTooManyRequests, nil
}

// Stats reads GET /v1/stats.
func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	out := make(map[string]any)
	if err := c.do(ctx, http.MethodGet, "/v1/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Squad reads the top of GET /v1/squad.
func (c *Client) Squad(ctx context.Context, limit int) ([]model.SquadEntry, error) {
	var out struct {
		Athletes []model.SquadEntry `json:"athletes"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/squad?limit="+strconv.Itoa(limit), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Athletes, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, want ...int) error {
	_, err := c.send(ctx, method, path, in, out, want...)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, in, out any, want ...int) (int, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	ok := false
	for _, w := range want {
		if resp.StatusCode == w {
			ok = true
			break
		}
	}
	if !ok {
		return resp.StatusCode, fmt.Errorf("%w: %s %s: %d %s", ErrUnexpectedStatus, method, path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}
