package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client against the platform's JSON API.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewHTTPClient creates a platform client rooted at baseURL.
func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
		Logger:  logger,
	}
}

// errorBody is the platform's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	switch {
	case b.Error != "":
		return b.Error
	case b.Message != "":
		return b.Message
	case b.Detail != "":
		return b.Detail
	}
	return ""
}

// doJSON issues one request with the caller's bearer token and decodes the
// response into out (when out is non-nil).
func (c *HTTPClient) doJSON(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newAPIError(CodeNetwork, 0, fmt.Sprintf("failed to encode request: %v", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return newAPIError(CodeNetwork, 0, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("platform request failed", zap.String("path", path), zap.Error(err))
		return newAPIError(CodeNetwork, 0, "platform API unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapStatus(resp, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newAPIError(CodeNetwork, resp.StatusCode, "failed to decode platform response")
		}
	}
	return nil
}

func (c *HTTPClient) mapStatus(resp *http.Response, path string) error {
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &eb)
	msg := eb.text()

	c.Logger.Warn("platform API error",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return newAPIError(CodeNotFound, resp.StatusCode, msg)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if msg == "" {
			msg = "not authorized"
		}
		return newAPIError(CodeUnauthorized, resp.StatusCode, msg)
	case resp.StatusCode >= 500:
		return newAPIError(CodeNetwork, resp.StatusCode, "platform API error")
	default:
		if msg == "" {
			msg = "request rejected"
		}
		return newAPIError(CodeBadRequest, resp.StatusCode, msg)
	}
}
