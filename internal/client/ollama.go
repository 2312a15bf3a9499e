// Package client provides the upstream HTTP client for the Ollama API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"ollama-proxy-go/internal/config"
	"ollama-proxy-go/internal/model"
)

// OllamaClient sends requests to the upstream Ollama server.
type OllamaClient struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOllamaClient creates an OllamaClient with connection pooling and a
// whole-request timeout taken from upstream.timeout_seconds.
func NewOllamaClient(cfg *config.Config, logger *slog.Logger) *OllamaClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &OllamaClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger: logger.With("component", "ollama_client"),
	}
}

// Do executes a request against the upstream and reads the whole response.
// The client timeout covers both the round trip and the body read.
func (c *OllamaClient) Do(req *http.Request) (*model.ProxyResponse, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	c.logger.Debug("upstream response",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &model.ProxyResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Send builds a request for rawURL and executes it. A nil body sends no
// payload. The context is canceled when the inbound client goes away, which
// abandons the upstream call.
func (c *OllamaClient) Send(ctx context.Context, method, rawURL string, header http.Header, body []byte) (*model.ProxyResponse, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, r)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header = header

	return c.Do(req)
}
