// Package service implements the core proxy forwarding logic.
package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"ollama-proxy-go/internal/client"
	"ollama-proxy-go/internal/config"
	"ollama-proxy-go/internal/model"
)

// StatusError reports a non-2xx upstream answer when statuses are not relayed.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP Error %d: %s", e.Code, e.Reason)
}

// reasonPhrase returns the text the upstream sent after the status code,
// or the standard text for the code when it sent none.
func reasonPhrase(status string, code int) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}

// ProxyService handles the forwarding logic for proxy requests.
type ProxyService struct {
	client         *client.OllamaClient
	logger         *slog.Logger
	baseURL        string
	relayStatus    bool
	forwardHeaders []string
}

// NewProxyService creates a ProxyService. The config is read once; later
// changes to it do not affect forwarding.
func NewProxyService(c *client.OllamaClient, cfg *config.Config, logger *slog.Logger) *ProxyService {
	return &ProxyService{
		client:         c,
		logger:         logger.With("component", "proxy_service"),
		baseURL:        cfg.Upstream.BaseURL,
		relayStatus:    cfg.Upstream.RelayStatus,
		forwardHeaders: append([]string(nil), cfg.Upstream.ForwardHeaders...),
	}
}

// BaseURL returns the upstream base URL requests are forwarded to.
func (s *ProxyService) BaseURL() string {
	return s.baseURL
}

// Forward replays a ProxyRequest against the upstream and returns the fully
// read response.
//
// Unless statuses are relayed, a non-2xx answer is returned as a *StatusError.
func (s *ProxyService) Forward(pr *model.ProxyRequest) (*model.ProxyResponse, error) {
	upstreamURL := s.buildUpstreamURL(pr.RequestURI)

	s.logger.Info("forwarding request",
		"method", pr.Method,
		"url", upstreamURL,
	)

	resp, err := s.client.Send(pr.Ctx, pr.Method, upstreamURL, s.upstreamHeaders(pr.Header), pr.Body)
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}

	if !s.relayStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, &StatusError{Code: resp.StatusCode, Reason: reasonPhrase(resp.Status, resp.StatusCode)}
	}
	return resp, nil
}

// buildUpstreamURL appends the request URI to the base URL without decoding
// or normalizing it.
func (s *ProxyService) buildUpstreamURL(requestURI string) string {
	return s.baseURL + requestURI
}

// upstreamHeaders returns the headers sent upstream: the configured
// passthrough headers plus a fixed JSON Content-Type.
func (s *ProxyService) upstreamHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for _, key := range s.forwardHeaders {
		if vals := src.Values(key); len(vals) > 0 {
			dst[http.CanonicalHeaderKey(key)] = append([]string(nil), vals...)
		}
	}
	dst.Set("Content-Type", "application/json")
	return dst
}
