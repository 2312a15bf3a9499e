// Package model defines shared types for the proxy.
package model

import (
	"context"
	"net/http"
)

// ProxyRequest represents a client request to be forwarded to Ollama.
type ProxyRequest struct {
	Ctx    context.Context
	Method string
	// RequestURI is the path and query exactly as the client sent them.
	RequestURI string
	Header     http.Header
	// Body is nil when the request declared no positive Content-Length.
	Body []byte
}

// ProxyResponse is a fully read upstream response.
type ProxyResponse struct {
	StatusCode int
	// Status is the status line after the protocol, e.g. "200 OK".
	Status string
	Header http.Header
	Body   []byte
}
