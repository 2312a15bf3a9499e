package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ollama-proxy-go/internal/config"
	"ollama-proxy-go/internal/model"
	"ollama-proxy-go/internal/service"
)

// ProxyHandler forwards requests to the upstream Ollama server.
type ProxyHandler struct {
	service     *service.ProxyService
	logger      *slog.Logger
	relayStatus bool
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, cfg *config.Config, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service:     svc,
		logger:      logger.With("component", "proxy_handler"),
		relayStatus: cfg.Upstream.RelayStatus,
	}
}

// Handle proxies the request upstream and writes the upstream body back as
// JSON. Every failure becomes a 500 with an {"error": ...} body.
func (h *ProxyHandler) Handle(c echo.Context) error {
	req := c.Request()

	body, err := readBody(req)
	if err != nil {
		return h.writeError(c, err)
	}

	pr := &model.ProxyRequest{
		Ctx:        req.Context(),
		Method:     req.Method,
		RequestURI: requestURI(req),
		Header:     req.Header,
		Body:       body,
	}

	resp, err := h.service.Forward(pr)
	if err != nil {
		return h.writeError(c, err)
	}

	status := http.StatusOK
	if h.relayStatus {
		status = resp.StatusCode
	}
	return c.Blob(status, echo.MIMEApplicationJSON, resp.Body)
}

func (h *ProxyHandler) writeError(c echo.Context, err error) error {
	h.logger.Error("proxy error",
		"err", err,
		"method", c.Request().Method,
		"uri", requestURI(c.Request()),
	)

	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": err.Error(),
	})
}

// readBody reads exactly Content-Length bytes. Requests without a positive
// Content-Length (absent, zero or chunked) carry no body.
func readBody(req *http.Request) ([]byte, error) {
	if req.ContentLength <= 0 {
		return nil, nil
	}
	buf := make([]byte, req.ContentLength)
	if _, err := io.ReadFull(req.Body, buf); err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return buf, nil
}

// requestURI returns the path and query as received on the wire. Absolute-form
// request targets fall back to the parsed URL's path and query.
func requestURI(req *http.Request) string {
	if strings.HasPrefix(req.RequestURI, "/") {
		return req.RequestURI
	}
	return req.URL.RequestURI()
}
