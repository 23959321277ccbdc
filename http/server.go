package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/iframer"
	"github.com/google/uuid"
)

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// reserved query parameters that are not forwarded to oEmbed endpoints.
var reservedParams = map[string]bool{
	"url":       true,
	"maxwidth":  true,
	"maxheight": true,
}

// Handler serves the resolution API:
//
//	GET /media?url=...&maxwidth=...&maxheight=...&<param>=...
//	GET /healthz
//	GET /metrics (when a metrics handler is configured)
type Handler struct {
	resolver iframer.Resolver
	logger   *slog.Logger
	mux      *http.ServeMux
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) HandlerOption {
	return func(s *Handler) {
		s.mux.Handle("GET /metrics", h)
	}
}

// NewHandler creates a Handler resolving URLs with resolver.
func NewHandler(resolver iframer.Resolver, logger *slog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		resolver: resolver,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /media", h.handleMedia)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP tags the request with an ID and logs it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set("X-Request-Id", id)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	defer func(begin time.Time) {
		h.logger.Info("http",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	}(time.Now())
	h.mux.ServeHTTP(rec, r)
}

func (h *Handler) handleMedia(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), req))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ParseRequest reads a resolution request from query parameters. Parameters
// other than url, maxwidth and maxheight are passed through to providers;
// case variants such as MaxWidth are passed through too.
// Returns EINVALID if url is missing or a size hint is not a positive integer.
func ParseRequest(r *http.Request) (*iframer.Request, error) {
	q := r.URL.Query()
	req := &iframer.Request{
		URL:    q.Get("url"),
		Params: make(map[string]string),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var err error
	if req.SizeHints.MaxWidth, err = sizeHint(q.Get("maxwidth"), "maxwidth"); err != nil {
		return nil, err
	}
	if req.SizeHints.MaxHeight, err = sizeHint(q.Get("maxheight"), "maxheight"); err != nil {
		return nil, err
	}

	for key, values := range q {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		req.Params[key] = values[0]
	}
	return req, nil
}

func sizeHint(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, iframer.Errorf(iframer.EINVALID, "%s must be a positive integer", name)
	}
	return n, nil
}

// errorStatus maps error codes to HTTP status codes.
var errorStatus = map[string]int{
	iframer.EINVALID:     http.StatusBadRequest,
	iframer.ENOTFOUND:    http.StatusNotFound,
	iframer.EUNAVAILABLE: http.StatusServiceUnavailable,
	iframer.EINTERNAL:    http.StatusInternalServerError,
}

func writeError(w http.ResponseWriter, err error) {
	status, ok := errorStatus[iframer.ErrorCode(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": iframer.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Server runs a Handler on a TCP listener.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the address to listen on, e.g. ":8080". Use ":0" for a random port.
	Addr string
}

// NewServer creates a Server for handler.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		Addr: addr,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Open starts listening and serving in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	go func() { _ = s.server.Serve(ln) }()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
