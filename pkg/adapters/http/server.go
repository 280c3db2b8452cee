package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/collecty/richtext"
	"github.com/collecty/richtext/internal/logging"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies; editor documents are far smaller.
const maxBodyBytes = 4 << 20

// Server serves rendering and stored content over HTTP.
type Server struct {
	Engine  ports.DocumentEngine
	Store   ports.ContentStore
	Streams *StreamManager

	logger    *slog.Logger
	metrics   http.Handler
	doc       *openapi3.T
	validator *requestValidator
}

// Option configures the Server.
type Option func(*Server)

// WithStore enables the /content routes.
func WithStore(store ports.ContentStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler overrides the /metrics handler, e.g. to serve a custom registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a Server. It fails only if the embedded API document is invalid.
func NewServer(engine ports.DocumentEngine, opts ...Option) (*Server, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Engine:  engine,
		doc:     doc,
		metrics: promhttp.Handler(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.validator = &requestValidator{doc: doc}

	return s, nil
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.DocumentEngine, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Handle("/metrics", s.metrics)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.With(s.validator.middleware("/render")).Post("/render", s.Render)
	r.With(s.validator.middleware("/validate")).Post("/validate", s.Validate)

	r.Get("/events", s.SubscribeEvents)

	r.Route("/content", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.ListContent)
		r.Route("/{id}", func(r chi.Router) {
			r.With(s.validator.middleware("/content/{id}")).Get("/", s.GetContent)
			r.With(s.validator.middleware("/content/{id}")).Put("/", s.PutContent)
			r.With(s.validator.middleware("/content/{id}")).Delete("/", s.DeleteContent)
			r.With(s.validator.middleware("/content/{id}/html")).Get("/html", s.GetContentHTML)
		})
	})

	return r
}

type ctxKey struct{}

// requestID tags every request with an X-Request-ID, reusing the client's when sent.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.logger.Debug("request served",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// RequestID returns the ID assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Store == nil {
			writeError(w, r, http.StatusNotImplemented, errors.New("no content store configured"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Rich Text API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Render handles the POST /render request.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := s.Engine.RenderJSON(r.Context(), body)
	if err != nil {
		s.logger.Warn("Render: invalid document", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Valid  bool           `json:"valid"`
	Issues []domain.Issue `json:"issues"`
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	issues, err := s.Engine.ValidateJSON(r.Context(), body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if issues == nil {
		issues = []domain.Issue{}
	}

	writeJSON(w, http.StatusOK, ValidateResponse{Valid: len(issues) == 0, Issues: issues})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "richtext-http",
		"version":     strings.TrimSpace(richtext.Version),
		"api_version": apiVersion,
	})
}

// ListContent handles the GET /content request.
func (s *Server) ListContent(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetContent handles the GET /content/{id} request.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

type contentInput struct {
	Title string          `json:"title"`
	Body  json.RawMessage `json:"body"`
}

// PutContent handles the PUT /content/{id} request.
func (s *Server) PutContent(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var in contentInput
	if err := json.Unmarshal(raw, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	content := &domain.Content{
		ID:        chi.URLParam(r, "id"),
		Title:     in.Title,
		Body:      in.Body,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Store.Save(r.Context(), content); err != nil {
		s.storeError(w, r, err)
		return
	}
	// Stores without Watch still reach SSE clients of this instance.
	if _, ok := s.Store.(ports.Watchable); !ok {
		s.Streams.Broadcast(content.ID, changeMessage(content.ID))
	}

	writeJSON(w, http.StatusOK, content)
}

// DeleteContent handles the DELETE /content/{id} request.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.storeError(w, r, err)
		return
	}
	if _, ok := s.Store.(ports.Watchable); !ok {
		s.Streams.Broadcast(id, changeMessage(id))
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetContentHTML handles the GET /content/{id}/html request.
// The issue count is reported in the X-Richtext-Issues header.
func (s *Server) GetContentHTML(w http.ResponseWriter, r *http.Request) {
	content, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	res, err := s.Engine.RenderJSON(r.Context(), content.Body)
	if err != nil {
		s.logger.Error("GetContentHTML: stored body is not a document", "error", err, "content_id", content.ID)
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Richtext-Issues", strconv.Itoa(len(res.Issues)))
	io.WriteString(w, res.HTML)
}

// Watch pumps change notifications from a watchable store into Streams until
// ctx is done. It returns immediately when the store cannot be watched.
func (s *Server) Watch(ctx context.Context) error {
	w, ok := s.Store.(ports.Watchable)
	if !ok {
		return fmt.Errorf("content store does not support watching")
	}

	changes, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch content store: %w", err)
	}

	go func() {
		for id := range changes {
			s.logger.Debug("content changed", "content_id", id)
			s.Streams.Broadcast(id, changeMessage(id))
		}
	}()
	return nil
}

func changeMessage(id string) string {
	b, _ := json.Marshal(map[string]string{"id": id})
	return string(b)
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}
	if s.Store == nil {
		writeError(w, r, http.StatusNotImplemented, errors.New("no content store configured"))
		return
	}

	contentID := r.URL.Query().Get("id")
	ch, cancel := s.Streams.Subscribe(contentID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: client subscribed", "content_id", contentID, "request_id", RequestID(r.Context()))

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "request_id", RequestID(r.Context()))
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: content\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrContentNotFound) {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, domain.ErrInvalidDocument) || errors.Is(err, domain.ErrInvalidID) {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.logger.Error("content store failed", "error", err, "request_id", RequestID(r.Context()))
	writeError(w, r, http.StatusInternalServerError, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error":      err.Error(),
		"request_id": RequestID(r.Context()),
	})
}
