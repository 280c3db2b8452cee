package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/collecty/richtext"
	"github.com/collecty/richtext/internal/logging"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const resourceScheme = "content://"

// RenderResponse aligns with the HTTP adapter's render response.
type RenderResponse struct {
	HTML   string         `json:"html" jsonschema_description:"The rendered HTML fragment"`
	Issues []domain.Issue `json:"issues" jsonschema_description:"Problems found in the document; rendering continued past them"`
}

// ValidateResponse lists every problem of a document.
type ValidateResponse struct {
	Valid  bool           `json:"valid" jsonschema_description:"True when no issues were found"`
	Issues []domain.Issue `json:"issues" jsonschema_description:"Problems found in the document"`
}

type documentArgs struct {
	Document string `json:"document"`
}

// Server wraps the renderer and exposes it as an MCP Server.
type Server struct {
	engine    ports.DocumentEngine
	store     ports.ContentStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes stored content through tools and content:// resources.
func WithStore(store ports.ContentStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.DocumentEngine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("richtext-mcp", strings.TrimSpace(richtext.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	if s.store != nil {
		s.registerStoreTools()
		s.registerResources()
	}
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: render_document
	renderTool := mcp.NewTool("render_document",
		mcp.WithDescription("Render a rich-text document (JSON node, list of nodes or null) to an HTML fragment."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document as a JSON string")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRender))

	// TOOL: validate_document
	validateTool := mcp.NewTool("validate_document",
		mcp.WithDescription("List every problem of a rich-text document without rendering it."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document as a JSON string")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) registerStoreTools() {
	// TOOL: get_content_html
	s.mcpServer.AddTool(mcp.NewTool("get_content_html",
		mcp.WithDescription("Render a stored content record to HTML."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Content ID")),
	), s.handleContentHTML)

	// TOOL: list_content
	s.mcpServer.AddTool(mcp.NewTool("list_content",
		mcp.WithDescription("List the IDs of stored content records."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args documentArgs) (RenderResponse, error) {
	res, err := s.engine.RenderJSON(ctx, []byte(args.Document))
	if err != nil {
		s.logger.Warn("MCP Render: invalid document", "error", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	issues := res.Issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	return RenderResponse{HTML: res.HTML, Issues: issues}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args documentArgs) (ValidateResponse, error) {
	issues, err := s.engine.ValidateJSON(ctx, []byte(args.Document))
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("validate failed: %w", err)
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return ValidateResponse{Valid: len(issues) == 0, Issues: issues}, nil
}

func (s *Server) handleContentHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	html, err := s.contentHTML(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(html), nil
}

func (s *Server) contentHTML(ctx context.Context, id string) (string, error) {
	content, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return "", fmt.Errorf("content %q not found", id)
		}
		return "", fmt.Errorf("failed to load content: %w", err)
	}
	res, err := s.engine.RenderJSON(ctx, content.Body)
	if err != nil {
		return "", fmt.Errorf("stored body is not a document: %w", err)
	}
	return res.HTML, nil
}

func (s *Server) registerResources() {
	// EXPOSE: content://{id}
	template := mcp.NewResourceTemplate(resourceScheme+"{id}", "Rendered Content",
		mcp.WithTemplateDescription("The HTML fragment of a stored content record"),
		mcp.WithTemplateMIMEType("text/html"),
	)
	s.mcpServer.AddResourceTemplate(template, s.readContent)
}

func (s *Server) readContent(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, resourceScheme)
	if id == "" || id == uri {
		return nil, fmt.Errorf("invalid content uri %q", uri)
	}

	html, err := s.contentHTML(ctx, id)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/html",
			Text:     html,
		},
	}, nil
}
