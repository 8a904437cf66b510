package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/internal/presentation/graph"
	"github.com/aretw0/montage/internal/validator"
	"github.com/aretw0/montage/pkg/adapters/fixture"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphResourceURI serves the loader's graph when one is configured.
const GraphResourceURI = "montage://graph"

// Server wraps a Synthesizer and exposes it as an MCP Server.
type Server struct {
	engine    ports.Synthesizer
	loader    ports.GraphLoader
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The loader is optional: with
// one, tools may omit their graph argument and act on the loaded graph.
func NewServer(engine ports.Synthesizer, loader ports.GraphLoader) *Server {
	s := &Server{
		engine:    engine,
		loader:    loader,
		mcpServer: server.NewMCPServer("montage-mcp", strings.TrimSpace(montage.Version)),
	}
	s.registerTools()
	if loader != nil {
		s.registerResources()
	}
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, stopping MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const graphArgDescription = "Graph document (JSON or YAML). Optional when the server was started with a graph file."

func (s *Server) registerTools() {
	// TOOL: synthesize_transition
	s.mcpServer.AddTool(mcp.NewTool("synthesize_transition",
		mcp.WithDescription("Synthesize the transition graph of a baked execution graph."),
		mcp.WithString("graph", mcp.Description(graphArgDescription)),
		mcp.WithString("selection", mcp.Description("JSON selection tree restricting synthesis (optional)")),
		mcp.WithString("format", mcp.Description("Output format: json (default) or yaml"), mcp.Enum("json", "yaml")),
	), s.handleSynthesize)

	// TOOL: trace_graph
	s.mcpServer.AddTool(mcp.NewTool("trace_graph",
		mcp.WithDescription("Extract the trace chain of every value in the graph's final state."),
		mcp.WithString("graph", mcp.Description(graphArgDescription)),
	), s.handleTrace)

	// TOOL: validate_graph
	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Check that a graph is well formed and baked."),
		mcp.WithString("graph", mcp.Description(graphArgDescription)),
	), s.handleValidate)

	// TOOL: render_mermaid
	s.mcpServer.AddTool(mcp.NewTool("render_mermaid",
		mcp.WithDescription("Render a graph, or its synthesized transition, as a Mermaid diagram."),
		mcp.WithString("graph", mcp.Description(graphArgDescription)),
		mcp.WithBoolean("transition", mcp.Description("Render the synthesized transition instead of the source graph")),
	), s.handleMermaid)
}

// input resolves the graph argument, falling back to the loader.
func (s *Server) input(ctx context.Context, request mcp.CallToolRequest) (*domain.Graph, *domain.Selection, error) {
	text := strings.TrimSpace(request.GetString("graph", ""))
	if text == "" {
		if s.loader == nil {
			return nil, nil, errors.New("graph argument is required")
		}
		g, err := s.loader.LoadGraph(ctx)
		if err != nil {
			return nil, nil, err
		}
		var sel *domain.Selection
		if sl, ok := s.loader.(ports.SelectionLoader); ok {
			if sel, err = sl.LoadSelection(ctx); err != nil {
				return nil, nil, err
			}
		}
		return g, sel, nil
	}

	format := fixture.FormatYAML
	if strings.HasPrefix(text, "{") {
		format = fixture.FormatJSON
	}
	return fixture.Parse([]byte(text), format)
}

func (s *Server) handleSynthesize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, sel, err := s.input(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid graph: %v", err)), nil
	}
	if raw := request.GetString("selection", ""); raw != "" {
		sel = &domain.Selection{}
		if err := json.Unmarshal([]byte(raw), sel); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid selection: %v", err)), nil
		}
	}

	var v domain.Vertex
	if sel != nil {
		v, err = s.engine.CreateTransitionFromSelection(ctx, g, *sel)
	} else {
		v, err = s.engine.CreateTransition(ctx, g)
	}
	if err != nil {
		slog.Warn("MCP Synthesize: rejected", "graph", g.ID(), "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("synthesis failed: %v", err)), nil
	}

	format := fixture.FormatJSON
	if request.GetString("format", "") == string(fixture.FormatYAML) {
		format = fixture.FormatYAML
	}
	var buf bytes.Buffer
	if err := fixture.Encode(&buf, v, format); err != nil {
		return nil, fmt.Errorf("encode transition: %w", err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, _, err := s.input(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid graph: %v", err)), nil
	}

	chains, err := s.engine.Trace(ctx, g)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trace failed: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(dto.FromChains(chains))
	if err != nil {
		return nil, fmt.Errorf("encode chains: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, sel, err := s.input(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid graph: %v", err)), nil
	}

	issues := validator.Issues(validator.ValidateGraph(g))
	if sel != nil {
		issues = append(issues, validator.Issues(validator.ValidateSelection(g, *sel))...)
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("graph %q is valid", g.ID())), nil
	}

	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString("- ")
		sb.WriteString(issue.Error())
		sb.WriteString("\n")
	}
	return mcp.NewToolResultError(sb.String()), nil
}

func (s *Server) handleMermaid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, _, err := s.input(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid graph: %v", err)), nil
	}

	if request.GetBool("transition", false) {
		v, err := s.engine.CreateTransition(ctx, g)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("synthesis failed: %v", err)), nil
		}
		g = v.(*domain.Graph)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(g, nil)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: montage://graph
	s.mcpServer.AddResource(mcp.NewResource(GraphResourceURI, "Loaded Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		g, err := s.loader.LoadGraph(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load graph: %w", err)
		}
		jsonBytes, err := json.Marshal(dto.NewDocument(g, nil))
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
