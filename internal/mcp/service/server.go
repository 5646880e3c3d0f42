// Package service hosts the MCP server that exposes the adventure engine's
// tools over stdio or streamable HTTP.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hollowvale/adventure-engine/internal/game/service"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Adventure Engine MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP listen address, used when Transport is http.
}

// Server hosts the MCP server over an engine.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server with every engine tool registered.
func New(engine *service.Engine) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcpServer.AddReceivingMiddleware(tracingMiddleware)
	registerTools(mcpServer, engine)

	return &Server{mcpServer: mcpServer}, nil
}

// tracingMiddleware wraps every inbound MCP request in a span named after the
// JSON-RPC method.
func tracingMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	tracer := otel.Tracer("mcp")
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		ctx, span := tracer.Start(ctx, method)
		defer span.End()

		if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil {
			span.SetAttributes(attribute.String("mcp.tool", call.Params.Name))
		}

		result, err := next(ctx, method, req)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return result, err
	}
}

// Run creates and serves an MCP server for the engine until the context ends.
func Run(ctx context.Context, engine *service.Engine, cfg Config) error {
	server, err := New(engine)
	if err != nil {
		return err
	}

	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
