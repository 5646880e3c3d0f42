package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const httpShutdownTimeout = 5 * time.Second

// serveHTTP serves MCP over streamable HTTP until the context ends. The
// handler is stateful: each client session gets its own server-side state,
// all backed by the same engine.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if addr == "" {
		addr = "localhost:8081"
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", newStreamableHandler(s))
	mux.HandleFunc("/mcp/health", handleHealth)

	httpServer := &http.Server{Addr: addr, Handler: mux}

	log.Printf("serving MCP over HTTP on %s", addr)
	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// newStreamableHandler builds the streamable HTTP handler backed by this
// server.
func newStreamableHandler(s *Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// handleHealth handles GET /mcp/health for health checks.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
