// Package mcp parses MCP command flags and serves the adventure engine over
// stdio or streamable HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"

	gameservice "github.com/hollowvale/adventure-engine/internal/game/service"
	mcpservice "github.com/hollowvale/adventure-engine/internal/mcp/service"
	platformcmd "github.com/hollowvale/adventure-engine/internal/platform/cmd"
	"github.com/hollowvale/adventure-engine/internal/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath    string `env:"ADVENTURE_ENGINE_DB_PATH"       envDefault:"adventure.db"`
	Transport string `env:"ADVENTURE_ENGINE_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"ADVENTURE_ENGINE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database file")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (for http transport)")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the store and serves MCP until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("database path is required")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	engine := gameservice.New(store)

	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, engine, mcpservice.Config{
			Transport: mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
		})
	})
}
