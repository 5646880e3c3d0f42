package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type entrypointConfig struct {
	DBPath    string `env:"ENTRYPOINT_TEST_DB_PATH" envDefault:"engine.db"`
	Transport string `env:"ENTRYPOINT_TEST_TRANSPORT" envDefault:"stdio"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("ENTRYPOINT_TEST_DB_PATH", "env.db")
	t.Setenv("ENTRYPOINT_TEST_TRANSPORT", "env-transport")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var cfg entrypointConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "db path")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport")

	if err := ParseArgs(fs, []string{"-db", "flag.db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected flag value for db path, got %q", cfg.DBPath)
	}
	if cfg.Transport != "env-transport" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("ENTRYPOINT_TEST_TRANSPORT", "http")

	var cfg entrypointConfig
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", "", "db path")
	fs.StringVar(&cfg.Transport, "transport", "", "transport")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-db", "flag.db"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected parsed flag db path, got %q", cfg.DBPath)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceMCP, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	want := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), ServiceSeed, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}
}
