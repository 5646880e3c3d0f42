// Package seed loads adventure template files into the engine's store.
package seed

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	platformcmd "github.com/hollowvale/adventure-engine/internal/platform/cmd"
	"github.com/hollowvale/adventure-engine/internal/storage"
	"github.com/hollowvale/adventure-engine/internal/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"ADVENTURE_ENGINE_DB_PATH"  envDefault:"adventure.db"`
	Dir    string `env:"ADVENTURE_ENGINE_SEED_DIR" envDefault:"adventures"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database file")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding adventure template files")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads every adventure template under cfg.Dir and upserts it into the
// store. Templates may be JSON or YAML; file names are not significant.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if cfg.Dir == "" {
		return fmt.Errorf("template directory is required")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return loadDir(ctx, store, cfg.Dir, out)
}

func loadDir(ctx context.Context, store storage.Store, dir string, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read template directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no adventure templates found in %s", dir)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		adventure, err := LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := store.PutAdventure(ctx, adventure); err != nil {
			return fmt.Errorf("%s: store adventure: %w", name, err)
		}
		fmt.Fprintf(out, "seeded %s (%s)\n", adventure.ID, adventure.Title)
	}
	return nil
}

// LoadFile reads and validates a single adventure template.
func LoadFile(path string) (domain.Adventure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Adventure{}, err
	}

	var adventure domain.Adventure
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &adventure); err != nil {
			return domain.Adventure{}, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		adventure, err = decodeYAML(data)
		if err != nil {
			return domain.Adventure{}, err
		}
	default:
		return domain.Adventure{}, fmt.Errorf("unsupported template extension %q", filepath.Ext(path))
	}

	if err := Validate(adventure); err != nil {
		return domain.Adventure{}, err
	}
	return adventure, nil
}

// decodeYAML decodes a YAML template through a JSON round-trip so the
// domain types' json tags stay the single naming source.
func decodeYAML(data []byte) (domain.Adventure, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Adventure{}, fmt.Errorf("decode YAML: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("convert YAML: %w", err)
	}
	var adventure domain.Adventure
	if err := json.Unmarshal(encoded, &adventure); err != nil {
		return domain.Adventure{}, fmt.Errorf("convert YAML: %w", err)
	}
	return adventure, nil
}

// Validate checks that an adventure template is loadable: identifiers and
// title present, stat bounds coherent, no duplicate stat names.
func Validate(adventure domain.Adventure) error {
	if strings.TrimSpace(adventure.ID) == "" {
		return fmt.Errorf("adventure id is required")
	}
	if strings.TrimSpace(adventure.Title) == "" {
		return fmt.Errorf("adventure title is required")
	}
	if adventure.StartingHP < 0 {
		return fmt.Errorf("starting_hp must not be negative")
	}

	seen := map[string]bool{}
	for _, stat := range adventure.Stats {
		name := strings.TrimSpace(stat.Name)
		if name == "" {
			return fmt.Errorf("stat name is required")
		}
		if seen[name] {
			return fmt.Errorf("duplicate stat %q", name)
		}
		seen[name] = true
		if stat.MinValue > stat.MaxValue {
			return fmt.Errorf("stat %q: min_value %d exceeds max_value %d", name, stat.MinValue, stat.MaxValue)
		}
		if stat.DefaultValue < stat.MinValue || stat.DefaultValue > stat.MaxValue {
			return fmt.Errorf("stat %q: default_value %d outside [%d, %d]", name, stat.DefaultValue, stat.MinValue, stat.MaxValue)
		}
	}
	return nil
}
