package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/errors"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goflow.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Strategy.Algorithm != layout.AlgorithmLayered {
		t.Errorf("default algorithm = %q, want layered", cfg.Strategy.Algorithm)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[strategy]
algorithm = "force"
ranksep = 120.0

[cache]
backend = "memory"
size = 64

[serve]
addr = ":9999"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Strategy.Algorithm != layout.AlgorithmForce {
		t.Errorf("algorithm = %q, want force", cfg.Strategy.Algorithm)
	}
	if cfg.Strategy.RankSep != 120 {
		t.Errorf("ranksep = %v, want 120", cfg.Strategy.RankSep)
	}
	// Untouched sections keep defaults
	if cfg.Strategy.NodeSep != layout.DefaultNodeSep {
		t.Errorf("nodesep = %v, want default", cfg.Strategy.NodeSep)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.Size != 64 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Serve.Addr)
	}
}

func TestLoadNormalizesStrategy(t *testing.T) {
	path := writeConfig(t, `
[strategy]
algorithm = "constraint-layered"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Strategy.Algorithm != layout.AlgorithmConstraint {
		t.Errorf("algorithm = %q, want constraint", cfg.Strategy.Algorithm)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalidToml(t *testing.T) {
	path := writeConfig(t, "strategy = [broken")
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "tape"
`)
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
`)
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
