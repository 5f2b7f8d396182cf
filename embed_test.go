package phonebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smileynet/phonebook/internal/config"
)

func TestExampleConfig_MatchesDefaults(t *testing.T) {
	// Given: the embedded example written to disk
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, ExampleConfig, 0o644); err != nil {
		t.Fatal(err)
	}

	// When: it is loaded like a user config
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Then: every value equals the built-in default
	if *cfg != config.DefaultConfig() {
		t.Errorf("example config = %+v, want defaults %+v", *cfg, config.DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
