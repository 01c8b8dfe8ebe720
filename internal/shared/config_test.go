package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Steam.Locale != "english" {
		t.Errorf("expected default locale 'english', got %q", config.Steam.Locale)
	}
	if config.Database.Path != "steamdex.db" {
		t.Errorf("expected default database path 'steamdex.db', got %q", config.Database.Path)
	}
	if config.Database.MaxAgeHours != 24 {
		t.Errorf("expected default max age 24h, got %d", config.Database.MaxAgeHours)
	}
	if !config.SteamDB.Enabled {
		t.Error("expected steamdb source enabled by default")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[steam]
api_key = "TESTKEY"
locale = "german"

[database]
path = "/tmp/cache.db"
max_age_hours = 48

[steamdb]
enabled = false
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Steam.APIKey != "TESTKEY" {
			t.Errorf("expected api key 'TESTKEY', got %q", config.Steam.APIKey)
		}
		if config.Steam.Locale != "german" {
			t.Errorf("expected locale 'german', got %q", config.Steam.Locale)
		}
		if config.Database.MaxAgeHours != 48 {
			t.Errorf("expected max age 48, got %d", config.Database.MaxAgeHours)
		}
		if config.SteamDB.Enabled {
			t.Error("expected steamdb source disabled")
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config file already exists")
	}
}
