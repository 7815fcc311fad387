package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `telegram:
  token: "test-token"
  groups: [-1001, -1002]
data:
  results: https://liga.example/results.csv
  schedule: https://liga.example/schedule.csv
  calendar: https://liga.example/calendar.csv
schedule:
  results: "08:00"
  schedule: "20:30"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Telegram.Token != "test-token" {
		t.Errorf("token = %q, want %q", cfg.Telegram.Token, "test-token")
	}
	if diff := cmp.Diff([]int64{-1001, -1002}, cfg.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if cfg.Data.Results != "https://liga.example/results.csv" {
		t.Errorf("data.results = %q", cfg.Data.Results)
	}
	if cfg.Schedule.Schedule != "20:30" {
		t.Errorf("schedule.schedule = %q", cfg.Schedule.Schedule)
	}
	// defaults
	if cfg.Database.Path != "./data/bot.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing token",
			content: `schedule:
  results: "08:00"
  schedule: "20:00"
`,
		},
		{
			name: "invalid trigger time",
			content: `telegram:
  token: tok
schedule:
  results: "25:00"
  schedule: "20:00"
`,
		},
		{
			name: "trigger time without minutes",
			content: `telegram:
  token: tok
schedule:
  results: "08"
  schedule: "20:00"
`,
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestAddGroup(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.AddGroup(-1003) {
		t.Error("adding a new group should report true")
	}
	if cfg.AddGroup(-1003) {
		t.Error("adding the same group twice should report false")
	}
	if cfg.AddGroup(-1001) {
		t.Error("adding a preexisting group should report false")
	}

	if diff := cmp.Diff([]int64{-1001, -1002, -1003}, cfg.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg.AddGroup(-1003)
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if diff := cmp.Diff([]int64{-1001, -1002, -1003}, reloaded.Groups()); diff != "" {
		t.Errorf("groups mismatch after round trip (-want +got):\n%s", diff)
	}
	if reloaded.Telegram.Token != cfg.Telegram.Token {
		t.Errorf("token lost on round trip: %q", reloaded.Telegram.Token)
	}
	if reloaded.Data.Calendar != cfg.Data.Calendar {
		t.Errorf("data.calendar lost on round trip: %q", reloaded.Data.Calendar)
	}
}
