package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Address() != "localhost:8501" {
		t.Errorf("Address() = %q, want localhost:8501", cfg.Address())
	}
	if cfg.Data.CSVFile != "data.csv" {
		t.Errorf("CSVFile = %q, want data.csv", cfg.Data.CSVFile)
	}
	if cfg.Dashboard.Profile != "analysis" {
		t.Errorf("Profile = %q, want analysis", cfg.Dashboard.Profile)
	}
	if cfg.Dashboard.PreviewRows != 20 {
		t.Errorf("PreviewRows = %d, want 20", cfg.Dashboard.PreviewRows)
	}
	if cfg.Dashboard.ViewTTL != 5*time.Minute {
		t.Errorf("ViewTTL = %v, want 5m", cfg.Dashboard.ViewTTL)
	}
	if cfg.Data.LoadTimeout != 30*time.Second {
		t.Errorf("LoadTimeout = %v, want 30s", cfg.Data.LoadTimeout)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CSV_FILE", "/data/supermarket_sales.csv")
	t.Setenv("DASHBOARD_PROFILE", "brief")
	t.Setenv("DASHBOARD_VIEW_CACHE_TTL", "90s")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Data.CSVFile != "/data/supermarket_sales.csv" {
		t.Errorf("CSVFile = %q", cfg.Data.CSVFile)
	}
	if cfg.Dashboard.Profile != "brief" {
		t.Errorf("Profile = %q, want brief", cfg.Dashboard.Profile)
	}
	if cfg.Dashboard.ViewTTL != 90*time.Second {
		t.Errorf("ViewTTL = %v, want 90s", cfg.Dashboard.ViewTTL)
	}
	want := []string{"http://a.example", "http://b.example"}
	if diff := cmp.Diff(want, cfg.Security.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env := "CSV_FILE=from-dotenv.csv\nDASHBOARD_PREVIEW_ROWS=5\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	// Real environment wins over .env.
	t.Setenv("DASHBOARD_PREVIEW_ROWS", "7")
	// Registered so the value godotenv sets is removed after the test.
	t.Setenv("CSV_FILE", "")
	os.Unsetenv("CSV_FILE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.CSVFile != "from-dotenv.csv" {
		t.Errorf("CSVFile = %q, want from-dotenv.csv", cfg.Data.CSVFile)
	}
	if cfg.Dashboard.PreviewRows != 7 {
		t.Errorf("PreviewRows = %d, want 7", cfg.Dashboard.PreviewRows)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"SERVER_PORT": "70000"}, "server port"},
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "invalid log level"},
		{"profile", map[string]string{"DASHBOARD_PROFILE": "fancy"}, "invalid dashboard profile"},
		{"preview rows", map[string]string{"DASHBOARD_PREVIEW_ROWS": "0"}, "preview rows"},
		{"rate limit", map[string]string{"SECURITY_RATE_LIMIT_RPS": "-1"}, "rate limit RPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{}
	err := cfg.validate()
	if err == nil {
		t.Fatal("validate() should fail on a zero config")
	}
	for _, want := range []string{"server port", "CSV file", "log level", "dashboard profile"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validate() error should mention %q: %v", want, err)
		}
	}
}
