package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

type testDatabase struct {
	Endpoint    string        `mapstructure:"endpoint"`
	LegacyPatch bool          `mapstructure:"legacy_patch"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Database      testDatabase `mapstructure:"database"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	var c ServiceConfig
	c.ApplyDefaults()
	if c.Name != "firekit" {
		t.Errorf("expected name firekit, got %q", c.Name)
	}
	if c.Environment != "development" {
		t.Errorf("expected environment development, got %q", c.Environment)
	}
	if c.Logging.Level != "info" {
		t.Errorf("expected logging defaults applied, got level %q", c.Logging.Level)
	}
	if c.GetServiceConfig() != &c {
		t.Error("expected GetServiceConfig to return receiver")
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		wantErr string
	}{
		{"valid", "production", "info", ""},
		{"bad environment", "qa", "info", "config.environment"},
		{"bad logging", "staging", "loud", "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := ServiceConfig{Environment: tc.env}
			c.Logging.Level = tc.level
			c.Logging.ApplyDefaults()
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "firekit.yml", `
environment: staging
logging:
  level: debug
database:
  endpoint: https://from-file.firebaseio.com/
  legacy_patch: true
  timeout: 5s
`)

	var cfg testConfig
	if err := LoadConfig("firekit", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment staging, got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Database.Endpoint != "https://from-file.firebaseio.com/" {
		t.Errorf("unexpected endpoint %q", cfg.Database.Endpoint)
	}
	if !cfg.Database.LegacyPatch {
		t.Error("expected legacy_patch true")
	}
	if cfg.Database.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Database.Timeout)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "firekit.yml", "database:\n  endpoint: https://from-file.firebaseio.com/\n")
	t.Setenv("FIREKIT_DATABASE_ENDPOINT", "https://from-env.firebaseio.com/")
	t.Setenv("FIREKIT_DATABASE_USER_AGENT", "agent/1")
	t.Setenv("OTHER_DATABASE_ENDPOINT", "https://ignored.firebaseio.com/")

	var cfg testConfig
	if err := LoadConfig("firekit", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Endpoint != "https://from-env.firebaseio.com/" {
		t.Errorf("expected env to override file, got %q", cfg.Database.Endpoint)
	}
	if cfg.Database.UserAgent != "agent/1" {
		t.Errorf("expected underscore key from env, got %q", cfg.Database.UserAgent)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "FIREKIT_DATABASE_TIMEOUT=7s\n")
	// Registered for cleanup so the variable loaded from .env does not leak.
	t.Setenv("FIREKIT_DATABASE_TIMEOUT", "")
	os.Unsetenv("FIREKIT_DATABASE_TIMEOUT")

	var cfg testConfig
	if err := LoadConfig("firekit", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Timeout != 7*time.Second {
		t.Errorf("expected timeout from .env, got %v", cfg.Database.Timeout)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "firekit.yml", "database:\n  endpoint: https://from-file.firebaseio.com/\n  user_agent: file-agent\n")
	t.Setenv("FIREKIT_DATABASE_ENDPOINT", "https://from-env.firebaseio.com/")

	fs := pflag.NewFlagSet("firekit", pflag.ContinueOnError)
	fs.String("endpoint", "", "")
	fs.String("user-agent", "flag-default", "")
	fs.Bool("legacy-patch", false, "")
	if err := fs.Parse([]string{"--endpoint", "https://from-flag.firebaseio.com/", "--legacy-patch"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	var cfg testConfig
	err := LoadConfig("firekit", &cfg,
		WithConfigFile(path),
		WithEnvFile(filepath.Join(dir, "none.env")),
		WithFlags(fs, map[string]string{
			"database.endpoint":     "endpoint",
			"database.user_agent":   "user-agent",
			"database.legacy_patch": "legacy-patch",
		}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Endpoint != "https://from-flag.firebaseio.com/" {
		t.Errorf("expected changed flag to win, got %q", cfg.Database.Endpoint)
	}
	if cfg.Database.UserAgent != "file-agent" {
		t.Errorf("expected file value over flag default, got %q", cfg.Database.UserAgent)
	}
	if !cfg.Database.LegacyPatch {
		t.Error("expected legacy_patch from flag")
	}
}

func TestLoadConfigUnknownFlag(t *testing.T) {
	fs := pflag.NewFlagSet("firekit", pflag.ContinueOnError)
	var cfg testConfig
	err := LoadConfig("firekit", &cfg,
		WithFileSystem(&mockFS{}),
		WithFlags(fs, map[string]string{"database.endpoint": "missing"}),
	)
	if err == nil || !strings.Contains(err.Error(), "--missing") {
		t.Errorf("expected unknown flag error, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "firekit.yml", "database: [unclosed\n")

	var cfg testConfig
	if err := LoadConfig("firekit", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files     map[string]bool
	configDir string
}

func (m *mockFS) Exists(path string) bool        { return m.files[path] }
func (m *mockFS) LoadEnv(string) error           { return nil }
func (m *mockFS) UserConfigDir() (string, error) { return m.configDir, nil }

func TestResolverWithMockFS(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		wantConfig string
		wantEnv    string
	}{
		{"working dir", []string{"./firekit.yml"}, "./firekit.yml", ""},
		{"config dir", []string{"./config/firekit.yml", "./config/.env"}, "./config/firekit.yml", "./config/.env"},
		{"user config dir", []string{"/home/u/.config/firekit/firekit.yml"}, "/home/u/.config/firekit/firekit.yml", ""},
		{"service env first", []string{"./.env", "./.env.firekit"}, "", "./.env.firekit"},
		{"nothing", nil, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &mockFS{files: map[string]bool{}, configDir: "/home/u/.config"}
			for _, f := range tc.files {
				fs.files[f] = true
			}
			resolver := &Resolver{FileSystem: fs}
			files := resolver.ResolveFiles("firekit", LoaderConfig{})
			if files.ConfigFile != tc.wantConfig {
				t.Errorf("config file = %q, want %q", files.ConfigFile, tc.wantConfig)
			}
			if files.EnvFile != tc.wantEnv {
				t.Errorf("env file = %q, want %q", files.EnvFile, tc.wantEnv)
			}
		})
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("firekit", LoaderConfig{ConfigFile: "/etc/fk.yml", EnvFile: "/etc/fk.env"})
	if files.ConfigFile != "/etc/fk.yml" || files.EnvFile != "/etc/fk.env" {
		t.Errorf("expected explicit paths kept, got %+v", files)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("DATABASE_HTTP_USER_AGENT")
	want := map[string]bool{
		"database_http_user_agent": true,
		"database.http.user.agent": true,
		"database.http_user_agent": true,
		"database.http.user_agent": true,
	}
	for _, v := range got {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Errorf("missing variants %v in %v", want, got)
	}

	if got := generateEnvKeyVariants("ENDPOINT"); len(got) != 1 || got[0] != "endpoint" {
		t.Errorf("expected single variant, got %v", got)
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("firekit"); got != "FIREKIT_" {
		t.Errorf("got %q", got)
	}
	if got := envPrefix("my-tool"); got != "MY_TOOL_" {
		t.Errorf("got %q", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/firekit.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/firekit.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
