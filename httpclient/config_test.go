package httpclient

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/firekit/resilience"
	"github.com/kbukum/firekit/security"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "http" {
		t.Errorf("expected default name http, got %q", cfg.Name)
	}
	if !strings.HasPrefix(cfg.UserAgent, "firekit/") {
		t.Errorf("expected firekit user agent, got %q", cfg.UserAgent)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, UserAgent: "custom"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "custom" {
		t.Errorf("expected custom user agent, got %q", cfg.UserAgent)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timeout: 10 * time.Second}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"invalid tls", Config{Timeout: time.Second, TLS: &security.TLSConfig{MinVersion: "1.1"}}, true},
		{"negative burst", Config{Timeout: time.Second, RateLimiter: &resilience.RateLimiterConfig{Rate: 1, Burst: -1}}, true},
		{"rate limiter", Config{Timeout: time.Second, RateLimiter: &resilience.RateLimiterConfig{Rate: 5, Burst: 2}}, false},
		{"http2", Config{Timeout: time.Second, HTTP2: &HTTP2Config{ReadIdleTimeout: time.Second}}, false},
		{"negative http2 ping", Config{Timeout: time.Second, HTTP2: &HTTP2Config{PingTimeout: -1}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Timeout: -time.Second}); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestNew_InvalidTLSFile(t *testing.T) {
	_, err := New(Config{TLS: &security.TLSConfig{CAFile: "/nonexistent/ca.pem"}})
	if err == nil {
		t.Fatal("expected error for missing CA file")
	}
}
