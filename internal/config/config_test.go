package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load がエラーを返した: %v", err)
	}

	if cfg.ServerPort != "8000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8000")
	}
	if cfg.CORSAllowedOrigin != "*" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "*")
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
	if cfg.FetchMaxSize != 5*1024*1024 {
		t.Errorf("FetchMaxSize = %d, want %d", cfg.FetchMaxSize, 5*1024*1024)
	}
	if cfg.UserAgent == "" {
		t.Error("UserAgent が空であってはならない")
	}
	if cfg.FivechUserAgent == "" {
		t.Error("FivechUserAgent が空であってはならない")
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("FETCH_TIMEOUT", "10s")
	t.Setenv("RATE_LIMIT_GENERAL", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load がエラーを返した: %v", err)
	}

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9000")
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.RateLimitGeneral != 60 {
		t.Errorf("RateLimitGeneral = %d, want 60", cfg.RateLimitGeneral)
	}
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("RATE_LIMIT_GENERAL", "abc")
	t.Setenv("FETCH_MAX_SIZE", "xyz")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load がエラーを返した: %v", err)
	}

	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want デフォルトの30s", cfg.FetchTimeout)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want デフォルトの120", cfg.RateLimitGeneral)
	}
	if cfg.FetchMaxSize != 5*1024*1024 {
		t.Errorf("FetchMaxSize = %d, want デフォルト値", cfg.FetchMaxSize)
	}
}
