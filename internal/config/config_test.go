package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := cfg.GetString("server.listen_address"); got != "0.0.0.0:8080" {
		t.Errorf("server.listen_address = %q", got)
	}
	if got := cfg.GetInt("server.min_text_length"); got != 10 {
		t.Errorf("server.min_text_length = %d, want 10", got)
	}
	if got := cfg.GetString("storage.type"); got != "sqlite" {
		t.Errorf("storage.type = %q, want sqlite", got)
	}
	if got := cfg.GetString("narrative.provider"); got != "none" {
		t.Errorf("narrative.provider = %q, want none", got)
	}
	if !cfg.GetBool("cache.enabled") {
		t.Error("cache.enabled default = false, want true")
	}

	ttl, err := cfg.GetDuration("cache.ttl")
	if err != nil {
		t.Fatalf("GetDuration(cache.ttl): %v", err)
	}
	if ttl != 15*time.Minute {
		t.Errorf("cache.ttl = %v, want 15m", ttl)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SCAM_DETECTOR_STORAGE_TYPE", "postgres")
	t.Setenv("SCAM_DETECTOR_AUTH_SECRET", "from-env")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := cfg.GetString("storage.type"); got != "postgres" {
		t.Errorf("storage.type = %q, want postgres", got)
	}
	if got := cfg.GetString("auth.secret"); got != "from-env" {
		t.Errorf("auth.secret = %q, want from-env", got)
	}
}
