package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `server: {}
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.Upload.MaxBytes != DefaultMaxUploadBytes {
		t.Errorf("upload.max_bytes: got %d, want %d", cfg.Server.Upload.MaxBytes, DefaultMaxUploadBytes)
	}
	if time.Duration(cfg.Server.Stream.Interval) != DefaultStreamInterval {
		t.Errorf("stream.interval: got %v, want %v", cfg.Server.Stream.Interval, DefaultStreamInterval)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  auth:
    mode: apikey
    key_env: UPLOAD_KEY
    header: x-upload-key
  upload:
    max_bytes: 1048576
  stream:
    interval: 250ms
  watch:
    path: /data/listings.csv
  webhooks:
    - type: slack
      url_env: SLACK_WEBHOOK_URL
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 9091 {
		t.Errorf("http_port: got %d, want 9091", cfg.Server.HTTPPort)
	}
	if cfg.Server.Auth.Mode != "apikey" {
		t.Errorf("auth.mode: got %q, want apikey", cfg.Server.Auth.Mode)
	}
	if cfg.Server.Auth.EffectiveHeader() != "x-upload-key" {
		t.Errorf("header: got %q, want x-upload-key", cfg.Server.Auth.EffectiveHeader())
	}
	if cfg.Server.Upload.MaxBytes != 1048576 {
		t.Errorf("upload.max_bytes: got %d, want 1048576", cfg.Server.Upload.MaxBytes)
	}
	if time.Duration(cfg.Server.Stream.Interval) != 250*time.Millisecond {
		t.Errorf("stream.interval: got %v, want 250ms", cfg.Server.Stream.Interval)
	}
	if cfg.Server.Watch.Path != "/data/listings.csv" {
		t.Errorf("watch.path: got %q", cfg.Server.Watch.Path)
	}
	if len(cfg.Server.Webhooks) != 1 || cfg.Server.Webhooks[0].Type != "slack" {
		t.Errorf("webhooks: got %+v", cfg.Server.Webhooks)
	}
}

func TestLoad_DefaultHeader(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: UPLOAD_KEY
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Auth.EffectiveHeader() != "x-api-key" {
		t.Errorf("header: got %q, want x-api-key", cfg.Server.Auth.EffectiveHeader())
	}
}

func TestLoad_IntervalAsSeconds(t *testing.T) {
	p := writeConfig(t, `server:
  stream:
    interval: 30
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if time.Duration(cfg.Server.Stream.Interval) != 30*time.Second {
		t.Errorf("stream.interval: got %v, want 30s", cfg.Server.Stream.Interval)
	}
}

func TestLoad_PortOutOfRange(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 70000
`)
	if _, err := Load(p); err == nil {
		t.Fatal("Load: expected error for out-of-range port")
	}
}

func TestLoad_UnknownAuthMode(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: oauth
`)
	if _, err := Load(p); err == nil {
		t.Fatal("Load: expected error for unknown auth mode")
	}
}

func TestLoad_UnknownWebhookType(t *testing.T) {
	p := writeConfig(t, `server:
  webhooks:
    - type: carrier-pigeon
      url_env: X
`)
	if _, err := Load(p); err == nil {
		t.Fatal("Load: expected error for unknown webhook type")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestKey_ResolvesEnv(t *testing.T) {
	t.Setenv("TEST_UPLOAD_KEY", "s3cret")
	a := AuthConfig{Mode: "apikey", KeyEnv: "TEST_UPLOAD_KEY"}
	if a.Key() != "s3cret" {
		t.Errorf("Key: got %q, want s3cret", a.Key())
	}
}

func TestDefault_Validates(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Fatalf("validate(Default()): %v", err)
	}
}
