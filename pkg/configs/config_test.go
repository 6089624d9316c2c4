package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tidyvault/tidyvault/pkg/configs"
)

// TestInitConfigDefaults 没有配置文件时回退默认值，不报错.
func TestInitConfigDefaults(t *testing.T) {
	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.Server.Port != configs.DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, configs.DefaultPort)
	}

	if cfg.S3.BucketName != "tidyvault" {
		t.Errorf("S3.BucketName = %q, want tidyvault", cfg.S3.BucketName)
	}

	if cfg.Organizer.OrganizedPrefix != configs.DefaultOrganizedPrefix {
		t.Errorf("Organizer.OrganizedPrefix = %q, want %q",
			cfg.Organizer.OrganizedPrefix, configs.DefaultOrganizedPrefix)
	}

	if cfg.Organizer.HistoryKey != configs.DefaultHistoryKey {
		t.Errorf("Organizer.HistoryKey = %q, want %q", cfg.Organizer.HistoryKey, configs.DefaultHistoryKey)
	}

	if !cfg.Organizer.ConsistencyPass {
		t.Error("Organizer.ConsistencyPass should default to true")
	}

	if cfg.Classifier.Mode != "json" {
		t.Errorf("Classifier.Mode = %q, want json", cfg.Classifier.Mode)
	}

	if got := cfg.Classifier.GetTimeoutDuration(); got != 30*time.Second {
		t.Errorf("Classifier.GetTimeoutDuration() = %v, want 30s", got)
	}
}

// TestInitConfigFromFile 从配置文件读取并覆盖默认值.
func TestInitConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 9090
s3:
  bucket_name: archive
organizer:
  organized_prefix: sorted
classifier:
  enabled: true
  model: gpt-4o
`)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := configs.InitConfig(dir); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}

	if cfg.S3.BucketName != "archive" {
		t.Errorf("S3.BucketName = %q, want archive", cfg.S3.BucketName)
	}

	if cfg.Organizer.OrganizedPrefix != "sorted" {
		t.Errorf("Organizer.OrganizedPrefix = %q, want sorted", cfg.Organizer.OrganizedPrefix)
	}

	if !cfg.Classifier.Enabled || cfg.Classifier.Model != "gpt-4o" {
		t.Errorf("unexpected classifier config: %+v", cfg.Classifier)
	}
}

// TestInitConfigInvalid 违反 rule tag 的配置值必须被拒绝.
func TestInitConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 0
`)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := configs.InitConfig(dir); err == nil {
		t.Error("expected validation error for port 0")
	}
}
