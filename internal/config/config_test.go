package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Address != ":5000" {
		t.Errorf("expected server address :5000, got %s", cfg.Server.Address)
	}
	if cfg.Server.MaxUploadSize != 16<<20 {
		t.Errorf("expected max upload size %d, got %d", 16<<20, cfg.Server.MaxUploadSize)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("expected write timeout 30s, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Static.Provider != "fs" || cfg.Static.Index != "index.html" || cfg.Static.Root != "public" {
		t.Errorf("unexpected static config: %+v", cfg.Static)
	}
	if cfg.Verification.Mode != "legacy" {
		t.Errorf("expected legacy verification mode, got %s", cfg.Verification.Mode)
	}
	if cfg.App.Version != "2.1.0" {
		t.Errorf("expected version 2.1.0, got %s", cfg.App.Version)
	}
}

func TestLoad_SessionSecretFeedsVerificationKey(t *testing.T) {
	viper.Reset()
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("VERIFICATION_MODE", "hmac")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Verification.SecretKey != "s3cret" {
		t.Errorf("expected secret key from SESSION_SECRET, got %q", cfg.Verification.SecretKey)
	}
	if cfg.Verification.Mode != "hmac" {
		t.Errorf("expected hmac mode, got %s", cfg.Verification.Mode)
	}
}

func TestValidate_HMACWithoutSecret_ReturnsError(t *testing.T) {
	cfg := Config{
		Server:       ServerConfig{MaxUploadSize: 1},
		Static:       StaticConfig{Provider: "fs"},
		Verification: VerificationConfig{Mode: "hmac"},
		Worker:       WorkerConfig{MaxWorkers: 1},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for hmac mode without secret")
	}
}

func TestValidate_UnknownProvider_ReturnsError(t *testing.T) {
	cfg := Config{
		Server:       ServerConfig{MaxUploadSize: 1},
		Static:       StaticConfig{Provider: "s3"},
		Verification: VerificationConfig{Mode: "legacy"},
		Worker:       WorkerConfig{MaxWorkers: 1},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown static provider")
	}
}
