package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Environment: "development",
		Port:        "8080",
		LogLevel:    "info",
		Store: StoreConfig{
			Backend:           StoreBackendDynamo,
			TableName:         "user-profiles",
			Region:            "us-east-1",
			MaxRetryAttempts:  3,
			RetryInitialDelay: 100 * time.Millisecond,
			RetryMaxDelay:     2 * time.Second,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid dynamo config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "memory backend needs no table",
			modify: func(c *Config) {
				c.Store.Backend = StoreBackendMemory
				c.Store.TableName = ""
			},
			wantErr: false,
		},
		{
			name:    "unknown backend rejected",
			modify:  func(c *Config) { c.Store.Backend = "etcd" },
			wantErr: true,
		},
		{
			name: "dynamo without table rejected",
			modify: func(c *Config) {
				c.Store.TableName = ""
			},
			wantErr: true,
		},
		{
			name:    "zero retry attempts rejected",
			modify:  func(c *Config) { c.Store.MaxRetryAttempts = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Store.Backend != StoreBackendDynamo {
		t.Errorf("default backend = %s, want %s", cfg.Store.Backend, StoreBackendDynamo)
	}
	if cfg.Store.TableName == "" {
		t.Error("default table name should not be empty")
	}
	if cfg.Store.MaxRetryAttempts < 1 {
		t.Errorf("default retry attempts = %d, want >= 1", cfg.Store.MaxRetryAttempts)
	}
}

func TestGetEnvFallback(t *testing.T) {
	if got := GetEnv("UNSET_TEST_VARIABLE_XYZ", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %s, want fallback", got)
	}

	t.Setenv("SET_TEST_VARIABLE_XYZ", "value")
	if got := GetEnv("SET_TEST_VARIABLE_XYZ", "fallback"); got != "value" {
		t.Errorf("GetEnv() = %s, want value", got)
	}
}
