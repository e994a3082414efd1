package config

import (
	"log/slog"
	"os"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
		"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with defaults",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMAPIKey == "test-key" &&
					cfg.LLMBaseURL == "http://localhost:8080" &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name:     "missing LLM_API_KEY",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "explicit values win over defaults",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("LLM_BASE_URL", "http://example.com:8081")
				setEnv("LLM_MODEL", "other-model")
				setEnv("API_PORT", "8088")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMBaseURL == "http://example.com:8081" &&
					cfg.LLMModelName == "other-model" &&
					cfg.APIPort == "8088"
			},
		},
		{
			name: "debug log level",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("LOG_LEVEL", "debug")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelDebug
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("LOG_FORMAT", "yaml")
			},
			wantErr: true,
		},
		{
			name: "json log format",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("LOG_FORMAT", "json")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LogFormat == "json"
			},
		},
		{
			name: "invalid port",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("API_PORT", "not-a-port")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Error("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}
