package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"DB_PATH", "API_PORT", "LOG_LEVEL", "LOG_FORMAT", "BACKUP_DIR", "REPORT_PATH",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "EMBEDDING_VECTOR_SIZE",
	"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY",
	"QDRANT_URL", "QDRANT_COLLECTION",
}

// clearEnv blanks every key Load reads; getEnv treats blank as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "test.db"))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "defaults",
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.BackupDir == "./data/backup" &&
					cfg.ReportPath == "./data/migration_result.json" &&
					cfg.QdrantURL == "" &&
					cfg.QdrantCollection == "documents" &&
					cfg.EmbeddingBaseURL == "" &&
					cfg.LLMBaseURL == "" &&
					cfg.EmbeddingVectorSize == 0
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"API_PORT":              "8088",
				"LOG_LEVEL":             "debug",
				"LOG_FORMAT":            "JSON",
				"EMBEDDING_BASE_URL":    "http://embed:8081",
				"EMBEDDING_VECTOR_SIZE": "768",
				"LLM_BASE_URL":          "http://llm:8080",
				"QDRANT_URL":            "http://qdrant:6333",
				"QDRANT_COLLECTION":     "docs",
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8088" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.EmbeddingBaseURL == "http://embed:8081" &&
					cfg.EmbeddingVectorSize == 768 &&
					cfg.LLMBaseURL == "http://llm:8080" &&
					cfg.QdrantURL == "http://qdrant:6333" &&
					cfg.QdrantCollection == "docs"
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "invalid log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "invalid vector size",
			env:     map[string]string{"EMBEDDING_VECTOR_SIZE": "abc"},
			wantErr: true,
		},
		{
			name:    "negative vector size",
			env:     map[string]string{"EMBEDDING_VECTOR_SIZE": "-1"},
			wantErr: true,
		},
		{
			name:    "qdrant without vector size",
			env:     map[string]string{"QDRANT_URL": "http://qdrant:6333"},
			wantErr: true,
		},
		{
			name:    "invalid port",
			env:     map[string]string{"API_PORT": "http"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	clearEnv(t)

	dbPath := filepath.Join(t.TempDir(), "test", "db.db")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "env var not set", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)

			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
