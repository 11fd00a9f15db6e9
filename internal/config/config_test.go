package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/equinoxlabs/content-engine/internal/config"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERVER_BIND_ADDR", "")
	t.Setenv("STORE_PATH", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("SEED_BATCH_SIZE", "")
	t.Setenv("MAX_BATCH_SIZE", "")
	t.Setenv("GENERATE_TIMEOUT", "")

	cfg, err := config.LoadServer()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, "data/content_db.json", cfg.StorePath)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, "Equinox Analytics", cfg.PublisherName)
	require.Equal(t, 5, cfg.SeedBatchSize)
	require.Equal(t, 20, cfg.MaxBatchSize)
	require.Equal(t, 120*time.Second, cfg.GenerateTimeout)
	require.Equal(t, 20, cfg.DefaultPage)
	require.Equal(t, 100, cfg.MaxPage)
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERVER_BIND_ADDR", "127.0.0.1:9090")
	t.Setenv("STORE_PATH", "/tmp/reports.json")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-pro")
	t.Setenv("PUBLISHER_NAME", "Acme Research")
	t.Setenv("SEED_BATCH_SIZE", "3")
	t.Setenv("MAX_BATCH_SIZE", "10")
	t.Setenv("GENERATE_TIMEOUT", "30s")

	cfg, err := config.LoadServer()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.BindAddr)
	require.Equal(t, "/tmp/reports.json", cfg.StorePath)
	require.Equal(t, "gemini-2.0-pro", cfg.GeminiModel)
	require.Equal(t, "Acme Research", cfg.PublisherName)
	require.Equal(t, 3, cfg.SeedBatchSize)
	require.Equal(t, 10, cfg.MaxBatchSize)
	require.Equal(t, 30*time.Second, cfg.GenerateTimeout)
}

func TestLoadServerValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing api key", env: map[string]string{"GEMINI_API_KEY": ""}},
		{name: "negative seed batch", env: map[string]string{"SEED_BATCH_SIZE": "-1"}},
		{name: "seed exceeds max", env: map[string]string{"SEED_BATCH_SIZE": "50", "MAX_BATCH_SIZE": "10"}},
		{name: "negative timeout", env: map[string]string{"GENERATE_TIMEOUT": "-5s"}},
		{name: "page exceeds max", env: map[string]string{"API_PAGE_SIZE": "200", "API_MAX_PAGE_SIZE": "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "test-key")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.LoadServer()
			require.Error(t, err)
		})
	}
}
