package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.SummaryHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.SummaryModel)
	assert.Equal(t, 8000, cfg.MaxInputChars)

	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://example.com:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithSummaryModel("gpt-4o-mini"),
		WithMaxInputChars(500),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://example.com:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://example.com:9100/v1", cfg.SummaryHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.SummaryModel)
	assert.Equal(t, 500, cfg.MaxInputChars)
}

func TestNewConfig_SeparateHosts(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://embed.local"),
		WithSummaryHost("http://summary.local/"),
	)

	cfg.Normalize()
	assert.Equal(t, "http://embed.local/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://summary.local/v1", cfg.SummaryHost)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }, true},
		{"missing summary host", func(c *Config) { c.SummaryHost = "" }, true},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }, true},
		{"missing summary model", func(c *Config) { c.SummaryModel = "" }, true},
		{"zero max input", func(c *Config) { c.MaxInputChars = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Truncate(t *testing.T) {
	cfg := NewConfig(WithMaxInputChars(10))

	assert.Equal(t, "short", cfg.Truncate("short"))
	assert.Equal(t, "0123456789", cfg.Truncate("0123456789extra"))

	// Never split a multi-byte rune
	text := strings.Repeat("é", 20)
	out := cfg.Truncate(text)
	assert.LessOrEqual(t, len(out), 10)
	assert.True(t, strings.HasPrefix(text, out))
	for _, r := range out {
		assert.NotEqual(t, '�', r)
	}
}
