package summarize

import (
	"testing"
	"time"

	"github.com/poiesic/digest/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "claude-3-5-sonnet-latest", cfg.Anthropic.Model)
	assert.Equal(t, 6000, cfg.ChunkSize)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Gemini.APIKey, "defaults never carry credentials")
	require.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithGemini("key-g", "gemini-2.5-pro"),
		WithOpenAI("key-o", ""),
		WithAnthropic("key-a", "claude-sonnet-4-20250514"),
		WithChunkSize(8000),
		WithTimeout(90*time.Second),
		WithMaxRetries(3),
	)

	assert.Equal(t, "key-g", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "key-o", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model, "empty model keeps the default")
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Anthropic.Model)
	assert.Equal(t, 8000, cfg.ChunkSize)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Retry = retry.Policy{}
	assert.Error(t, cfg.Validate())
}

func TestResolveChainNames(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		chainSpec string
		want      []string
	}{
		{"explicit single provider", "gemini", "openai,anthropic", []string{"gemini"}},
		{"auto expands chain spec", "auto", "openai, gemini", []string{"openai", "gemini"}},
		{"auto with empty spec uses default", "auto", "", DefaultChain},
		{"empty provider behaves like auto", "", "anthropic", []string{"anthropic"}},
		{"case and spacing normalized", " Gemini ", "", []string{"gemini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveChainNames(tt.provider, tt.chainSpec))
		})
	}
}
