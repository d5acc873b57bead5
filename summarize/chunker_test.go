package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunksCoverage(t *testing.T) {
	tests := []struct {
		name       string
		textLen    int
		size       int
		wantChunks int
	}{
		{"fits in one chunk", 3000, 6000, 1},
		{"exact multiple", 12000, 6000, 2},
		{"remainder chunk", 15000, 6000, 3},
		{"single rune", 1, 6000, 1},
		{"size one", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.textLen)
			chunks := SplitChunks(text, tt.size)

			require.Len(t, chunks, tt.wantChunks)

			// no gap, no overlap: concatenation reconstructs the input
			assert.Equal(t, text, strings.Join(chunks, ""))

			for i, chunk := range chunks {
				if i < len(chunks)-1 {
					assert.Len(t, []rune(chunk), tt.size, "all but the last chunk are full")
				} else {
					assert.LessOrEqual(t, len([]rune(chunk)), tt.size)
					assert.NotEmpty(t, chunk)
				}
			}
		})
	}
}

func TestSplitChunksMultibyte(t *testing.T) {
	// 100 three-byte runes; byte-based splitting would tear characters
	text := strings.Repeat("한", 100)
	chunks := SplitChunks(text, 30)

	require.Len(t, chunks, 4)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.True(t, strings.HasPrefix(chunk, "한"))
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	assert.Nil(t, SplitChunks("", 100))
	assert.Nil(t, SplitChunks("text", 0))
}
