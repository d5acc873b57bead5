package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/summarize/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTestRecord = `{
  "title": "Test Article",
  "summary": "A summary produced by the test backend.",
  "key_insights": "- first insight\n- second insight",
  "tags": ["AI", "Testing"],
  "source": "Test"
}`

const testChunkResult = `{
  "chunk_summary": "summary of one chunk",
  "key_points": ["point"],
  "tags": ["AI"],
  "source_hint": ""
}`

var testItem = core.IngestItem{
	Title:   "Scanned Paper",
	Content: strings.Repeat("c", 500),
	Origin:  "PDF",
}

func newTestSummarizer(t *testing.T, chunkSize int, providers ...Provider) *Summarizer {
	t.Helper()
	s, err := NewSummarizer(newTestChain(t, providers...), chunkSize)
	require.NoError(t, err)
	return s
}

func TestSummarizeShortContentSingleCall(t *testing.T) {
	p := mock.NewProvider("p1")
	p.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return defaultTestRecord, nil
	}
	s := newTestSummarizer(t, 6000, p)

	text := strings.Repeat("a", 3000)
	record, err := s.Summarize(context.Background(), "Title", "https://example.com/a", text)
	require.NoError(t, err)

	assert.Equal(t, 1, p.CallCount(), "content below chunk size takes exactly one call")
	assert.Equal(t, "Test Article", record.Title)
	assert.Equal(t, "p1", record.Provider)
	assert.NotEmpty(t, record.Tags)

	prompts := p.Prompts()
	assert.Contains(t, prompts[0], "https://example.com/a")
	assert.Contains(t, prompts[0], "article_text:")
}

func TestSummarizeLongContentMapReduce(t *testing.T) {
	p := mock.NewProvider("p1")
	p.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "chunk_index:") {
			return testChunkResult, nil
		}
		return defaultTestRecord, nil
	}
	s := newTestSummarizer(t, 6000, p)

	text := strings.Repeat("x", 15000)
	record, err := s.Summarize(context.Background(), "Long Doc", "", text)
	require.NoError(t, err)
	require.Equal(t, 4, p.CallCount(), "three map calls plus one reduce call")

	prompts := p.Prompts()
	assert.Contains(t, prompts[0], "chunk_index: 1/3")
	assert.Contains(t, prompts[1], "chunk_index: 2/3")
	assert.Contains(t, prompts[2], "chunk_index: 3/3")

	// reduce receives the full ordered chunk sequence
	reducePrompt := prompts[3]
	assert.NotContains(t, reducePrompt, "chunk_index: ")
	start := strings.Index(reducePrompt, "{")
	end := strings.LastIndex(reducePrompt, "}")
	require.Greater(t, end, start, "reduce prompt carries a JSON payload")

	var payload struct {
		Title  string `json:"title"`
		Chunks []struct {
			ChunkIndex int `json:"chunk_index"`
			ChunkTotal int `json:"chunk_total"`
		} `json:"chunks"`
	}
	payloadEnd := strings.Index(reducePrompt, "\n\nOutput exactly")
	require.Greater(t, payloadEnd, 0)
	payloadStart := strings.Index(reducePrompt, "\n\n{") + 2
	require.NoError(t, json.Unmarshal([]byte(reducePrompt[payloadStart:payloadEnd]), &payload))

	assert.Equal(t, "Long Doc", payload.Title)
	require.Len(t, payload.Chunks, 3)
	for i, chunk := range payload.Chunks {
		assert.Equal(t, i+1, chunk.ChunkIndex, "chunk indices must ascend from 1")
		assert.Equal(t, 3, chunk.ChunkTotal)
	}

	assert.Equal(t, "p1", record.Provider)
}

func TestSummarizeMapFailureAbortsItem(t *testing.T) {
	mapFailure := errors.New("invalid api key")
	calls := 0
	p := mock.NewProvider("p1")
	p.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		calls++
		if strings.Contains(prompt, "chunk_index: 2/") {
			return "", mapFailure
		}
		if strings.Contains(prompt, "chunk_index:") {
			return testChunkResult, nil
		}
		t.Fatal("reduce must not run after a failed map call")
		return "", nil
	}
	s := newTestSummarizer(t, 6000, p)

	_, err := s.Summarize(context.Background(), "Doc", "", strings.Repeat("y", 15000))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapFailure)
	assert.Equal(t, 2, calls, "processing stops at the failed chunk")
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := newTestSummarizer(t, 6000, mock.NewProvider("p1"))

	_, err := s.Summarize(context.Background(), "Title", "", "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSummarizeChunkedFallback(t *testing.T) {
	// p1 always fails non-retryably; every map and reduce call must land on p2
	p1 := mock.NewProvider("p1")
	p1.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("invalid api key")
	}
	p2 := mock.NewProvider("p2")
	p2.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "chunk_index:") {
			return testChunkResult, nil
		}
		return defaultTestRecord, nil
	}
	s := newTestSummarizer(t, 6000, p1, p2)

	record, err := s.Summarize(context.Background(), "Doc", "", strings.Repeat("z", 12000))
	require.NoError(t, err)
	assert.Equal(t, "p2", record.Provider)
	assert.Equal(t, 3, p2.CallCount(), "two map calls and one reduce call")
}

func TestSummarizeItemUsesOriginAsSourceFallback(t *testing.T) {
	p := mock.NewProvider("p1")
	p.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		// record without a source field
		return `{"title":"T","summary":"S","key_insights":"- K","tags":["x"]}`, nil
	}
	s := newTestSummarizer(t, 6000, p)

	record, err := s.SummarizeItem(context.Background(), &testItem)
	require.NoError(t, err)
	assert.Equal(t, "PDF", record.Source)
}

func TestNewSummarizerValidation(t *testing.T) {
	_, err := NewSummarizer(nil, 6000)
	assert.ErrorIs(t, err, ErrChainRequired)

	chain := newTestChain(t, mock.NewProvider("p1"))
	_, err = NewSummarizer(chain, 0)
	assert.Error(t, err)
}
