package summarize

// SplitChunks partitions text into contiguous, non-overlapping chunks
// of at most size runes, preserving input order. The concatenation of
// the returned chunks reconstructs the input exactly; chunk count is
// ceil(len/size). Empty input yields no chunks.
//
// Rune-based so multi-byte text is never split mid-character. Sizing is
// character-count based, not token-accurate.
func SplitChunks(text string, size int) []string {
	if size < 1 || text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
