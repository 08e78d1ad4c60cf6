package translate

// ChunkSize is the maximum number of characters sent in one translation request.
const ChunkSize = 1024

// Split cuts text into consecutive pieces of at most size characters (runes).
// Word and sentence boundaries are ignored, so a word may straddle two chunks.
func Split(text string, size int) []string {
	if size <= 0 {
		size = ChunkSize
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
