package chunker

import (
	"fmt"
	"strings"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// Splitter cuts raw text into overlapping fixed-size passages. Splitting
// is deterministic for identical input.
type Splitter struct {
	chunkSize int
	overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = models.DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split windows over the text rune by rune so multi-byte characters are
// never cut in half. Whitespace-only windows are dropped.
func (s *Splitter) Split(text string) []models.Passage {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.chunkSize - s.overlap
	var passages []models.Passage
	seq := 0
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[start:end])
		if strings.TrimSpace(chunk) != "" {
			passages = append(passages, models.Passage{
				ID:    fmt.Sprintf("p-%05d", seq),
				Text:  chunk,
				Seq:   seq,
				Start: start,
				End:   end,
			})
			seq++
		}
		if end == len(runes) {
			break
		}
	}
	return passages
}
