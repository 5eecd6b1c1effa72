package chunker

import "strings"

const (
	DefaultSize    = 1000
	DefaultOverlap = 100
)

// Chunker splits extracted text into fixed-size overlapping segments. Sizes
// are in runes so multi-byte text never splits mid-character. Splitting is
// deterministic: the same input always yields the same chunk sequence, and
// every chunk after the first starts with the previous chunk's trailing
// Overlap runes.
type Chunker struct {
	Size    int
	Overlap int
}

func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Split joins page texts with newlines and windows over the result.
func (c *Chunker) Split(pages []string) []string {
	return c.SplitText(strings.Join(pages, "\n"))
}

// SplitText produces the ordered chunk sequence for a single text.
func (c *Chunker) SplitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []string
	for i := 0; i < len(runes); {
		end := i + c.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
		i = end - c.Overlap
	}
	return chunks
}
