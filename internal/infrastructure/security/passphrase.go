package security

import (
	"crypto/rand"
	"fmt"
	"strings"

	_ "embed"
)

// Security parameter: WordCount words drawn uniformly from WordlistSize
// candidates gives WordlistSize^WordCount = 256^24 = 2^192 possible phrases.
// No uniqueness check against existing phrases is needed at that size.
const (
	WordCount    = 24
	WordlistSize = 256
)

//go:embed wordlist.txt
var wordlistRaw string

var wordlist = strings.Fields(wordlistRaw)

// WordlistGenerator implements ports.PassphraseGenerator. Each slot is one
// byte from crypto/rand; the list length divides 256 evenly, so indexing is
// uniform without rejection sampling.
type WordlistGenerator struct{}

func NewWordlistGenerator() (*WordlistGenerator, error) {
	if len(wordlist) != WordlistSize {
		return nil, fmt.Errorf("embedded wordlist has %d words, want %d", len(wordlist), WordlistSize)
	}
	return &WordlistGenerator{}, nil
}

func (g *WordlistGenerator) Generate() (string, error) {
	buf := make([]byte, WordCount)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	words := make([]string, WordCount)
	for i, b := range buf {
		words[i] = wordlist[int(b)%WordlistSize]
	}
	return strings.Join(words, " "), nil
}
