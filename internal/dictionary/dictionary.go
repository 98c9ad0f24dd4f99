// Package dictionary supplies the valid five-letter words and picks a target word for each game session.
package dictionary

import (
	"bufio"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"wordle/internal/models"
)

//go:embed words.txt
var embeddedWords string

// Mode controls how target words are chosen
type Mode string

const (
	// ModeDaily gives every player the same word for the same day and session number
	ModeDaily Mode = "daily"
	// ModeRandom picks an independent word for each session
	ModeRandom Mode = "random"
)

// epoch is day zero of the daily rotation
var epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// Provider holds the word list
type Provider struct {
	words []string
	valid map[string]struct{}
	mode  Mode
}

// New builds a provider from words; every entry must be five ASCII letters
func New(words []string, mode Mode) (*Provider, error) {
	if mode != ModeDaily && mode != ModeRandom {
		return nil, fmt.Errorf("unsupported word selection mode: %s", mode)
	}

	p := &Provider{
		valid: make(map[string]struct{}, len(words)),
		mode:  mode,
	}
	for _, raw := range words {
		word := normalize(raw)
		if word == "" {
			continue
		}
		if !IsWellFormed(word) {
			return nil, fmt.Errorf("invalid dictionary word %q: must be %d letters", raw, models.WordLength)
		}
		if _, dup := p.valid[word]; dup {
			continue
		}
		p.valid[word] = struct{}{}
		p.words = append(p.words, word)
	}

	if len(p.words) == 0 {
		return nil, fmt.Errorf("dictionary is empty")
	}
	return p, nil
}

// Load reads a newline-separated word list from path
func Load(path string, mode Mode) (*Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return New(words, mode)
}

// Default returns a provider backed by the embedded word list
func Default(mode Mode) (*Provider, error) {
	return New(strings.Split(embeddedWords, "\n"), mode)
}

// Len returns the number of words in the dictionary
func (p *Provider) Len() int {
	return len(p.words)
}

// Mode returns the selection mode
func (p *Provider) Mode() Mode {
	return p.mode
}

// IsValidWord reports whether word is an admissible guess, ignoring case
func (p *Provider) IsValidWord(word string) bool {
	_, ok := p.valid[normalize(word)]
	return ok
}

// PickTarget chooses the target for the seq-th session (1-based) a user starts on day.
// In daily mode the result depends only on day and seq.
func (p *Provider) PickTarget(day string, seq int) (string, error) {
	if p.mode == ModeRandom {
		return p.words[rand.IntN(len(p.words))], nil
	}

	d, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return "", fmt.Errorf("invalid calendar day %q: %w", day, err)
	}
	offset := int(d.Sub(epoch).Hours()/24) + seq - 1
	n := len(p.words)
	return p.words[((offset%n)+n)%n], nil
}

// IsWellFormed reports whether word is exactly five letters A-Z
func IsWellFormed(word string) bool {
	if len(word) != models.WordLength {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'A' || word[i] > 'Z' {
			return false
		}
	}
	return true
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}
