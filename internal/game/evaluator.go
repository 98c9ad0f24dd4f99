// Package game holds the pure rules of the word game: scoring guesses and deriving hints.
package game

import (
	"errors"
	"strings"

	"wordle/internal/models"
)

var (
	ErrInvalidGuessLength = errors.New("guess must be exactly 5 letters")
	ErrInvalidHintLevel   = errors.New("hint level must be 1, 2, 3 or contextual")
)

// Evaluate scores guess against target.
// Exact matches are credited first so a duplicated letter is never credited more
// times than it occurs in the target.
func Evaluate(target, guess string) ([]models.Color, error) {
	target = strings.ToUpper(target)
	guess = strings.ToUpper(guess)
	if len(target) != models.WordLength || len(guess) != models.WordLength {
		return nil, ErrInvalidGuessLength
	}

	colors := make([]models.Color, models.WordLength)
	remaining := make(map[byte]int, models.WordLength)
	for i := 0; i < models.WordLength; i++ {
		colors[i] = models.ColorGray
		remaining[target[i]]++
	}

	for i := 0; i < models.WordLength; i++ {
		if guess[i] == target[i] {
			colors[i] = models.ColorGreen
			remaining[guess[i]]--
		}
	}

	for i := 0; i < models.WordLength; i++ {
		if colors[i] == models.ColorGreen {
			continue
		}
		if remaining[guess[i]] > 0 {
			colors[i] = models.ColorYellow
			remaining[guess[i]]--
		}
	}

	return colors, nil
}

// IsWin reports whether every letter was scored green
func IsWin(colors []models.Color) bool {
	if len(colors) != models.WordLength {
		return false
	}
	for _, c := range colors {
		if c != models.ColorGreen {
			return false
		}
	}
	return true
}
