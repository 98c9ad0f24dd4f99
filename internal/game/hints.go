package game

import (
	"fmt"
	"strings"

	"wordle/internal/models"
)

const vowels = "AEIOU"

// knowledge is what a player can read off the colors of their own guesses
type knowledge struct {
	target       string
	solved       [models.WordLength]bool // position shown green
	seen         map[byte]bool           // letter shown green or yellow
	green        map[byte]bool
	yellow       map[byte]bool
	ruledOut     map[byte]map[int]bool // positions a letter was tried at without going green
	repeatShown  bool                  // some guess credited the same letter twice
	guessesCount int
}

func newKnowledge(target string, guesses []models.Guess) (*knowledge, error) {
	k := &knowledge{
		target:   target,
		seen:     make(map[byte]bool),
		green:    make(map[byte]bool),
		yellow:   make(map[byte]bool),
		ruledOut: make(map[byte]map[int]bool),
	}

	for _, g := range guesses {
		word := strings.ToUpper(g.Word)
		colors, err := Evaluate(target, word)
		if err != nil {
			return nil, err
		}
		k.guessesCount++

		credited := make(map[byte]int)
		for i, c := range colors {
			letter := word[i]
			switch c {
			case models.ColorGreen:
				k.solved[i] = true
				k.green[letter] = true
				k.seen[letter] = true
				credited[letter]++
			case models.ColorYellow:
				k.yellow[letter] = true
				k.seen[letter] = true
				credited[letter]++
				k.ruleOut(letter, i)
			default:
				k.ruleOut(letter, i)
			}
		}
		for _, n := range credited {
			if n > 1 {
				k.repeatShown = true
			}
		}
	}
	return k, nil
}

func (k *knowledge) ruleOut(letter byte, pos int) {
	if k.ruledOut[letter] == nil {
		k.ruledOut[letter] = make(map[int]bool)
	}
	k.ruledOut[letter][pos] = true
}

func (k *knowledge) unsolved() []int {
	var positions []int
	for i, ok := range k.solved {
		if !ok {
			positions = append(positions, i)
		}
	}
	return positions
}

func (k *knowledge) unsolvedVowels() int {
	n := 0
	for _, i := range k.unsolved() {
		if isVowel(k.target[i]) {
			n++
		}
	}
	return n
}

func (k *knowledge) hasRepeat() bool {
	counts := make(map[byte]int)
	for i := 0; i < len(k.target); i++ {
		counts[k.target[i]]++
		if counts[k.target[i]] > 1 {
			return true
		}
	}
	return false
}

// GenerateHint derives a hint of the requested level from the target and the guess history.
// It never returns the full target word.
func GenerateHint(target string, guesses []models.Guess, level models.HintLevel, category string) (string, error) {
	target = strings.ToUpper(target)
	if len(target) != models.WordLength {
		return "", ErrInvalidGuessLength
	}

	k, err := newKnowledge(target, guesses)
	if err != nil {
		return "", err
	}

	switch level {
	case models.HintLevel1:
		return fmt.Sprintf("Think about %s.", category), nil
	case models.HintLevel2:
		return k.letterHint(), nil
	case models.HintLevel3:
		return k.positionHint(), nil
	case models.HintLevelContextual:
		return k.contextualHint(), nil
	default:
		return "", ErrInvalidHintLevel
	}
}

// letterHint names a target letter the player has not found yet
func (k *knowledge) letterHint() string {
	unsolved := k.unsolved()
	if len(unsolved) >= 2 {
		for i := 0; i < len(k.target); i++ {
			if !k.seen[k.target[i]] {
				return fmt.Sprintf("The word contains the letter %c.", k.target[i])
			}
		}
	}

	if k.hasRepeat() && !k.repeatShown {
		return "One of the letters appears more than once."
	}
	return k.vowelFact()
}

// vowelFact counts the vowels among the unsolved positions
func (k *knowledge) vowelFact() string {
	unsolved := k.unsolved()
	if len(unsolved) == 1 {
		if isVowel(k.target[unsolved[0]]) {
			return "The last unsolved position holds a vowel."
		}
		return "The last unsolved position holds a consonant."
	}
	return fmt.Sprintf("The %s contain %s.", plural(len(unsolved), "unsolved position"), plural(k.unsolvedVowels(), "vowel"))
}

// positionHint reveals the first unsolved position, unless that would leave nothing to find
func (k *knowledge) positionHint() string {
	unsolved := k.unsolved()
	if len(unsolved) <= 1 {
		return k.letterHint()
	}
	pos := unsolved[0]
	return fmt.Sprintf("Position %d is the letter %c.", pos+1, k.target[pos])
}

// contextualHint adds one fact the guess history has not already shown.
// It never names a letter the player has seen green.
func (k *knowledge) contextualHint() string {
	if k.guessesCount == 0 {
		n := 0
		for i := 0; i < len(k.target); i++ {
			if isVowel(k.target[i]) {
				n++
			}
		}
		return fmt.Sprintf("The word contains %s.", plural(n, "vowel"))
	}

	for i := 0; i < len(k.target); i++ {
		letter := k.target[i]
		if !k.yellow[letter] || k.green[letter] {
			continue
		}
		for pos := 0; pos < len(k.target); pos++ {
			if k.solved[pos] || k.ruledOut[letter][pos] || k.target[pos] == letter {
				continue
			}
			return fmt.Sprintf("The letter %c is not in position %d.", letter, pos+1)
		}
	}

	for _, pos := range k.unsolved() {
		if !k.seen[k.target[pos]] {
			return k.vowelFact()
		}
	}

	if !k.repeatShown {
		if k.hasRepeat() {
			return "One of the letters appears more than once."
		}
		return "No letter appears more than once."
	}

	return k.placementHint()
}

// placementHint is the last resort for contextual hints: it places a letter
// seen only as yellow, or else classifies an unsolved position without naming it
func (k *knowledge) placementHint() string {
	unsolved := k.unsolved()
	if len(unsolved) == 0 {
		return "Every position is already solved."
	}
	for _, pos := range unsolved {
		letter := k.target[pos]
		if k.yellow[letter] && !k.green[letter] {
			return fmt.Sprintf("The letter %c belongs in position %d.", letter, pos+1)
		}
	}

	pos := unsolved[0]
	if isVowel(k.target[pos]) {
		return fmt.Sprintf("Position %d holds a vowel.", pos+1)
	}
	return fmt.Sprintf("Position %d holds a consonant.", pos+1)
}

func isVowel(c byte) bool {
	return strings.IndexByte(vowels, c) >= 0
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
