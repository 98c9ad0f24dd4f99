package game

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"wordle/internal/dictionary"
	"wordle/internal/models"
)

func history(words ...string) []models.Guess {
	guesses := make([]models.Guess, len(words))
	for i, w := range words {
		guesses[i] = models.Guess{Attempt: i + 1, Word: w}
	}
	return guesses
}

func TestGenerateHint(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		guesses []models.Guess
		level   models.HintLevel
		want    string
	}{
		{
			name:   "level 1 uses the theme",
			target: "CRANE",
			level:  models.HintLevel1,
			want:   "Think about the animal kingdom.",
		},
		{
			name:   "level 2 names an unseen letter",
			target: "CRANE",
			level:  models.HintLevel2,
			want:   "The word contains the letter C.",
		},
		{
			name:    "level 2 skips letters already seen",
			target:  "CRANE",
			guesses: history("CLOTH"),
			level:   models.HintLevel2,
			want:    "The word contains the letter R.",
		},
		{
			name:    "level 2 falls back when one position is left",
			target:  "CRANE",
			guesses: history("CRATE"),
			level:   models.HintLevel2,
			want:    "The last unsolved position holds a consonant.",
		},
		{
			name:    "level 2 reports an unseen repeat",
			target:  "SPEED",
			guesses: history("SPEND", "SPEAD"),
			level:   models.HintLevel2,
			want:    "One of the letters appears more than once.",
		},
		{
			name:   "level 3 reveals the first unsolved position",
			target: "CRANE",
			level:  models.HintLevel3,
			want:   "Position 1 is the letter C.",
		},
		{
			name:    "level 3 skips solved positions",
			target:  "CRANE",
			guesses: history("CLOTH"),
			level:   models.HintLevel3,
			want:    "Position 2 is the letter R.",
		},
		{
			name:    "level 3 degrades with one position left",
			target:  "CRANE",
			guesses: history("CRATE"),
			level:   models.HintLevel3,
			want:    "The last unsolved position holds a consonant.",
		},
		{
			name:   "contextual without guesses counts vowels",
			target: "CRANE",
			level:  models.HintLevelContextual,
			want:   "The word contains 2 vowels.",
		},
		{
			name:    "contextual places a yellow letter",
			target:  "CRANE",
			guesses: history("REACT"),
			level:   models.HintLevelContextual,
			want:    "The letter C is not in position 2.",
		},
		{
			name:    "contextual skips letters that went green",
			target:  "ALLOY",
			guesses: history("LOLLY"),
			level:   models.HintLevelContextual,
			want:    "The letter O is not in position 1.",
		},
		{
			name:    "contextual counts unsolved vowels",
			target:  "CRANE",
			guesses: history("CRATE"),
			level:   models.HintLevelContextual,
			want:    "The last unsolved position holds a consonant.",
		},
		{
			name:    "contextual places a letter seen only yellow",
			target:  "ERASE",
			guesses: history("STEEL", "CRANE"),
			level:   models.HintLevelContextual,
			want:    "The letter S belongs in position 4.",
		},
		{
			name:    "contextual classifies a position held by a green letter",
			target:  "SPEED",
			guesses: history("SPEND", "EERIE"),
			level:   models.HintLevelContextual,
			want:    "Position 4 holds a vowel.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateHint(tt.target, tt.guesses, tt.level, dictionary.Category(tt.target))
			if err != nil {
				t.Fatalf("GenerateHint() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GenerateHint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateHintInvalidLevel(t *testing.T) {
	_, err := GenerateHint("CRANE", nil, models.HintLevel("4"), "birds")
	if !errors.Is(err, ErrInvalidHintLevel) {
		t.Errorf("GenerateHint() error = %v, want ErrInvalidHintLevel", err)
	}
}

func TestHintsNeverRevealTarget(t *testing.T) {
	targets := []string{"CRANE", "ALLOY", "SPEED", "LEVEL", "GEESE"}
	histories := [][]models.Guess{
		nil,
		history("SLATE"),
		history("CRATE"),
		history("LOLLY", "ALLEY"),
		history("ERASE", "SPEND", "SPEAK"),
		history("GEEKS", "LEVER", "CRANK", "ALOUD"),
	}
	levels := []models.HintLevel{models.HintLevel1, models.HintLevel2, models.HintLevel3, models.HintLevelContextual}

	for _, target := range targets {
		for i, h := range histories {
			for _, level := range levels {
				t.Run(fmt.Sprintf("%s/%d/%s", target, i, level), func(t *testing.T) {
					hint, err := GenerateHint(target, h, level, dictionary.Category(target))
					if err != nil {
						t.Fatalf("GenerateHint() error = %v", err)
					}
					if strings.Contains(strings.ToUpper(hint), target) {
						t.Errorf("hint %q reveals the target %s", hint, target)
					}
				})
			}
		}
	}
}

func TestContextualHintIsNonRedundant(t *testing.T) {
	cases := []struct {
		target  string
		guesses []models.Guess
	}{
		{"CRANE", history("REACT")},
		{"CRANE", history("CRATE")},
		{"CRANE", history("NACRE")},
		{"ALLOY", history("LOLLY")},
		{"ALLOY", history("LOLLY", "ALLEY")},
		{"SPEED", history("ERASE")},
		{"SPEED", history("SPEND", "SPEAD")},
		{"LEVEL", history("EERIE", "LEVER")},
		{"ERASE", history("STEEL", "CRANE")},
		{"SPEED", history("SPEND", "EERIE")},
	}

	for _, tc := range cases {
		t.Run(tc.target+"/"+tc.guesses[len(tc.guesses)-1].Word, func(t *testing.T) {
			hint, err := GenerateHint(tc.target, tc.guesses, models.HintLevelContextual, dictionary.Category(tc.target))
			if err != nil {
				t.Fatalf("GenerateHint() error = %v", err)
			}

			k, err := newKnowledge(tc.target, tc.guesses)
			if err != nil {
				t.Fatalf("newKnowledge() error = %v", err)
			}
			for letter := range k.green {
				if strings.Contains(hint, fmt.Sprintf("letter %c ", letter)) || strings.HasSuffix(hint, fmt.Sprintf("letter %c.", letter)) {
					t.Errorf("hint %q names %c, already green", hint, letter)
				}
			}
			for letter, positions := range k.ruledOut {
				for pos := range positions {
					if hint == fmt.Sprintf("The letter %c is not in position %d.", letter, pos+1) {
						t.Errorf("hint %q repeats what guess history already showed", hint)
					}
				}
			}
		})
	}
}

// namesGreenLetter reports whether hint mentions a letter the history shows green
func namesGreenLetter(t *testing.T, target string, guesses []models.Guess, hint string) (byte, bool) {
	t.Helper()
	k, err := newKnowledge(target, guesses)
	if err != nil {
		t.Fatalf("newKnowledge() error = %v", err)
	}
	for letter := range k.green {
		if strings.Contains(hint, fmt.Sprintf("letter %c ", letter)) || strings.HasSuffix(hint, fmt.Sprintf("letter %c.", letter)) {
			return letter, true
		}
	}
	return 0, false
}

func TestHintsOverDictionary(t *testing.T) {
	p, err := dictionary.Default(dictionary.ModeDaily)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	levels := []models.HintLevel{models.HintLevel1, models.HintLevel2, models.HintLevel3, models.HintLevelContextual}
	prev := "CRANE"
	for seq := 1; seq <= p.Len(); seq++ {
		target, err := p.PickTarget("2024-01-01", seq)
		if err != nil {
			t.Fatalf("PickTarget() error = %v", err)
		}
		histories := [][]models.Guess{
			nil,
			history(prev),
			history("STEEL", "CRANE"),
			history("AUDIO", "GHOST", "LYMPH"),
		}
		category := dictionary.Category(target)

		for _, h := range histories {
			for _, level := range levels {
				hint, err := GenerateHint(target, h, level, category)
				if err != nil {
					t.Fatalf("GenerateHint(%s, %s) error = %v", target, level, err)
				}
				if strings.Contains(strings.ToUpper(hint), target) {
					t.Errorf("%s hint %q reveals the target %s", level, hint, target)
				}
				if level == models.HintLevelContextual {
					if letter, ok := namesGreenLetter(t, target, h, hint); ok {
						t.Errorf("contextual hint %q for %s names %c, already green", hint, target, letter)
					}
				}
			}
		}

		level1, err := GenerateHint(target, nil, models.HintLevel1, category)
		if err != nil {
			t.Fatalf("GenerateHint() error = %v", err)
		}
		sameInitial := 0
		for _, w := range strings.Fields(strings.TrimSuffix(strings.TrimPrefix(level1, "Think about "), ".")) {
			if len(w) > 3 && strings.ToUpper(w)[0] == target[0] {
				sameInitial++
			}
		}
		if sameInitial > 1 {
			t.Errorf("level 1 hint %q for %s alliterates on its first letter", level1, target)
		}
		prev = target
	}
}
