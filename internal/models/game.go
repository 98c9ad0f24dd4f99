package models

import (
	"fmt"
	"strings"
	"time"
)

// WordLength is the number of letters in every target word and guess
const WordLength = 5

// Color is the score given to one letter of a guess
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorGray   Color = "gray"
)

// Status is the lifecycle state of a game session
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// IsTerminal reports whether no further guesses are accepted
func (s Status) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

// GameSession is one user's attempt at one target word
type GameSession struct {
	ID          string
	UserID      int64
	TargetWord  string
	MaxAttempts int
	Status      Status
	CalendarDay string // YYYY-MM-DD in UTC
	DaySeq      int
	StartedAt   time.Time
	CompletedAt *time.Time
	Guesses     []Guess
}

// RemainingAttempts returns how many guesses the session still accepts
func (s *GameSession) RemainingAttempts() int {
	return max(s.MaxAttempts-len(s.Guesses), 0)
}

// Guess is a scored word submitted to a session
type Guess struct {
	ID          int64
	SessionID   string
	Attempt     int
	Word        string
	Colors      []Color
	SubmittedAt time.Time
}

// EncodeColors serializes a color sequence for storage
func EncodeColors(colors []Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// DecodeColors parses a stored color sequence
func DecodeColors(s string) ([]Color, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	colors := make([]Color, len(parts))
	for i, p := range parts {
		switch c := Color(p); c {
		case ColorGreen, ColorYellow, ColorGray:
			colors[i] = c
		default:
			return nil, fmt.Errorf("unknown color %q", p)
		}
	}
	return colors, nil
}

// HintLevel selects the strength of a hint
type HintLevel string

const (
	HintLevel1          HintLevel = "1"
	HintLevel2          HintLevel = "2"
	HintLevel3          HintLevel = "3"
	HintLevelContextual HintLevel = "contextual"
)

// ParseHintLevel accepts "1", "2", "3" or "contextual"
func ParseHintLevel(s string) (HintLevel, bool) {
	switch level := HintLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case HintLevel1, HintLevel2, HintLevel3, HintLevelContextual:
		return level, true
	}
	return "", false
}

// HintRecord is a hint issued for a session
type HintRecord struct {
	ID        int64
	SessionID string
	Level     HintLevel
	Text      string
	IssuedAt  time.Time
}
