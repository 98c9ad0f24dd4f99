package models

// DailyReport summarizes every session played on one calendar day
type DailyReport struct {
	Date                string         `json:"date"`
	Started             int            `json:"started"`
	Won                 int            `json:"won"`
	Lost                int            `json:"lost"`
	Active              int            `json:"active"`
	UniquePlayers       int            `json:"unique_players"`
	WinRate             float64        `json:"win_rate"`
	AverageGuessesToWin float64        `json:"average_guesses_to_win"`
	GuessDistribution   map[int]int    `json:"guess_distribution"`
	Words               []string       `json:"words"`
	Games               []DailyGameRow `json:"games"`
}

// DailyGameRow is one session in a daily report; the target is hidden while the game is active
type DailyGameRow struct {
	Username   string `json:"username"`
	Status     Status `json:"status"`
	Attempts   int    `json:"attempts"`
	TargetWord string `json:"target_word,omitempty"`
}

// UserReport summarizes the full history of one user
type UserReport struct {
	Username          string       `json:"username"`
	TotalGames        int          `json:"total_games"`
	Won               int          `json:"won"`
	Lost              int          `json:"lost"`
	Active            int          `json:"active"`
	WinRate           float64      `json:"win_rate"`
	CurrentStreak     int          `json:"current_streak"`
	BestStreak        int          `json:"best_streak"`
	GuessDistribution map[int]int  `json:"guess_distribution"`
	Days              []UserDayRow `json:"days"`
}

// UserDayRow groups a user's sessions by calendar day
type UserDayRow struct {
	Date     string        `json:"date"`
	Total    int           `json:"total"`
	Correct  int           `json:"correct"`
	Accuracy float64       `json:"accuracy"`
	Games    []UserGameRow `json:"games"`
}

// UserGameRow is one session in a user report
type UserGameRow struct {
	SessionID  string `json:"session_id"`
	Status     Status `json:"status"`
	Attempts   int    `json:"attempts"`
	TargetWord string `json:"target_word,omitempty"`
}

// SessionSummary is a session joined with its owner and guess count
type SessionSummary struct {
	Session  GameSession
	Username string
	Attempts int
}
