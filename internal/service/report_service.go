package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"wordle/internal/metrics"
	"wordle/internal/models"
	"wordle/internal/repository"
)

// ReportService builds the admin reports from session history.
// Reports are cached until a session they cover changes.
type ReportService struct {
	games       *repository.GameRepository
	users       *repository.UserRepository
	cache       *lru.Cache[string, any]
	maxAttempts int
	// mu orders cache writes against invalidations. epoch advances on every
	// invalidation so a report computed concurrently with a change is not cached.
	mu    sync.Mutex
	epoch uint64
	now   func() time.Time
}

// NewReportService creates a new report service with a cache of cacheSize reports
func NewReportService(games *repository.GameRepository, users *repository.UserRepository, cacheSize, maxAttempts int) (*ReportService, error) {
	cache, err := lru.New[string, any](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	return &ReportService{
		games:       games,
		users:       users,
		cache:       cache,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}, nil
}

func dailyKey(day string) string {
	return "daily:" + day
}

func userKeyPrefix(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10) + ":"
}

// InvalidateDay drops the cached daily report for day
func (s *ReportService) InvalidateDay(day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cache.Remove(dailyKey(day))
}

// InvalidateUser drops every cached report for the user
func (s *ReportService) InvalidateUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	prefix := userKeyPrefix(userID)
	for _, key := range s.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Remove(key)
		}
	}
}

// Purge drops every cached report
func (s *ReportService) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cache.Purge()
}

func (s *ReportService) cached(report, key string) (any, bool) {
	v, ok := s.cache.Get(key)
	if ok {
		metrics.CacheHits.WithLabelValues(report).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(report).Inc()
	}
	return v, ok
}

func (s *ReportService) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// store caches v unless an invalidation happened since epoch was read
func (s *ReportService) store(key string, epoch uint64, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch == epoch {
		s.cache.Add(key, v)
	}
}

// Daily summarizes every session whose calendar day is date (YYYY-MM-DD)
func (s *ReportService) Daily(ctx context.Context, date string) (*models.DailyReport, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return nil, ErrInvalidDate
	}
	date = d.Format(time.DateOnly)

	key := dailyKey(date)
	if v, ok := s.cached("daily", key); ok {
		return v.(*models.DailyReport), nil
	}

	epoch := s.currentEpoch()
	sessions, err := s.games.ListSessionsByDay(ctx, date)
	if err != nil {
		return nil, err
	}

	report := buildDailyReport(date, sessions, s.maxAttempts)
	s.store(key, epoch, report)
	return report, nil
}

// User summarizes the full history of username
func (s *ReportService) User(ctx context.Context, username string) (*models.UserReport, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	today := s.now().UTC()
	key := userKeyPrefix(user.ID) + today.Format(time.DateOnly)
	if v, ok := s.cached("user", key); ok {
		return v.(*models.UserReport), nil
	}

	epoch := s.currentEpoch()
	sessions, err := s.games.ListSessionsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	report := buildUserReport(user.Username, sessions, s.maxAttempts, today)
	s.store(key, epoch, report)
	return report, nil
}

func newDistribution(maxAttempts int, sessions []models.SessionSummary) map[int]int {
	for _, sum := range sessions {
		maxAttempts = max(maxAttempts, sum.Session.MaxAttempts)
	}
	dist := make(map[int]int, maxAttempts)
	for i := 1; i <= maxAttempts; i++ {
		dist[i] = 0
	}
	return dist
}

func buildDailyReport(date string, sessions []models.SessionSummary, maxAttempts int) *models.DailyReport {
	report := &models.DailyReport{
		Date:              date,
		GuessDistribution: newDistribution(maxAttempts, sessions),
		Words:             []string{},
		Games:             []models.DailyGameRow{},
	}

	players := make(map[int64]bool)
	words := make(map[string]bool)
	winGuesses := 0

	for _, sum := range sessions {
		sess := sum.Session
		report.Started++
		players[sess.UserID] = true

		row := models.DailyGameRow{
			Username: sum.Username,
			Status:   sess.Status,
			Attempts: sum.Attempts,
		}
		switch sess.Status {
		case models.StatusWon:
			report.Won++
			winGuesses += sum.Attempts
			report.GuessDistribution[sum.Attempts]++
		case models.StatusLost:
			report.Lost++
		default:
			report.Active++
		}
		if sess.Status.IsTerminal() {
			row.TargetWord = sess.TargetWord
			words[sess.TargetWord] = true
		}
		report.Games = append(report.Games, row)
	}

	report.UniquePlayers = len(players)
	report.WinRate = percentage(report.Won, report.Won+report.Lost)
	if report.Won > 0 {
		report.AverageGuessesToWin = round2(float64(winGuesses) / float64(report.Won))
	}
	for w := range words {
		report.Words = append(report.Words, w)
	}
	sort.Strings(report.Words)

	return report
}

func buildUserReport(username string, sessions []models.SessionSummary, maxAttempts int, today time.Time) *models.UserReport {
	report := &models.UserReport{
		Username:          username,
		GuessDistribution: newDistribution(maxAttempts, sessions),
		Days:              []models.UserDayRow{},
	}

	winDays := make(map[string]bool)
	dayIndex := make(map[string]int)

	for _, sum := range sessions {
		sess := sum.Session
		report.TotalGames++

		idx, ok := dayIndex[sess.CalendarDay]
		if !ok {
			idx = len(report.Days)
			dayIndex[sess.CalendarDay] = idx
			report.Days = append(report.Days, models.UserDayRow{Date: sess.CalendarDay})
		}
		day := &report.Days[idx]
		day.Total++

		row := models.UserGameRow{
			SessionID: sess.ID,
			Status:    sess.Status,
			Attempts:  sum.Attempts,
		}
		switch sess.Status {
		case models.StatusWon:
			report.Won++
			day.Correct++
			winDays[sess.CalendarDay] = true
			report.GuessDistribution[sum.Attempts]++
		case models.StatusLost:
			report.Lost++
		default:
			report.Active++
		}
		if sess.Status.IsTerminal() {
			row.TargetWord = sess.TargetWord
		}
		day.Games = append(day.Games, row)
	}

	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Date < report.Days[j].Date })
	for i := range report.Days {
		report.Days[i].Accuracy = percentage(report.Days[i].Correct, report.Days[i].Total)
	}

	report.WinRate = percentage(report.Won, report.Won+report.Lost)
	report.CurrentStreak, report.BestStreak = streaks(winDays, today)
	return report
}

// streaks counts consecutive calendar days with at least one win.
// The current streak must end today or yesterday.
func streaks(winDays map[string]bool, today time.Time) (current, best int) {
	days := make([]time.Time, 0, len(winDays))
	for d := range winDays {
		t, err := time.Parse(time.DateOnly, d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i, d := range days {
		if i > 0 && d.Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}

	day := today.UTC().Truncate(24 * time.Hour)
	if !winDays[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	for winDays[day.Format(time.DateOnly)] {
		current++
		day = day.AddDate(0, 0, -1)
	}
	return current, best
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
