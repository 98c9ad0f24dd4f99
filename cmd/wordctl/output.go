package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"wordle/internal/models"
)

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatDistribution(dist map[int]int) string {
	keys := make([]int, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d:%d", k, dist[k]))
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printDailyReport(r *models.DailyReport) {
	printKV([][2]string{
		{"date", r.Date},
		{"started", strconv.Itoa(r.Started)},
		{"won", strconv.Itoa(r.Won)},
		{"lost", strconv.Itoa(r.Lost)},
		{"active", strconv.Itoa(r.Active)},
		{"players", strconv.Itoa(r.UniquePlayers)},
		{"win_rate", fmt.Sprintf("%.2f%%", r.WinRate)},
		{"avg_guesses", fmt.Sprintf("%.2f", r.AverageGuessesToWin)},
		{"distribution", formatDistribution(r.GuessDistribution)},
		{"words", orDash(strings.Join(r.Words, ", "))},
	})
	fmt.Println()

	rows := make([][]string, 0, len(r.Games))
	for _, g := range r.Games {
		rows = append(rows, []string{g.Username, string(g.Status), strconv.Itoa(g.Attempts), orDash(g.TargetWord)})
	}
	printTable([]string{"USERNAME", "STATUS", "ATTEMPTS", "WORD"}, rows)
}

func printUserReport(r *models.UserReport) {
	printKV([][2]string{
		{"username", r.Username},
		{"games", strconv.Itoa(r.TotalGames)},
		{"won", strconv.Itoa(r.Won)},
		{"lost", strconv.Itoa(r.Lost)},
		{"active", strconv.Itoa(r.Active)},
		{"win_rate", fmt.Sprintf("%.2f%%", r.WinRate)},
		{"current_streak", strconv.Itoa(r.CurrentStreak)},
		{"best_streak", strconv.Itoa(r.BestStreak)},
		{"distribution", formatDistribution(r.GuessDistribution)},
	})
	fmt.Println()

	rows := make([][]string, 0, len(r.Days))
	for _, d := range r.Days {
		rows = append(rows, []string{d.Date, strconv.Itoa(d.Total), strconv.Itoa(d.Correct), fmt.Sprintf("%.2f%%", d.Accuracy)})
	}
	printTable([]string{"DATE", "GAMES", "WON", "ACCURACY"}, rows)
}

func printUsers(users []models.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Role,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	printTable([]string{"ID", "USERNAME", "ROLE", "CREATED_AT"}, rows)
}
