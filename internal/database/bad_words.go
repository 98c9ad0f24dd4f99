package database

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const badWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedBadWords fetches and seeds the bad words list used to screen usernames
func (db *DB) SeedBadWords(ctx context.Context) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bad_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check bad words count: %w", err)
	}

	if count > 0 {
		log.Printf("Bad words filter already populated with %d words", count)
		return nil
	}

	log.Println("Downloading bad words list...")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, badWordsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build bad words request: %w", err)
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download bad words list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from bad words URL: %d", resp.StatusCode)
	}

	var words []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading bad words: %w", err)
	}

	added, err := db.InsertBadWords(ctx, words)
	if err != nil {
		return err
	}

	log.Printf("Bad words filter populated with %d words", added)
	return nil
}

// InsertBadWords stores words in the filter table, skipping blanks and duplicates
func (db *DB) InsertBadWords(ctx context.Context, words []string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, db.Dialect.Bind("INSERT INTO bad_words (word) VALUES (?)"))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	seen := make(map[string]bool)
	added := 0
	for _, raw := range words {
		word := strings.TrimSpace(strings.ToLower(raw))
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true

		if _, err := stmt.ExecContext(ctx, word); err != nil {
			if db.Dialect.IsUniqueViolation(err) {
				continue
			}
			return 0, fmt.Errorf("failed to insert bad word: %w", err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return added, nil
}

// ContainsBadWord reports whether text contains any word from the filter table
func (db *DB) ContainsBadWord(ctx context.Context, text string) (bool, error) {
	clean := strings.TrimSpace(strings.ToLower(text))
	if clean == "" {
		return false, nil
	}

	var count int
	query := "SELECT COUNT(*) FROM bad_words WHERE word = ? OR (LENGTH(word) >= 4 AND " +
		db.Dialect.Contains("?", "word") + ")"
	if err := db.QueryRowContext(ctx, query, clean, clean).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check bad word: %w", err)
	}

	if count > 0 {
		log.Printf("Bad word detected in %q", text)
	}
	return count > 0, nil
}
