package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"wordle/internal/config"
	"wordle/internal/database"
	"wordle/internal/models"
	"wordle/internal/repository"
	"wordle/internal/service"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "wordctl",
		Usage: "Operator tool for the word game database (uses the server's DB_* environment)",
		Commands: []*cli.Command{
			reportCommand(),
			exportCommand(),
			importCommand(),
			userCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	cfg   *config.Config
	db    *database.DB
	users *repository.UserRepository
	games *repository.GameRepository
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.OpenFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &app{
		cfg:   cfg,
		db:    db,
		users: repository.NewUserRepository(db),
		games: repository.NewGameRepository(db),
	}, nil
}

func (a *app) reports() (*service.ReportService, error) {
	return service.NewReportService(a.games, a.users, 1, a.cfg.MaxAttempts)
}

func (a *app) backups() *service.BackupService {
	return service.NewBackupService(a.db, a.users, a.games)
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print admin reports",
		Commands: []*cli.Command{
			{
				Name:  "daily",
				Usage: "Summarize one calendar day",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD (default: today, UTC)"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := openApp(ctx)
					if err != nil {
						return err
					}
					defer a.db.Close()

					date := c.String("date")
					if date == "" {
						date = time.Now().UTC().Format(time.DateOnly)
					}
					reports, err := a.reports()
					if err != nil {
						return err
					}
					report, err := reports.Daily(ctx, date)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(report)
					}
					printDailyReport(report)
					return nil
				},
			},
			{
				Name:  "user",
				Usage: "Summarize one player's history",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := openApp(ctx)
					if err != nil {
						return err
					}
					defer a.db.Close()

					reports, err := a.reports()
					if err != nil {
						return err
					}
					report, err := reports.User(ctx, c.String("username"))
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(report)
					}
					printUserReport(report)
					return nil
				},
			},
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export users, games, guesses and hints to a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Usage: "output file path (default: backup_YYYYMMDD_HHMMSS.json)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			outputPath := c.String("output")
			if outputPath == "" {
				outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.db.Close()

			if err := a.backups().Export(ctx, outputPath); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if info, err := os.Stat(outputPath); err == nil {
				log.Printf("Export complete! File size: %.2f MB", float64(info.Size())/1024/1024)
			}
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Restore a JSON export into the database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Required: true, Usage: "input file path"},
			&cli.BoolFlag{Name: "clear", Usage: "delete all existing data first (destructive)"},
			&cli.BoolFlag{Name: "yes", Usage: "skip the confirmation prompt for --clear"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			inputPath := c.String("input")
			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("input file: %w", err)
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.db.Close()

			if c.Bool("clear") {
				if !c.Bool("yes") && !confirm("WARNING: This will delete all existing data. Type 'yes' to confirm: ") {
					log.Println("Import cancelled")
					return nil
				}
				log.Println("Clearing existing data...")
				if err := clearDatabase(ctx, a.db); err != nil {
					return err
				}
			}

			if err := a.backups().Import(ctx, inputPath); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			log.Println("Import complete!")
			return nil
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage player accounts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all accounts",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := openApp(ctx)
					if err != nil {
						return err
					}
					defer a.db.Close()

					users, err := a.users.GetAllUsers(ctx)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(users)
					}
					printUsers(users)
					return nil
				},
			},
			{
				Name:  "promote",
				Usage: "Grant the admin role",
				Flags: []cli.Flag{&cli.StringFlag{Name: "username", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					return setRole(ctx, c.String("username"), models.RoleAdmin)
				},
			},
			{
				Name:  "demote",
				Usage: "Revoke the admin role",
				Flags: []cli.Flag{&cli.StringFlag{Name: "username", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					return setRole(ctx, c.String("username"), models.RolePlayer)
				},
			},
		},
	}
}

func setRole(ctx context.Context, username, role string) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.db.Close()

	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return service.ErrUserNotFound
	}
	if err := a.users.SetRole(ctx, user.ID, role); err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", user.Username, role)
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

func clearDatabase(ctx context.Context, db *database.DB) error {
	// Delete in reverse order of dependencies
	tables := []string{"hints", "guesses", "game_sessions", "users"}

	return db.WithTx(ctx, func(tx *database.Tx) error {
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Printf("Cleared table: %s", table)
		}
		return nil
	})
}
