package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wordle/internal/database"
	"wordle/internal/models"
	"wordle/internal/repository"
	"wordle/internal/security"
	"wordle/internal/validation"
)

// AuthService handles registration, login and token validation
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenManager
	db       *database.DB
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenManager, db *database.DB) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		db:       db,
	}
}

// LoginResult carries the bearer token issued at login
type LoginResult struct {
	Token    string
	Username string
	Role     string
}

// Register creates a new account. The first account becomes an admin.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	bad, err := s.db.ContainsBadWord(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if bad {
		return nil, ErrInappropriateUsername
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, username, passwordHash)
	if err != nil {
		return nil, err
	}

	log.Printf("User registered: %s (role=%s)", user.Username, user.Role)
	return user, nil
}

// Login checks credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

// Authenticate validates a bearer token and loads the current user.
// The role comes from the database, not the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
