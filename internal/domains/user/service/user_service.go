package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/pkg/token"
)

// bcryptCost balances hashing time against brute-force resistance.
const bcryptCost = 12

// userService implements user.Service.
type userService struct {
	repo   user.Repository
	tokens *token.Manager
}

func NewUserService(repo user.Repository, tokens *token.Manager) user.Service {
	return &userService{
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a new user and logs it in.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	// DTO validation runs in the handler; the length rule is re-checked
	// here because the hash must never be derived from a rejected input.
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, user.ErrPasswordTooShort
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, user.ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		Username:      req.Username,
		FullName:      req.FullName,
		PasswordHash:  string(passwordHash),
		FavoriteGenre: req.FavoriteGenre,
	}

	// The unique index on username is the enforcement point; the
	// availability check above is a fast path that can lose a race.
	created, err := s.repo.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}

	signed, expiresAt, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &user.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      created,
	}, nil
}

// Login verifies credentials and issues a token.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same failure as a wrong password, so responses cannot
			// be used to probe for usernames.
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &user.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      u,
	}, nil
}
