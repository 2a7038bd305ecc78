package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"workouttracker/app/internal/auth"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("failed to generate session token")
	ErrUserNotFound         = errors.New("user not found")
)

// SignInResult is returned after a successful OAuth sign-in.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	// SignIn records the provider identity as a user and issues a session token.
	SignIn(ctx context.Context, identity *auth.Identity) (*SignInResult, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	if tokens == nil {
		panic("token manager cannot be nil") // Critical configuration
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) SignIn(ctx context.Context, identity *auth.Identity) (*SignInResult, error) {
	if identity == nil || identity.Provider == "" || identity.Subject == "" {
		return nil, ErrAuthenticationFailed
	}

	user := &domain.User{
		Provider: identity.Provider,
		Subject:  identity.Subject,
		Name:     identity.Name,
		Email:    identity.Email,
		Image:    identity.Picture,
	}
	if err := s.userRepo.UpsertByProvider(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &SignInResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) GetUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
