package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown username and for a wrong
// password alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthenticated)

const TokenType = "bearer"

type AuthService struct {
	users    *repository.UserRepository
	hasher   *auth.PasswordHasher
	issuer   *auth.TokenIssuer
	tokenTTL time.Duration

	// dummyHash is compared against when the username does not exist so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(users *repository.UserRepository, hasher *auth.PasswordHasher, issuer *auth.TokenIssuer, tokenTTL time.Duration) (*AuthService, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		tokenTTL:  tokenTTL,
		dummyHash: dummy,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || len(username) > 50 {
		return nil, fmt.Errorf("%w: username is required and must be at most 50 characters", apperr.ErrInvalid)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email || len(email) > 120 {
		return nil, fmt.Errorf("%w: a valid email is required", apperr.ErrInvalid)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		s.hasher.Verify(req.Password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	username, err := s.issuer.Validate(token)
	if err != nil {
		return nil, err
	}
	return s.CurrentUser(ctx, username)
}

// CurrentUser loads the user named by a validated token subject. A user that
// disappeared since the token was issued is treated as unauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, auth.ErrInvalidToken
	}
	return user, err
}

func (s *AuthService) ListUsers(ctx context.Context, page repository.Page) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// EnsureAdmin creates the bootstrap account when no user exists yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	if email == "" {
		email = username + "@localhost.localdomain"
	}
	if _, err := s.Register(ctx, &dto.RegisterRequest{Username: username, Email: email, Password: password}); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil
		}
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	slog.Info("bootstrap user created", "username", username)
	return nil
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
