package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Default cost for bcrypt password hashing
const bcryptCost = 10

// Claims are embedded in every bearer token.
type Claims struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthService struct {
	users      repository.UserRepository
	secret     []byte
	ttl        time.Duration
	adminEmail string
	validate   *validator.Validate
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration, adminEmail string) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		ttl:        ttl,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		validate:   newValidator(),
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Register creates a customer account. Only the configured admin email is
// granted admin rights.
func (s *AuthService) Register(ctx context.Context, creds Credentials) (*models.User, string, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := validateStruct(s.validate, &creds); err != nil {
		return nil, "", err
	}

	_, err := s.users.FindByEmail(ctx, creds.Email)
	if err == nil {
		return nil, "", ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", &PersistenceError{Op: "find user", Err: err}
	}

	user, err := s.createUser(ctx, creds.Email, creds.Password, s.adminEmail != "" && creds.Email == s.adminEmail)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		verr := &ValidationError{Fields: map[string]string{}}
		if email == "" {
			verr.Fields["email"] = "is required"
		}
		if creds.Password == "" {
			verr.Fields["password"] = "is required"
		}
		return nil, "", verr
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", &PersistenceError{Op: "find user", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find user", Err: err}
	}
	return user, nil
}

// IssueToken signs an HS256 token carrying id, email and is_admin.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		slog.Warn("Admin credentials not configured, skipping bootstrap admin")
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return &PersistenceError{Op: "find admin", Err: err}
	}

	if _, err := s.createUser(ctx, email, password, true); err != nil {
		return err
	}
	slog.Info("Admin user created successfully", "email", email)
	return nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string, isAdmin bool) (*models.User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hashed, IsAdmin: isAdmin}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, &PersistenceError{Op: "create user", Err: err}
	}
	return user, nil
}
