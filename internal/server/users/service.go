package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/server/auth"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the client-side form rule.
const MinPasswordLength = 6

type Service struct {
	repo                Repository
	jwtSecret           []byte
	tokenValidityPeriod time.Duration
}

func NewService(repo Repository, secretKey []byte, tokenValidityPeriod time.Duration) *Service {
	return &Service{
		repo:                repo,
		jwtSecret:           secretKey,
		tokenValidityPeriod: tokenValidityPeriod,
	}
}

func validateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password cannot be empty", shared.ErrorValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", shared.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrorValidation, MinPasswordLength)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	return s.create(ctx, email, password, RoleUser)
}

// Seed creates the account unless it already exists.
func (s *Service) Seed(ctx context.Context, email, password, role string) (*User, error) {
	u, err := s.create(ctx, email, password, role)
	if errors.Is(err, shared.ErrorAlreadyExists) {
		return s.repo.GetUserByEmail(ctx, email)
	}
	return u, err
}

func (s *Service) create(ctx context.Context, email, password, role string) (*User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the password and issues a token. Unknown users, wrong
// passwords and disabled accounts all yield ErrorInvalidLoginPassword.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", nil, shared.ErrorInvalidLoginPassword
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil || !user.IsActive {
		return "", nil, shared.ErrorInvalidLoginPassword
	}

	token, err := auth.GenerateToken(user.Email, user.Role, s.jwtSecret, s.tokenValidityPeriod)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Authenticate resolves a bearer token to its still-active user. The role
// is taken from the stored user so demotions apply immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.ErrorInvalidToken
	}

	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, email, current, next string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)) != nil {
		return fmt.Errorf("%w: current password is incorrect", shared.ErrorValidation)
	}
	if len(next) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrorValidation, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	return s.repo.Update(ctx, user)
}

type Stats struct {
	Total    int
	Active   int
	Inactive int
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(all)}
	for _, u := range all {
		if u.IsActive {
			st.Active++
		}
	}
	st.Inactive = st.Total - st.Active
	return st, nil
}
