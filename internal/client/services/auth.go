package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/session"
)

var ErrBadLoginResponse = errors.New("login response has no token or user")

// AuthService covers login, registration, password change and logout.
type AuthService interface {
	Login(ctx context.Context, form LoginForm) (session.Snapshot, error)
	Register(ctx context.Context, form RegisterForm) (session.Snapshot, error)
	ChangePassword(ctx context.Context, form ChangePasswordForm) (string, error)
	Logout(ctx context.Context) session.Snapshot
}

type authService struct {
	api     client.API
	session *session.Session
}

func NewAuthService(api client.API, s *session.Session) AuthService {
	return &authService{api: api, session: s}
}

func (a *authService) Login(ctx context.Context, form LoginForm) (session.Snapshot, error) {
	if err := asValidationError(form.Validate()); err != nil {
		return a.session.Snapshot(), err
	}

	res, err := a.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		return a.session.Snapshot(), err
	}
	if res.Token == "" || res.User == nil {
		return a.session.Snapshot(), ErrBadLoginResponse
	}
	if err := ctx.Err(); err != nil {
		return a.session.Snapshot(), err
	}

	snap, err := a.session.Login(ctx, *res.User, res.Token)
	if err != nil {
		return snap, fmt.Errorf("login: %w", err)
	}
	return snap, nil
}

// Register creates the account and logs straight in with the same
// credentials.
func (a *authService) Register(ctx context.Context, form RegisterForm) (session.Snapshot, error) {
	if err := asValidationError(form.Validate()); err != nil {
		return a.session.Snapshot(), err
	}
	if _, err := a.api.Register(ctx, form.Email, form.Password); err != nil {
		return a.session.Snapshot(), err
	}
	return a.Login(ctx, LoginForm{Email: form.Email, Password: form.Password})
}

func (a *authService) ChangePassword(ctx context.Context, form ChangePasswordForm) (string, error) {
	if err := asValidationError(form.Validate()); err != nil {
		return "", err
	}
	return a.api.ChangePassword(ctx, form.CurrentPassword, form.NewPassword)
}

func (a *authService) Logout(ctx context.Context) session.Snapshot {
	return a.session.Logout(ctx)
}
