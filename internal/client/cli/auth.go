package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/guard"
	"github.com/dmitrijs2005/irccwatch/internal/client/services"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and a password twice and creates the
// account. A successful registration logs the user in and opens the
// dashboard.
func (a *App) Register(ctx context.Context) error {
	if _, _, ok := a.nav.enter("/register"); !ok {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	snap, err := a.authService.Register(ctx, services.RegisterForm{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Account created. Signed in as %s\n", snap.User.Email)
	return a.Dashboard(ctx)
}

// Login prompts for credentials and opens the dashboard on success. A
// rejected login is reported as such instead of being swallowed like other
// unauthorized responses.
func (a *App) Login(ctx context.Context) error {
	if _, _, ok := a.nav.enter(guard.LoginPath); !ok {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	snap, err := a.authService.Login(ctx, services.LoginForm{Email: email, Password: string(password)})
	if err != nil {
		if client.KindOf(err) == client.KindUnauthorized {
			fmt.Fprintln(a.out, "invalid email or password")
		} else {
			a.renderError(ctx, err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", snap.User.Email, snap.User.Role)
	return a.Dashboard(ctx)
}

// Logout clears the stored token and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.nav.redirect(ctx, guard.LoginPath)
	return nil
}

// ChangePassword asks for the current password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	if _, _, ok := a.nav.enter("/account/password"); !ok {
		return nil
	}

	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(current)

	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(next)

	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	msg, err := a.authService.ChangePassword(ctx, services.ChangePasswordForm{
		CurrentPassword: string(current),
		NewPassword:     string(next),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	if msg == "" {
		msg = "Password changed"
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
