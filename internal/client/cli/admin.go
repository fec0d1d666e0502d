package cli

import (
	"context"
	"fmt"
	"slices"
)

const adminPath = "/admin"

// Admin prints system statistics and every user's credentials.
func (a *App) Admin(ctx context.Context) error {
	if _, _, ok := a.nav.enter(adminPath); !ok {
		return nil
	}

	stats, err := a.adminService.Dashboard(ctx)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "System: %s\n", orDash(stats.SystemStatus))
	fmt.Fprintf(a.out, "Users: %d total, %d active, %d inactive\n",
		stats.Users.Total, stats.Users.Active, stats.Users.Inactive)
	fmt.Fprintf(a.out, "Credentials: %d\n", stats.Credentials.Total)

	statuses := make([]string, 0, len(stats.Credentials.StatusDistribution))
	for s := range stats.Credentials.StatusDistribution {
		statuses = append(statuses, s)
	}
	slices.Sort(statuses)
	for _, s := range statuses {
		fmt.Fprintf(a.out, "  %-20s %d\n", s, stats.Credentials.StatusDistribution[s])
	}

	list, err := a.credentialService.All(ctx)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}
	if len(list.Credentials) == 0 {
		return nil
	}

	fmt.Fprintln(a.out)
	return writeCredentials(a.out, list.Credentials, true)
}

// CheckAll asks the backend to poll every active credential now.
func (a *App) CheckAll(ctx context.Context) error {
	return a.adminAction(ctx, a.adminService.CheckAll, "Check started")
}

// TestEmail asks the backend to send a test notification.
func (a *App) TestEmail(ctx context.Context) error {
	return a.adminAction(ctx, a.adminService.TestEmail, "Test e-mail sent")
}

func (a *App) adminAction(ctx context.Context, fn func(context.Context) (string, error), fallback string) error {
	if _, _, ok := a.nav.enter(adminPath); !ok {
		return nil
	}

	msg, err := fn(ctx)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
