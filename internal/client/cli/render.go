package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/guard"
)

const timeLayout = "2006-01-02 15:04"

// renderError prints err the way the screens present failures. Unauthorized
// errors are not printed: the session hook has already redirected to login.
func (a *App) renderError(ctx context.Context, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	switch client.KindOf(err) {
	case client.KindUnauthorized:
		return
	case client.KindNetwork:
		fmt.Fprintln(a.out, "service unavailable, try again later")
	case client.KindForbidden:
		fmt.Fprintln(a.out, "permission denied")
	case client.KindNotFound:
		fmt.Fprintln(a.out, "record not found")
		a.nav.redirect(ctx, guard.DashboardPath)
	case client.KindValidation:
		renderValidation(a.out, err)
	default:
		a.log.Error(ctx, "command failed", "error", err)
		fmt.Fprintln(a.out, "error:", err)
	}
}

func renderValidation(w io.Writer, err error) {
	fields := client.FieldErrors(err)
	if len(fields) == 0 {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintln(w, apiErr.Message)
			return
		}
		fmt.Fprintln(w, err)
		return
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, fields[name])
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
