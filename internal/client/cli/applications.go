package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/irccwatch/internal/client/status"
)

// Applications lists every tracked application, most recently updated first.
func (a *App) Applications(ctx context.Context) error {
	if _, _, ok := a.nav.enter("/applications"); !ok {
		return nil
	}

	records, err := a.applicationService.List(ctx)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(a.out, "No applications tracked yet")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "APPLICATION\tSTATUS\tLAST UPDATED\tPROGRESS\tNEW EVENTS")
	for _, r := range records {
		done, total := r.Progress()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\n",
			r.ApplicationNumber, r.Status.Label(), formatTime(r.LastUpdated()), done, total, r.NewEvents())
	}
	return tw.Flush()
}

// Application shows one application's activities and history. An empty
// timestamp shows the latest snapshot.
func (a *App) Application(ctx context.Context, number, timestamp string) error {
	if _, _, ok := a.nav.enter("/applications/" + number); !ok {
		return nil
	}

	rec, err := a.applicationService.At(ctx, number, timestamp)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	return writeApplication(a.out, rec)
}

func writeApplication(w io.Writer, r status.ApplicationRecord) error {
	fmt.Fprintf(w, "Application %s", r.ApplicationNumber)
	if r.UCI != "" {
		fmt.Fprintf(w, " (UCI %s)", r.UCI)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status: %s, last updated %s\n\n", r.Status.Label(), formatTime(r.LastUpdated()))

	tw := newTable(w)
	fmt.Fprintln(tw, "ACTIVITY\tSTATUS")
	for _, act := range r.Activities {
		fmt.Fprintf(tw, "%s\t%s\n", act.Type.Label(), act.Status.Label())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.History) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "History:")
	for _, h := range r.History {
		mark := " "
		if h.IsNew {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s  %s\n", mark, formatTime(h.Time()), orDash(h.Heading))
		if h.Description != "" {
			fmt.Fprintf(w, "    %s\n", h.Description)
		}
	}
	return nil
}
