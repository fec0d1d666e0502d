package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/irccwatch/internal/client/guard"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

// Dashboard lists the user's monitored credentials.
func (a *App) Dashboard(ctx context.Context) error {
	if _, _, ok := a.nav.enter(guard.DashboardPath); !ok {
		return nil
	}

	list, err := a.credentialService.Mine(ctx)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	if len(list.Credentials) == 0 {
		fmt.Fprintln(a.out, "No credentials yet. Use 'add' to start monitoring an application.")
		return nil
	}

	fmt.Fprintf(a.out, "%d credential(s)\n", list.Total)
	return writeCredentials(a.out, list.Credentials, false)
}

func writeCredentials(w io.Writer, creds []models.Credential, withOwner bool) error {
	tw := newTable(w)
	header := "ID\tIRCC USER\tAPPLICATION\tTYPE\tACTIVE\tLAST STATUS\tLAST CHECKED"
	if withOwner {
		header += "\tOWNER"
	}
	fmt.Fprintln(tw, header)

	for _, c := range creds {
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s",
			c.ID, c.IRCCUsername, orDash(c.ApplicationNumber), c.ApplicationType,
			yesNo(c.IsActive), orDash(c.LastStatus), formatTime(c.LastCheckedAt.Time))
		if withOwner {
			owner := c.OwnerEmail
			if owner == "" {
				owner = c.UserID
			}
			row += "\t" + orDash(owner)
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

// AddCredential prompts for the IRCC portal login and the notification
// address and starts monitoring it.
func (a *App) AddCredential(ctx context.Context) error {
	if _, _, ok := a.nav.enter("/credentials/new"); !ok {
		return nil
	}

	username, err := getSimpleText(a.reader, "IRCC username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("IRCC password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	email, err := getSimpleText(a.reader, "Notification email", a.out)
	if err != nil {
		return err
	}

	appType, err := getSimpleText(a.reader, "Application type (citizen/immigrant) [citizen]", a.out)
	if err != nil {
		return err
	}

	created, err := a.credentialService.Create(ctx, models.CredentialInput{
		IRCCUsername:      username,
		IRCCPassword:      string(password),
		NotificationEmail: email,
		IsActive:          true,
		ApplicationType:   models.ApplicationType(strings.ToLower(appType)),
	})
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Credential %s saved\n", created.ID)
	return nil
}

// EditCredential shows the current values and asks for replacements.
// Blank answers keep the current value.
func (a *App) EditCredential(ctx context.Context, id string) error {
	if _, _, ok := a.nav.enter("/credentials/" + id); !ok {
		return nil
	}

	cur, err := a.credentialService.Get(ctx, id)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	var patch models.CredentialPatch

	username, err := getSimpleText(a.reader, fmt.Sprintf("IRCC username [%s]", cur.IRCCUsername), a.out)
	if err != nil {
		return err
	}
	if username != "" && username != cur.IRCCUsername {
		patch.IRCCUsername = &username
	}

	password, err := getPassword("IRCC password (blank keeps current)", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)
	if len(password) > 0 {
		p := string(password)
		patch.IRCCPassword = &p
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Notification email [%s]", cur.NotificationEmail), a.out)
	if err != nil {
		return err
	}
	if email != "" && email != cur.NotificationEmail {
		patch.NotificationEmail = &email
	}

	appType, err := getSimpleText(a.reader, fmt.Sprintf("Application type [%s]", cur.ApplicationType), a.out)
	if err != nil {
		return err
	}
	if t := models.ApplicationType(strings.ToLower(appType)); t != "" && t != cur.ApplicationType {
		patch.ApplicationType = &t
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	if _, err := a.credentialService.Update(ctx, id, patch); err != nil {
		a.renderError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Credential %s updated\n", id)
	return nil
}

// ToggleCredential switches monitoring on or off.
func (a *App) ToggleCredential(ctx context.Context, id string) error {
	if _, _, ok := a.nav.enter("/credentials/" + id); !ok {
		return nil
	}

	cur, err := a.credentialService.Get(ctx, id)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	updated, err := a.credentialService.SetActive(ctx, id, !cur.IsActive)
	if err != nil {
		a.renderError(ctx, err)
		return err
	}

	if updated.IsActive {
		fmt.Fprintf(a.out, "Monitoring enabled for %s\n", id)
	} else {
		fmt.Fprintf(a.out, "Monitoring disabled for %s\n", id)
	}
	return nil
}

// DeleteCredential removes a credential after confirmation.
func (a *App) DeleteCredential(ctx context.Context, id string) error {
	if _, _, ok := a.nav.enter("/credentials/" + id); !ok {
		return nil
	}

	yes, err := Confirm(a.reader, fmt.Sprintf("Delete credential %s?", id), a.out)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.credentialService.Delete(ctx, id); err != nil {
		a.renderError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Credential %s deleted\n", id)
	return nil
}
