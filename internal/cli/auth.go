package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
)

// Register prompts for email, name and password and creates a user account.
// The new account is signed in. The password is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.sessions.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", acc.Name)
	return nil
}

// Login prompts for credentials and signs in the account with that email.
// Passwords are not verified.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", acc.Email, acc.Role)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	s, ok := a.sessions.Current()
	if !ok {
		return common.ErrUnauthenticated
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s role=%s since %s\n",
		s.Account.Name, s.Account.Email, s.Account.ID, s.Account.Role, s.IssuedAt.Format("2006-01-02 15:04"))
	return nil
}

// Users lists the account registry. Admin only.
func (a *App) Users(ctx context.Context, _ []string) error {
	s, ok := a.sessions.Current()
	if !ok {
		return common.ErrUnauthenticated
	}
	if !s.IsAdmin() {
		return fmt.Errorf("only admins can list users")
	}

	list, err := a.sessions.Accounts(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tCREATED")
	for _, acc := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", acc.ID, acc.Email, acc.Name, acc.Role, acc.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
