package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/records"
)

func (c *Console) register(ctx context.Context, _ []string) error {
	var (
		r   models.Registration
		err error
	)
	if r.Email, err = c.ask("Email"); err != nil {
		return err
	}
	if r.Password, err = c.password("Password"); err != nil {
		return err
	}
	if r.FirstName, err = c.ask("First name"); err != nil {
		return err
	}
	if r.LastName, err = c.ask("Last name"); err != nil {
		return err
	}

	if _, err := c.store.Users.Register(ctx, r); err != nil {
		return err
	}
	return c.startSession(ctx, r.Email, r.Password)
}

func (c *Console) login(ctx context.Context, _ []string) error {
	email, err := c.ask("Email")
	if err != nil {
		return err
	}
	password, err := c.password("Password")
	if err != nil {
		return err
	}
	return c.startSession(ctx, email, password)
}

func (c *Console) startSession(ctx context.Context, email, password string) error {
	token, user, err := c.store.Users.Login(ctx, email, password)
	if errors.Is(err, common.ErrorUnauthorized) {
		fmt.Fprintln(c.out, "Login unsuccessful: invalid email or password")
		return nil
	}
	if err != nil {
		return err
	}

	c.token = token
	fmt.Fprintf(c.out, "Welcome, %s!\n", user.FullName())
	return nil
}

func (c *Console) logout(_ context.Context, _ []string) error {
	c.token = ""
	fmt.Fprintln(c.out, "Logged out")
	return nil
}

func (c *Console) whoami(ctx context.Context, _ []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	return c.print(records.User(u))
}

func (c *Console) editProfile(ctx context.Context, _ []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if patch.FirstName, err = c.askOptional("First name", u.FirstName); err != nil {
		return err
	}
	if patch.LastName, err = c.askOptional("Last name", u.LastName); err != nil {
		return err
	}
	pw, err := c.password("New password (empty keeps the current one)")
	if err != nil {
		return err
	}
	if pw != "" {
		patch.Password = &pw
		current, err := c.password("Current password")
		if err != nil {
			return err
		}
		patch.CurrentPassword = &current
	}

	u, err = c.store.Users.Update(ctx, u.ID, patch)
	if errors.Is(err, common.ErrorUnauthorized) {
		fmt.Fprintln(c.out, "Wrong password, profile unchanged")
		return nil
	}
	if err != nil {
		return err
	}
	return c.print(records.User(u))
}

// changeEmail re-authenticates before touching the address.
func (c *Console) changeEmail(ctx context.Context, _ []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}

	email, err := c.ask("New email")
	if err != nil {
		return err
	}
	pw, err := c.password("Current password")
	if err != nil {
		return err
	}

	u, ok, err := c.store.Users.ChangeEmail(ctx, u.ID, pw, email)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "Wrong password, email unchanged")
		return nil
	}
	return c.print(records.User(u))
}

func (c *Console) deleteAccount(ctx context.Context, _ []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}

	answer, err := c.ask(fmt.Sprintf("Type 'yes' to delete %s with all calendars and events", u.Email))
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(c.out, "Cancelled")
		return nil
	}

	if err := c.store.Users.Delete(ctx, u.ID); err != nil {
		return err
	}
	c.token = ""
	fmt.Fprintln(c.out, "Account deleted")
	return nil
}
