package console

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/records"
)

func (c *Console) listCalendars(ctx context.Context, _ []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	list, err := c.store.Calendars.ListByOwner(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(c.out, "No calendars yet, create one with 'newcal'")
		return nil
	}
	return c.print(records.Calendars(list))
}

func (c *Console) showCalendar(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Calendar id")
	if err != nil {
		return err
	}
	cal, err := c.store.Calendars.Visible(ctx, u.ID, id)
	if err != nil {
		return err
	}
	return c.print(records.Calendar(cal))
}

func (c *Console) createCalendar(ctx context.Context, _ []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}

	var in models.CalendarInput
	if in.Name, err = c.ask("Name"); err != nil {
		return err
	}
	if in.Description, err = c.ask("Description"); err != nil {
		return err
	}
	if in.IsPublic, err = c.askBool("Public", false); err != nil {
		return err
	}

	cal, err := c.store.Calendars.Create(ctx, u.ID, in)
	if err != nil {
		return err
	}
	return c.print(records.Calendar(cal))
}

func (c *Console) editCalendar(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Calendar id")
	if err != nil {
		return err
	}
	cal, err := c.store.Calendars.AuthorizeCalendar(ctx, u.ID, id)
	if err != nil {
		return err
	}

	var patch models.CalendarPatch
	if patch.Name, err = c.askOptional("Name", cal.Name); err != nil {
		return err
	}
	if patch.Description, err = c.askOptional("Description", cal.Description); err != nil {
		return err
	}
	if patch.IsPublic, err = c.askOptionalBool("Public", cal.IsPublic); err != nil {
		return err
	}

	cal, err = c.store.Calendars.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	return c.print(records.Calendar(cal))
}

func (c *Console) deleteCalendar(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Calendar id")
	if err != nil {
		return err
	}
	if _, err := c.store.Calendars.AuthorizeCalendar(ctx, u.ID, id); err != nil {
		return err
	}
	if err := c.store.Calendars.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Calendar %d deleted\n", id)
	return nil
}
