package console

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/filex"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/records"
)

func (c *Console) listEvents(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Calendar id")
	if err != nil {
		return err
	}
	if _, err := c.store.Calendars.Visible(ctx, u.ID, id); err != nil {
		return err
	}

	list, err := c.store.Events.ListByCalendar(ctx, id)
	if err != nil {
		return err
	}
	return c.printEvents(list)
}

// showEvent prints an event to its creator or to anyone who can see its
// calendar.
func (c *Console) showEvent(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Event id")
	if err != nil {
		return err
	}
	ev, err := c.store.Events.Get(ctx, id)
	if err != nil {
		return err
	}
	if ev.CreatorID != u.ID {
		if _, err := c.store.Calendars.Visible(ctx, u.ID, ev.CalendarID); err != nil {
			return err
		}
	}
	return c.print(records.Event(ev))
}

func (c *Console) createEvent(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	calID, err := c.idArg(args, "Calendar id")
	if err != nil {
		return err
	}
	if _, err := c.store.Calendars.AuthorizeCalendar(ctx, u.ID, calID); err != nil {
		return err
	}

	var in models.EventInput
	if in.Title, err = c.ask("Title"); err != nil {
		return err
	}
	if in.Description, err = c.ask("Description"); err != nil {
		return err
	}
	if in.StartTime, err = c.askTime("Start (" + common.TimestampLayout + " or e.g. 'tomorrow 9am')"); err != nil {
		return err
	}
	if in.StartTime.IsZero() {
		return common.NewFieldError("start_time", common.ErrorMissingField)
	}
	if in.EndTime, err = c.askTime("End (empty for same as start)"); err != nil {
		return err
	}
	if in.EndTime.IsZero() {
		in.EndTime = in.StartTime
	}
	if in.Location, err = c.ask("Location"); err != nil {
		return err
	}
	if in.BgColor, err = c.ask("Background color (empty for " + common.DefaultBgColor + ")"); err != nil {
		return err
	}
	if in.TxtColor, err = c.ask("Text color (empty for " + common.DefaultTxtColor + ")"); err != nil {
		return err
	}
	if in.AllDay, err = c.askBool("All day", false); err != nil {
		return err
	}

	ev, err := c.store.Events.Create(ctx, calID, u.ID, in)
	if err != nil {
		return err
	}
	return c.print(records.Event(ev))
}

func (c *Console) editEvent(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Event id")
	if err != nil {
		return err
	}
	ev, err := c.store.Events.AuthorizeEvent(ctx, u.ID, id)
	if err != nil {
		return err
	}

	var patch models.EventPatch
	if patch.Title, err = c.askOptional("Title", ev.Title); err != nil {
		return err
	}
	if patch.Description, err = c.askOptional("Description", ev.Description); err != nil {
		return err
	}
	if patch.StartTime, err = c.askOptionalTime("Start", ev.StartTime); err != nil {
		return err
	}
	if patch.EndTime, err = c.askOptionalTime("End", ev.EndTime); err != nil {
		return err
	}
	if patch.Location, err = c.askOptional("Location", ev.Location); err != nil {
		return err
	}
	if patch.BgColor, err = c.askOptional("Background color", ev.BgColor); err != nil {
		return err
	}
	if patch.TxtColor, err = c.askOptional("Text color", ev.TxtColor); err != nil {
		return err
	}
	if patch.AllDay, err = c.askOptionalBool("All day", ev.AllDay); err != nil {
		return err
	}

	ev, err = c.store.Events.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	return c.print(records.Event(ev))
}

func (c *Console) deleteEvent(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	id, err := c.idArg(args, "Event id")
	if err != nil {
		return err
	}
	if _, err := c.store.Events.AuthorizeEvent(ctx, u.ID, id); err != nil {
		return err
	}
	if err := c.store.Events.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Event %d deleted\n", id)
	return nil
}

func (c *Console) upcoming(ctx context.Context, args []string) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}

	limit := 0
	if len(args) > 0 {
		if limit, err = strconv.Atoi(args[0]); err != nil || limit <= 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
	}

	list, err := c.store.Events.UpcomingForUser(ctx, u.ID, c.now(), limit)
	if err != nil {
		return err
	}
	return c.printEvents(list)
}

// export writes the calendar with all its events to ExportDir.
func (c *Console) export(ctx context.Context, args []string) error {
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
	list, err := c.store.Events.ListByCalendar(ctx, id)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureDir(c.cfg.ExportDir)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	name := filepath.Join(dir, records.ExportFileName(cal, c.now()))
	if err := filex.WriteFile(name, []byte(records.ExportICS(cal, list))); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	c.logger.Info(ctx, "calendar exported", "calendar_id", id, "events", len(list), "path", name)
	fmt.Fprintf(c.out, "Exported %d events to %s\n", len(list), name)
	return nil
}

func (c *Console) colors(_ context.Context, _ []string) error {
	fmt.Fprintln(c.out, "Background colors:")
	for _, col := range common.BgColors {
		fmt.Fprintf(c.out, "  %s  %s\n", col.Hex, col.Name)
	}
	fmt.Fprintln(c.out, "Text colors:")
	for _, col := range common.TxtColors {
		fmt.Fprintf(c.out, "  %s  %s\n", col.Hex, col.Name)
	}
	return nil
}

func (c *Console) printEvents(list []models.Event) error {
	if len(list) == 0 {
		fmt.Fprintln(c.out, "No events")
		return nil
	}
	return c.print(records.Events(list))
}
