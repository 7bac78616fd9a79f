package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/config"
	"github.com/dmitrijs2005/gophcal/internal/logging"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/dmitrijs2005/gophcal/internal/services"
	"github.com/olebedev/when"
	whencommon "github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"gopkg.in/yaml.v3"
)

var errNotLoggedIn = errors.New("not logged in")

// Console is one interactive session over a store.
type Console struct {
	store  *services.Store
	cfg    *config.Config
	logger logging.Logger

	in  *bufio.Reader
	out io.Writer
	// fd is the terminal behind in, or -1.
	fd int

	when *when.Parser
	now  func() time.Time

	token    string
	commands []command
}

type command struct {
	name  string
	args  string
	help  string
	auth  bool
	run   func(ctx context.Context, args []string) error
	alias []string
}

// New builds a console reading commands from in and printing to out.
func New(store *services.Store, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) *Console {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(whencommon.All...)

	c := &Console{
		store:  store,
		cfg:    cfg,
		logger: logger.With("module", "console"),
		in:     bufio.NewReader(in),
		out:    out,
		fd:     fd,
		when:   w,
		now:    time.Now,
	}
	c.commands = c.commandTable()
	return c
}

func (c *Console) commandTable() []command {
	return []command{
		{name: "help", help: "show available commands", run: c.help},
		{name: "register", help: "create an account and log in", run: c.register},
		{name: "login", help: "log in", run: c.login},
		{name: "logout", help: "end the session", auth: true, run: c.logout},
		{name: "whoami", help: "show your profile", auth: true, run: c.whoami},
		{name: "profile", help: "edit name or password", auth: true, run: c.editProfile},
		{name: "email", help: "change email (asks for your password)", auth: true, run: c.changeEmail},
		{name: "deleteaccount", help: "delete your account with all calendars and events", auth: true, run: c.deleteAccount},
		{name: "calendars", help: "list your calendars", auth: true, run: c.listCalendars, alias: []string{"cals"}},
		{name: "calendar", args: "<id>", help: "show a calendar", auth: true, run: c.showCalendar, alias: []string{"cal"}},
		{name: "newcal", help: "create a calendar", auth: true, run: c.createCalendar},
		{name: "editcal", args: "<id>", help: "edit a calendar", auth: true, run: c.editCalendar},
		{name: "delcal", args: "<id>", help: "delete a calendar and its events", auth: true, run: c.deleteCalendar},
		{name: "events", args: "<calendar id>", help: "list events of a calendar", auth: true, run: c.listEvents},
		{name: "event", args: "<id>", help: "show an event", auth: true, run: c.showEvent},
		{name: "newevent", args: "<calendar id>", help: "create an event", auth: true, run: c.createEvent},
		{name: "editevent", args: "<id>", help: "edit an event", auth: true, run: c.editEvent},
		{name: "delevent", args: "<id>", help: "delete an event", auth: true, run: c.deleteEvent},
		{name: "upcoming", args: "[n]", help: "your next events", auth: true, run: c.upcoming},
		{name: "export", args: "<calendar id>", help: "write a calendar as an .ics file", auth: true, run: c.export},
		{name: "colors", help: "list event color palettes", run: c.colors},
	}
}

func (c *Console) lookup(name string) (command, bool) {
	for _, cmd := range c.commands {
		if cmd.name == name {
			return cmd, true
		}
		for _, a := range cmd.alias {
			if a == name {
				return cmd, true
			}
		}
	}
	return command{}, false
}

// Run reads and executes commands until "exit", end of input or ctx is done.
// Command failures are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Welcome to gophcal (type 'help' for commands)")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(c.out, "gophcal%s> ", c.status(ctx))
		line, err := c.line()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		name, args := parts[0], parts[1:]
		if name == "exit" || name == "quit" {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}

		if err := c.exec(ctx, name, args); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			c.report(ctx, name, err)
		}
	}
}

func (c *Console) exec(ctx context.Context, name string, args []string) error {
	cmd, ok := c.lookup(name)
	if !ok {
		fmt.Fprintln(c.out, "Unknown command:", name)
		return nil
	}
	if cmd.auth && c.token == "" {
		return errNotLoggedIn
	}
	return cmd.run(ctx, args)
}

// report prints a failure in terms a user can act on.
func (c *Console) report(ctx context.Context, name string, err error) {
	c.logger.Debug(ctx, "command failed", "command", name, "error", err)

	switch {
	case errors.Is(err, errNotLoggedIn):
		fmt.Fprintln(c.out, "Please log in first")
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrorInvalidToken):
		fmt.Fprintln(c.out, "Session ended, please log in again")
	case errors.Is(err, common.ErrorForbidden):
		fmt.Fprintln(c.out, "Error: you are not allowed to do that")
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(c.out, "Error: not found")
	case errors.Is(err, common.ErrorInternal):
		c.logger.Error(ctx, "command failed", "command", name, "error", err)
		fmt.Fprintln(c.out, "Error: something went wrong, see the log")
	default:
		fmt.Fprintln(c.out, "Error:", err)
	}
}

func (c *Console) help(_ context.Context, _ []string) error {
	fmt.Fprintln(c.out, "Available commands:")
	for _, cmd := range c.commands {
		if cmd.auth && c.token == "" {
			continue
		}
		usage := cmd.name
		if cmd.args != "" {
			usage += " " + cmd.args
		}
		fmt.Fprintf(c.out, "  %-26s %s\n", usage, cmd.help)
	}
	fmt.Fprintf(c.out, "  %-26s %s\n", "exit", "leave")
	return nil
}

// status is the prompt suffix naming the logged-in user.
func (c *Console) status(ctx context.Context) string {
	if c.token == "" {
		return ""
	}
	u, err := c.current(ctx)
	if err != nil {
		return ""
	}
	return " (" + u.Email + ")"
}

// current resolves the session token. An unusable token ends the session.
func (c *Console) current(ctx context.Context) (*models.User, error) {
	if c.token == "" {
		return nil, errNotLoggedIn
	}
	u, err := c.store.Users.UserFromToken(ctx, c.token)
	if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrorInvalidToken) {
		c.token = ""
	}
	return u, err
}

// print writes v in the configured output format.
func (c *Console) print(v any) error {
	if c.cfg.OutputFormat == "json" {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
