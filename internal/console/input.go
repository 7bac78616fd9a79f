package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"golang.org/x/term"
)

// readPassword and isTerminal are seams for the terminal helpers so tests
// never touch a real tty.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// inputLayouts are tried before natural-language parsing.
var inputLayouts = []string{
	common.TimestampLayout,
	"2006-01-02 15:04",
	"2006-01-02",
}

// line reads one line. A partial line before EOF is returned as is.
func (c *Console) line() (string, error) {
	s, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(s) > 0 {
			return strings.TrimSpace(s), nil
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// ask prints prompt and reads the answer.
func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", prompt)
	return c.line()
}

// askOptional shows the current value; an empty answer keeps it and yields nil.
func (c *Console) askOptional(prompt, current string) (*string, error) {
	fmt.Fprintf(c.out, "%s [%s]: ", prompt, current)
	s, err := c.line()
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// password reads a secret without echo when the input is a terminal.
func (c *Console) password(prompt string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", prompt)
	if c.fd < 0 || !isTerminal(c.fd) {
		return c.line()
	}

	pw, err := readPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// askBool accepts y/yes/true and n/no/false; empty means def.
func (c *Console) askBool(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	s, err := c.ask(fmt.Sprintf("%s (%s)", prompt, hint))
	if err != nil {
		return false, err
	}
	if s == "" {
		return def, nil
	}
	return parseBool(s)
}

// askOptionalBool is askBool for edits: an empty answer yields nil.
func (c *Console) askOptionalBool(prompt string, current bool) (*bool, error) {
	s, err := c.askOptional(prompt+" (y/n)", yesNo(current))
	if err != nil || s == nil {
		return nil, err
	}
	b, err := parseBool(*s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// askTime reads a date. An empty answer yields the zero time.
func (c *Console) askTime(prompt string) (time.Time, error) {
	s, err := c.ask(prompt)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	return c.parseTime(s)
}

// askOptionalTime reads a replacement date; an empty answer yields nil.
func (c *Console) askOptionalTime(prompt string, current time.Time) (*time.Time, error) {
	s, err := c.askOptional(prompt, current.Format(common.TimestampLayout))
	if err != nil || s == nil {
		return nil, err
	}
	t, err := c.parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseTime understands the record layout, a bare date and phrases such as
// "tomorrow at 9am" relative to the console clock. Times are UTC.
func (c *Console) parseTime(s string) (time.Time, error) {
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	r, err := c.when.Parse(s, c.now().UTC())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("cannot understand date %q, use %s", s, common.TimestampLayout)
	}
	return r.Time.UTC(), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no, got %q", s)
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// idArg takes the id from the first argument or asks for it.
func (c *Console) idArg(args []string, prompt string) (int64, error) {
	var s string
	if len(args) > 0 {
		s = args[0]
	} else {
		var err error
		if s, err = c.ask(prompt); err != nil {
			return 0, err
		}
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
