// Package validation holds the field-level and cross-field rules every
// entity must satisfy before it is written. Rules that need the database
// (email uniqueness, references) live in the services, inside the write
// transaction.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/models"
)

// Column limits of the persisted schema.
const (
	MaxEmailLen     = 50
	MaxNameLen      = 40
	MaxCalendarName = 100
	MaxTitleLen     = 50
	MaxLocationLen  = 100

	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	MaxPasswordBytes = 72
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Registration checks a new account before its password is hashed.
func Registration(r models.Registration) error {
	if err := email(r.Email); err != nil {
		return err
	}
	if err := Password(r.Password); err != nil {
		return err
	}
	return names(r.FirstName, r.LastName)
}

// Password checks a replacement password.
func Password(pw string) error {
	if pw == "" {
		return common.NewFieldError("password", common.ErrorMissingField)
	}
	if len(pw) > MaxPasswordBytes {
		return common.NewFieldError("password", common.ErrorFieldTooLong)
	}
	return nil
}

// User checks a stored (or merged) user record.
func User(u *models.User) error {
	if err := email(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return common.NewFieldError("password", common.ErrorMissingField)
	}
	return names(u.FirstName, u.LastName)
}

// Calendar checks a calendar record. Owner existence is checked by the
// service.
func Calendar(c *models.Calendar) error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if err := maxLen("name", c.Name, MaxCalendarName); err != nil {
		return err
	}
	if c.OwnerID == 0 {
		return common.NewFieldError("owner_id", common.ErrorMissingField)
	}
	return nil
}

// Event checks an event record, including end_time >= start_time. Equal
// times are accepted.
func Event(e *models.Event) error {
	if err := required("title", e.Title); err != nil {
		return err
	}
	if err := maxLen("title", e.Title, MaxTitleLen); err != nil {
		return err
	}
	if err := maxLen("location", e.Location, MaxLocationLen); err != nil {
		return err
	}
	if e.StartTime.IsZero() {
		return common.NewFieldError("start_time", common.ErrorMissingField)
	}
	if e.EndTime.IsZero() {
		return common.NewFieldError("end_time", common.ErrorMissingField)
	}
	if e.EndTime.Before(e.StartTime) {
		return common.NewFieldError("end_time", common.ErrorInvalidTimeRange)
	}
	if !colorRe.MatchString(e.BgColor) {
		return common.NewFieldError("bg_color", common.ErrorInvalidColor)
	}
	if !colorRe.MatchString(e.TxtColor) {
		return common.NewFieldError("txt_color", common.ErrorInvalidColor)
	}
	if e.CalendarID == 0 {
		return common.NewFieldError("calendar_id", common.ErrorMissingField)
	}
	if e.CreatorID == 0 {
		return common.NewFieldError("creator_id", common.ErrorMissingField)
	}
	return nil
}

func email(v string) error {
	if err := required("email", v); err != nil {
		return err
	}
	if err := maxLen("email", v, MaxEmailLen); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return common.NewFieldError("email", common.ErrorInvalidEmail)
	}
	return nil
}

func names(first, last string) error {
	if err := maxLen("first_name", first, MaxNameLen); err != nil {
		return err
	}
	return maxLen("last_name", last, MaxNameLen)
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return common.NewFieldError(field, common.ErrorMissingField)
	}
	return nil
}

func maxLen(field, v string, n int) error {
	if utf8.RuneCountInString(v) > n {
		return common.NewFieldError(field, common.ErrorFieldTooLong)
	}
	return nil
}
