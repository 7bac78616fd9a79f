// Package console implements the interactive gophcal shell.
//
// The shell reads one command per line, prompts for whatever the command
// still needs and prints entities as YAML or JSON records. Logging in issues
// a token that is resolved again before every command that needs a user, so
// an expired session or a deleted account ends the session.
//
// Commands that mutate a calendar or an event check ownership first; reading
// is allowed for the owner and, for public calendars, for everyone.
package console
