// Package models defines the persisted entities of the calendar store
// (User, Calendar, Event) together with the inputs used to create them and
// the partial updates used to modify them.
//
// Patch types carry pointer fields: a nil field means "leave unchanged".
// Apply merges a patch into a copy of the stored entity; the merged result is
// validated as a whole before it is written.
package models
