package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var fe *common.FieldError
	require.True(t, errors.As(err, &fe), "want FieldError, got %v", err)
	return fe.Field
}

func TestRegistration(t *testing.T) {
	ok := models.Registration{Email: "a@x.com", Password: "p1", FirstName: "A", LastName: "B"}

	tests := []struct {
		name      string
		mutate    func(r *models.Registration)
		wantErr   error
		wantField string
	}{
		{name: "ok", mutate: func(r *models.Registration) {}},
		{name: "names optional", mutate: func(r *models.Registration) { r.FirstName, r.LastName = "", "" }},
		{name: "no email", mutate: func(r *models.Registration) { r.Email = "" }, wantErr: common.ErrorMissingField, wantField: "email"},
		{name: "blank email", mutate: func(r *models.Registration) { r.Email = "   " }, wantErr: common.ErrorMissingField, wantField: "email"},
		{name: "bad email", mutate: func(r *models.Registration) { r.Email = "not-an-email" }, wantErr: common.ErrorInvalidEmail, wantField: "email"},
		{name: "display name email", mutate: func(r *models.Registration) { r.Email = "A <a@x.com>" }, wantErr: common.ErrorInvalidEmail, wantField: "email"},
		{name: "long email", mutate: func(r *models.Registration) { r.Email = strings.Repeat("a", 45) + "@x.com" }, wantErr: common.ErrorFieldTooLong, wantField: "email"},
		{name: "no password", mutate: func(r *models.Registration) { r.Password = "" }, wantErr: common.ErrorMissingField, wantField: "password"},
		{name: "long first name", mutate: func(r *models.Registration) { r.FirstName = strings.Repeat("x", 41) }, wantErr: common.ErrorFieldTooLong, wantField: "first_name"},
		{name: "long last name", mutate: func(r *models.Registration) { r.LastName = strings.Repeat("x", 41) }, wantErr: common.ErrorFieldTooLong, wantField: "last_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ok
			tt.mutate(&r)
			err := Registration(r)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}

func TestUser(t *testing.T) {
	require.NoError(t, User(&models.User{Email: "a@x.com", PasswordHash: "$2a$"}))
	require.ErrorIs(t, User(&models.User{Email: "a@x.com"}), common.ErrorMissingField)
	require.ErrorIs(t, User(&models.User{Email: "bad", PasswordHash: "h"}), common.ErrorInvalidEmail)
	require.ErrorIs(t, Password(""), common.ErrorMissingField)
	require.NoError(t, Password("x"))
	require.ErrorIs(t, Password(strings.Repeat("p", MaxPasswordBytes+1)), common.ErrorFieldTooLong)
	require.NoError(t, Password(strings.Repeat("p", MaxPasswordBytes)))
}

func TestCalendar(t *testing.T) {
	require.NoError(t, Calendar(&models.Calendar{Name: "Personal", OwnerID: 1}))

	err := Calendar(&models.Calendar{Name: "", OwnerID: 1})
	require.ErrorIs(t, err, common.ErrorMissingField)
	assert.Equal(t, "name", fieldOf(t, err))

	err = Calendar(&models.Calendar{Name: strings.Repeat("n", 101), OwnerID: 1})
	require.ErrorIs(t, err, common.ErrorFieldTooLong)

	err = Calendar(&models.Calendar{Name: "Personal"})
	require.ErrorIs(t, err, common.ErrorMissingField)
	assert.Equal(t, "owner_id", fieldOf(t, err))
}

func validEvent() models.Event {
	start := time.Date(2024, 12, 12, 9, 0, 0, 0, time.UTC)
	return models.Event{
		Title:      "Dentist",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		BgColor:    common.DefaultBgColor,
		TxtColor:   common.DefaultTxtColor,
		CalendarID: 1,
		CreatorID:  1,
	}
}

func TestEvent(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(e *models.Event)
		wantErr   error
		wantField string
	}{
		{name: "ok", mutate: func(e *models.Event) {}},
		{name: "equal times allowed", mutate: func(e *models.Event) { e.EndTime = e.StartTime }},
		{name: "end one nanosecond before start", mutate: func(e *models.Event) { e.EndTime = e.StartTime.Add(-time.Nanosecond) }, wantErr: common.ErrorInvalidTimeRange, wantField: "end_time"},
		{name: "no title", mutate: func(e *models.Event) { e.Title = "" }, wantErr: common.ErrorMissingField, wantField: "title"},
		{name: "long title", mutate: func(e *models.Event) { e.Title = strings.Repeat("t", 51) }, wantErr: common.ErrorFieldTooLong, wantField: "title"},
		{name: "long location", mutate: func(e *models.Event) { e.Location = strings.Repeat("l", 101) }, wantErr: common.ErrorFieldTooLong, wantField: "location"},
		{name: "no start", mutate: func(e *models.Event) { e.StartTime = time.Time{} }, wantErr: common.ErrorMissingField, wantField: "start_time"},
		{name: "no end", mutate: func(e *models.Event) { e.EndTime = time.Time{} }, wantErr: common.ErrorMissingField, wantField: "end_time"},
		{name: "bad bg color", mutate: func(e *models.Event) { e.BgColor = "red" }, wantErr: common.ErrorInvalidColor, wantField: "bg_color"},
		{name: "bad txt color", mutate: func(e *models.Event) { e.TxtColor = "#12345" }, wantErr: common.ErrorInvalidColor, wantField: "txt_color"},
		{name: "no calendar", mutate: func(e *models.Event) { e.CalendarID = 0 }, wantErr: common.ErrorMissingField, wantField: "calendar_id"},
		{name: "no creator", mutate: func(e *models.Event) { e.CreatorID = 0 }, wantErr: common.ErrorMissingField, wantField: "creator_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)
			err := Event(&e)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}
