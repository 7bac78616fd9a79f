package records

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/dmitrijs2005/gophcal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var created = time.Date(2024, 12, 1, 8, 15, 0, 0, time.UTC)

func dentist() *models.Event {
	return &models.Event{
		ID:         1,
		Title:      "Dentist",
		StartTime:  time.Date(2024, 12, 12, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 12, 12, 9, 30, 45, 0, time.UTC),
		Location:   "Main St",
		BgColor:    "#e1e1e1",
		TxtColor:   "#000000",
		CreatedAt:  created,
		CalendarID: 1,
		CreatorID:  1,
	}
}

func TestUser_NeverContainsPassword(t *testing.T) {
	r := User(&models.User{ID: 1, Email: "a@x.com", PasswordHash: "$2a$12$hash", FirstName: "A", LastName: "B", CreatedAt: created})

	assert.Equal(t, []string{"id", "email", "first_name", "last_name", "created_at"}, r.Keys())
	_, ok := r.Get("password")
	assert.False(t, ok)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "$2a$")
	assert.JSONEq(t, `{"id":1,"email":"a@x.com","first_name":"A","last_name":"B","created_at":"2024-12-01T08:15:00Z"}`, string(b))
}

func TestEvent_TimestampFormatAndOrder(t *testing.T) {
	r := Event(dentist())

	assert.Equal(t, []string{
		"id", "title", "description", "start_time", "end_time", "location",
		"bg_color", "txt_color", "all_day", "created_at", "calendar_id", "creator_id",
	}, r.Keys())

	start, _ := r.Get("start_time")
	end, _ := r.Get("end_time")
	assert.Equal(t, "2024-12-12T09:00", start)
	assert.Equal(t, "2024-12-12T09:30", end, "seconds are not part of the format")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), `{"id":1,"title":"Dentist","description":""`), string(b))
}

func TestCalendar_YAMLKeepsOrder(t *testing.T) {
	r := Calendar(&models.Calendar{ID: 2, Name: "Work", IsPublic: true, CreatedAt: created, OwnerID: 7})

	b, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "id: 2\nname: Work\ndescription: \"\"\nis_public: true\ncreated_at: \"2024-12-01T08:15:00Z\"\nowner_id: 7\n", string(b))
}

func TestSliceHelpers(t *testing.T) {
	assert.Len(t, Users([]models.User{{ID: 1}, {ID: 2}}), 2)
	assert.Len(t, Calendars(nil), 0)

	evs := Events([]models.Event{*dentist()})
	require.Len(t, evs, 1)
	title, _ := evs[0].Get("title")
	assert.Equal(t, "Dentist", title)
}

func TestExportICS(t *testing.T) {
	allDay := models.Event{
		ID:        2,
		Title:     "Holiday",
		StartTime: time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
		AllDay:    true,
		BgColor:   "#51b749",
		CreatedAt: created,
	}
	out := ExportICS(&models.Calendar{ID: 1, Name: "Personal", Description: "mine"}, []models.Event{*dentist(), allDay})

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "PRODID:"+productID)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	assert.Equal(t, "event-1@gophcal", events[0].Id())
	assert.Equal(t, "Dentist", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Main St", events[0].GetProperty(ical.ComponentPropertyLocation).Value)
	start, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.True(t, dentist().StartTime.Equal(start))

	dtStart := events[1].GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, dtStart)
	assert.Equal(t, "20241224", dtStart.Value)
	assert.Equal(t, "20241227", events[1].GetProperty(ical.ComponentPropertyDtEnd).Value)
}

func TestExportFileName(t *testing.T) {
	name := ExportFileName(&models.Calendar{ID: 3}, time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC))
	assert.Equal(t, "calendar-3-20250203T040506.ics", name)
}
