package records

import (
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/models"
)

// User never carries the password hash.
func User(u *models.User) Record {
	return Record{
		{"id", u.ID},
		{"email", u.Email},
		{"first_name", u.FirstName},
		{"last_name", u.LastName},
		{"created_at", u.CreatedAt.UTC().Format(time.RFC3339)},
	}
}

func Calendar(c *models.Calendar) Record {
	return Record{
		{"id", c.ID},
		{"name", c.Name},
		{"description", c.Description},
		{"is_public", c.IsPublic},
		{"created_at", c.CreatedAt.UTC().Format(time.RFC3339)},
		{"owner_id", c.OwnerID},
	}
}

// Event formats its times as YYYY-MM-DDTHH:MM.
func Event(e *models.Event) Record {
	return Record{
		{"id", e.ID},
		{"title", e.Title},
		{"description", e.Description},
		{"start_time", e.StartTime.Format(common.TimestampLayout)},
		{"end_time", e.EndTime.Format(common.TimestampLayout)},
		{"location", e.Location},
		{"bg_color", e.BgColor},
		{"txt_color", e.TxtColor},
		{"all_day", e.AllDay},
		{"created_at", e.CreatedAt.Format(common.TimestampLayout)},
		{"calendar_id", e.CalendarID},
		{"creator_id", e.CreatorID},
	}
}

func Users(us []models.User) []Record {
	out := make([]Record, len(us))
	for i := range us {
		out[i] = User(&us[i])
	}
	return out
}

func Calendars(cs []models.Calendar) []Record {
	out := make([]Record, len(cs))
	for i := range cs {
		out[i] = Calendar(&cs[i])
	}
	return out
}

func Events(es []models.Event) []Record {
	out := make([]Record, len(es))
	for i := range es {
		out[i] = Event(&es[i])
	}
	return out
}
