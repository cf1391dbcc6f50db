package filter

import (
	"time"

	"github.com/pkordes/guestdesk/internal/domain"
)

// DayGroup is the set of audit records that fall on one calendar day.
type DayGroup struct {
	Day     string          `json:"day"` // YYYY-MM-DD in the grouping location
	Updates []domain.Update `json:"updates"`
}

// GroupByDay buckets updates by calendar day in loc, keeping the input order
// both across and within groups. A nil loc means UTC.
func GroupByDay(updates []domain.Update, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}
	out := []DayGroup{}
	idx := make(map[string]int)
	for _, u := range updates {
		day := u.Timestamp.In(loc).Format(time.DateOnly)
		i, ok := idx[day]
		if !ok {
			i = len(out)
			idx[day] = i
			out = append(out, DayGroup{Day: day})
		}
		out[i].Updates = append(out[i].Updates, u)
	}
	return out
}
