package addressbook

import (
	"iter"
	"time"
)

// DefaultWindow is the number of days ahead the birthdays query looks by
// default.
const DefaultWindow = 7

// An UpcomingBirthday is the date a contact should be congratulated on,
// formatted with DateLayout.
type UpcomingBirthday struct {
	Name string
	Date string
}

func (u UpcomingBirthday) String() string { return u.Name + ": " + u.Date }

// Upcoming returns the records whose next birthday is between 0 and
// windowDays days after today, both inclusive. Only today's calendar date is
// used. Birthdays landing on a weekend are moved to the following Monday.
//
// Records without a birthday are skipped and the result keeps the order of
// records.
func Upcoming(today time.Time, windowDays int, records iter.Seq[*Record]) []UpcomingBirthday {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var upcoming []UpcomingBirthday
	for r := range records {
		b, ok := r.Birthday()
		if !ok {
			continue
		}

		next := NextOccurrence(b, today)
		if days := daysBetween(today, next); days < 0 || days > windowDays {
			continue
		}
		upcoming = append(upcoming, UpcomingBirthday{
			Name: r.name.value,
			Date: AdjustForWeekend(next).Format(DateLayout),
		})
	}
	return upcoming
}

// NextOccurrence returns the first anniversary of b on or after today's date.
//
// A 29 February birthday falls on 1 March in years without that date, as
// time.Date normalizes it.
func NextOccurrence(b Birthday, today time.Time) time.Time {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	next := time.Date(today.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

// AdjustForWeekend moves Saturdays and Sundays forward to the next Monday.
func AdjustForWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// daysBetween counts whole days from a to b. Both must be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
