package addressbook

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the layout birthdays are printed with.
	DateLayout = "02.01.2006"

	// dateInputLayout also accepts single-digit days and months.
	dateInputLayout = "2.1.2006"

	phoneLength = 10
)

// Reasons reported by a ValidationError.
const (
	ReasonEmpty       = "empty"
	ReasonNotDigits   = "not digits"
	ReasonWrongLength = "wrong length"
	ReasonBadFormat   = "bad format"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// A ValidationError reports raw input that could not be turned into a field
// value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Name identifies a contact. It is never empty.
type Name struct{ value string }

func NewName(raw string) (Name, error) {
	if raw == "" {
		return Name{}, &ValidationError{Field: "name", Value: raw, Reason: ReasonEmpty}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// Phone is a ten digit phone number, kept exactly as entered.
type Phone struct{ value string }

func NewPhone(raw string) (Phone, error) {
	if !allDigits(raw) {
		return Phone{}, &ValidationError{Field: "phone", Value: raw, Reason: ReasonNotDigits}
	}
	if len(raw) != phoneLength {
		return Phone{}, &ValidationError{Field: "phone", Value: raw, Reason: ReasonWrongLength}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Birthday is a calendar date. Time of day and location are discarded.
type Birthday struct{ date time.Time }

// NewBirthday parses raw as DD.MM.YYYY. Dates that do not exist in the
// calendar, such as 31.04.2023, are rejected.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(dateInputLayout, raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: raw, Reason: ReasonBadFormat}
	}
	return BirthdayOf(t), nil
}

// BirthdayOf returns the Birthday falling on t's calendar date.
func BirthdayOf(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (b Birthday) Time() time.Time   { return b.date }
func (b Birthday) Month() time.Month { return b.date.Month() }
func (b Birthday) Day() int          { return b.date.Day() }
func (b Birthday) String() string    { return b.date.Format(DateLayout) }
