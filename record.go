package addressbook

import (
	"errors"
	"slices"
	"strings"
)

var ErrPhoneNotFound = errors.New("phone not found")

// A Record holds everything known about one contact. The name is fixed at
// creation; phones keep insertion order and may repeat.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to raw.
func (r *Record) RemovePhone(raw string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool { return p.value == raw })
}

func (r *Record) RemoveAllPhones() { r.phones = nil }

// EditPhone replaces every phone equal to old with replacement. replacement is
// validated before anything changes; a missing old phone is not an error.
func (r *Record) EditPhone(old, replacement string) error {
	p, err := NewPhone(replacement)
	if err != nil {
		return err
	}
	for i := range r.phones {
		if r.phones[i].value == old {
			r.phones[i] = p
		}
	}
	return nil
}

// FindPhone returns the first phone equal to raw, or ErrPhoneNotFound.
func (r *Record) FindPhone(raw string) (Phone, error) {
	i := slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == raw })
	if i < 0 {
		return Phone{}, ErrPhoneNotFound
	}
	return r.phones[i], nil
}

// AddBirthday parses raw and sets it as the birthday, replacing any previous
// one.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.SetBirthday(b)
	return nil
}

func (r *Record) SetBirthday(b Birthday) { r.birthday = &b }

func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.value)
	sb.WriteString(", phones: ")
	for i, p := range r.phones {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p.value)
	}
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}
