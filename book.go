// Package addressbook models a personal contact list: contacts with phone
// numbers and an optional birthday, kept in insertion order and keyed by name.
//
// An AddressBook is meant to be driven by a single caller; it does no locking.
package addressbook

import (
	"iter"
	"time"
)

// An AddressBook owns its Records, keyed by name.
type AddressBook struct {
	records *index[string, *Record]
}

func New() *AddressBook {
	return &AddressBook{records: newIndex[string, *Record]()}
}

// AddRecord stores r under its name. A record already stored under the same
// name is replaced, keeping its position.
func (b *AddressBook) AddRecord(r *Record) {
	b.records.set(r.name.value, r)
}

// Find returns the record stored under name, if any.
func (b *AddressBook) Find(name string) (*Record, bool) {
	return b.records.get(name)
}

// Delete removes the record stored under name. Unknown names are ignored.
func (b *AddressBook) Delete(name string) {
	b.records.remove(name)
}

func (b *AddressBook) Len() int { return b.records.len() }

// Records yields every record in insertion order.
func (b *AddressBook) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range b.records.all() {
			if !yield(r) {
				return
			}
		}
	}
}

// UpcomingBirthdays lists contacts whose next birthday falls within
// windowDays of today. See Upcoming.
func (b *AddressBook) UpcomingBirthdays(today time.Time, windowDays int) []UpcomingBirthday {
	return Upcoming(today, windowDays, b.Records())
}
