// Package storage persists an address book between sessions.
package storage

import (
	"context"
	"fmt"

	"github.com/nightmarlin/addressbook"
)

// A Store loads the whole address book at start and saves it at shutdown.
type Store interface {
	// Load returns an empty address book when nothing has been saved yet.
	Load(context.Context) (*addressbook.AddressBook, error)
	Save(context.Context, *addressbook.AddressBook) error
}

// SnapshotVersion is written into every snapshot; newer versions are refused.
const SnapshotVersion = 1

// A Snapshot is the serializable form of an address book.
type Snapshot struct {
	Version  int       `json:"version" yaml:"version"`
	Contacts []Contact `json:"contacts" yaml:"contacts"`
}

type Contact struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones,omitempty" yaml:"phones,omitempty"`
	Birthday string   `json:"birthday,omitempty" yaml:"birthday,omitempty"` // DD.MM.YYYY
}

// Capture copies book into a Snapshot, keeping record order.
func Capture(book *addressbook.AddressBook) Snapshot {
	s := Snapshot{Version: SnapshotVersion, Contacts: make([]Contact, 0, book.Len())}
	for r := range book.Records() {
		c := Contact{Name: r.Name().String()}
		for _, p := range r.Phones() {
			c.Phones = append(c.Phones, p.String())
		}
		if b, ok := r.Birthday(); ok {
			c.Birthday = b.String()
		}
		s.Contacts = append(s.Contacts, c)
	}
	return s
}

// Restore rebuilds an address book. Every field is validated again.
func (s Snapshot) Restore() (*addressbook.AddressBook, error) {
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}

	book := addressbook.New()
	for i, c := range s.Contacts {
		r, err := c.record()
		if err != nil {
			return nil, fmt.Errorf("restoring contact %d: %w", i, err)
		}
		book.AddRecord(r)
	}
	return book, nil
}

func (c Contact) record() (*addressbook.Record, error) {
	r, err := addressbook.NewRecord(c.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range c.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if c.Birthday != "" {
		if err := r.AddBirthday(c.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}
