package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/storage"
)

var schema = []string{
	`create table if not exists contacts (
		name     text primary key not null,
		position integer not null,
		birthday text
	)`,
	`create table if not exists phones (
		contact  text not null references contacts (name),
		position integer not null,
		phone    text not null,
		primary key (contact, position)
	)`,
}

// Store keeps the address book in a SQLite database file.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	snap := storage.Snapshot{Version: storage.SnapshotVersion}
	lookup, err := s.loadContacts(ctx, &snap)
	if err != nil {
		return nil, err
	}
	if err := s.loadPhones(ctx, &snap, lookup); err != nil {
		return nil, err
	}

	book, err := snap.Restore()
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "loaded address book from sqlite", slog.Int("contacts", book.Len()))
	return book, nil
}

// loadContacts appends every stored contact to snap and returns each name's
// index in snap.Contacts.
func (s *Store) loadContacts(ctx context.Context, snap *storage.Snapshot) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `select name, birthday from contacts order by position`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	lookup := map[string]int{}
	for rows.Next() {
		var (
			c        storage.Contact
			birthday sql.NullString
		)
		if err := rows.Scan(&c.Name, &birthday); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.Birthday = birthday.String
		lookup[c.Name] = len(snap.Contacts)
		snap.Contacts = append(snap.Contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}
	return lookup, nil
}

func (s *Store) loadPhones(ctx context.Context, snap *storage.Snapshot, lookup map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `select contact, phone from phones order by contact, position`)
	if err != nil {
		return fmt.Errorf("querying phones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contact, phone string
		if err := rows.Scan(&contact, &phone); err != nil {
			return fmt.Errorf("scanning phone: %w", err)
		}
		i, ok := lookup[contact]
		if !ok {
			return fmt.Errorf("phone %q belongs to unknown contact %q", phone, contact)
		}
		snap.Contacts[i].Phones = append(snap.Contacts[i].Phones, phone)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading phones: %w", err)
	}
	return nil
}

// Save replaces the stored address book in a single transaction.
func (s *Store) Save(ctx context.Context, book *addressbook.AddressBook) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`delete from phones`, `delete from contacts`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing address book: %w", err)
		}
	}

	for i, c := range storage.Capture(book).Contacts {
		birthday := sql.NullString{String: c.Birthday, Valid: c.Birthday != ""}
		if _, err := tx.ExecContext(
			ctx,
			`insert into contacts (name, position, birthday) values (?, ?, ?)`,
			c.Name, i, birthday,
		); err != nil {
			return fmt.Errorf("inserting contact %q: %w", c.Name, err)
		}
		for j, p := range c.Phones {
			if _, err := tx.ExecContext(
				ctx,
				`insert into phones (contact, position, phone) values (?, ?, ?)`,
				c.Name, j, p,
			); err != nil {
				return fmt.Errorf("inserting phone for %q: %w", c.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing address book: %w", err)
	}
	slog.InfoContext(ctx, "saved address book to sqlite", slog.Int("contacts", book.Len()))
	return nil
}
