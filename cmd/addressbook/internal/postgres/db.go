package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/storage"
)

type DB struct {
	conn *pgx.Conn
}

var _ storage.Store = (*DB)(nil)

func New(ctx context.Context, conn *pgx.Conn) (*DB, error) {
	for _, stmt := range []string{
		`create table if not exists contacts (name text primary key not null, position integer not null, birthday date)`,
		`create table if not exists phones (contact text not null references contacts ("name") on delete cascade, position integer not null, phone text not null, primary key (contact, position))`,
	} {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &DB{conn: conn}, nil
}

func (db *DB) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	rows, err := db.conn.Query(
		ctx,
		`select c."name", c.birthday, coalesce(array_agg(p.phone order by p.position) filter (where p.phone is not null), '{}')
		from contacts c left join phones p on p.contact = c."name"
		group by c."name", c.position, c.birthday
		order by c.position`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}

	contacts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storage.Contact, error) {
		var (
			c        storage.Contact
			birthday *time.Time
		)
		if err := row.Scan(&c.Name, &birthday, &c.Phones); err != nil {
			return storage.Contact{}, err
		}
		if birthday != nil {
			c.Birthday = addressbook.BirthdayOf(*birthday).String()
		}
		if len(c.Phones) == 0 {
			c.Phones = nil
		}
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}

	book, err := storage.Snapshot{Version: storage.SnapshotVersion, Contacts: contacts}.Restore()
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "loaded address book from db", slog.Int("contacts", book.Len()))
	return book, nil
}

// Save replaces the stored address book in one transaction.
func (db *DB) Save(ctx context.Context, book *addressbook.AddressBook) error {
	tx, err := db.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	batch.Queue(`delete from contacts`)
	var position int
	for r := range book.Records() {
		var birthday *time.Time
		if b, ok := r.Birthday(); ok {
			t := b.Time()
			birthday = &t
		}
		batch.Queue(
			`insert into contacts ("name", position, birthday) values ($1::text, $2, $3::date)`,
			r.Name().String(),
			position,
			birthday,
		)
		position++
		for i, p := range r.Phones() {
			batch.Queue(
				`insert into phones (contact, position, phone) values ($1::text, $2, $3::text)`,
				r.Name().String(),
				i,
				p.String(),
			)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("writing address book: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing address book: %w", err)
	}

	slog.InfoContext(ctx, "saved address book to db", slog.Int("contacts", book.Len()))
	return nil
}
