// Package storagetest checks storage.Store implementations.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/storage"
)

// Book returns an address book exercising every field: several phones with a
// duplicate, a birthday, a contact without phones and one without a birthday.
func Book(t *testing.T) *addressbook.AddressBook {
	t.Helper()

	book := addressbook.New()
	for _, c := range []storage.Contact{
		{Name: "John", Phones: []string{"1234567890", "5555555555", "1234567890"}, Birthday: "15.06.1990"},
		{Name: "Jane", Birthday: "29.02.2000"},
		{Name: "Zed", Phones: []string{"0987654321"}},
	} {
		r, err := addressbook.NewRecord(c.Name)
		require.NoError(t, err)
		for _, p := range c.Phones {
			require.NoError(t, r.AddPhone(p))
		}
		if c.Birthday != "" {
			require.NoError(t, r.AddBirthday(c.Birthday))
		}
		book.AddRecord(r)
	}
	return book
}

// Run checks that s starts empty, that a saved book loads back identically,
// and that a second save replaces the first.
func Run(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len(), "a fresh store loads an empty book")

	want := Book(t)
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(storage.Capture(want), storage.Capture(got)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	want.Delete("John")
	jane, _ := want.Find("Jane")
	require.NoError(t, jane.AddPhone("1112223333"))
	require.NoError(t, s.Save(ctx, want))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(storage.Capture(want), storage.Capture(got)); diff != "" {
		t.Fatalf("second save mismatch (-want +got):\n%s", diff)
	}
}
