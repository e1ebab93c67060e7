package addressbook_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nightmarlin/addressbook"
)

func phoneStrings(r *addressbook.Record) []string {
	var ps []string
	for _, p := range r.Phones() {
		ps = append(ps, p.String())
	}
	return ps
}

func mustRecord(t *testing.T, name string, phones ...string) *addressbook.Record {
	t.Helper()

	r, err := addressbook.NewRecord(name)
	if err != nil {
		t.Fatalf("new record %q: %v", name, err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatalf("add phone %q: %v", p, err)
		}
	}
	return r
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	if _, err := addressbook.NewRecord(""); !errors.Is(err, addressbook.ErrValidation) {
		t.Errorf("got error %v, want ErrValidation", err)
	}

	r := mustRecord(t, "John")
	if r.Name().String() != "John" {
		t.Errorf("got name %q, want %q", r.Name(), "John")
	}
	if len(r.Phones()) != 0 {
		t.Errorf("got phones %v, want none", r.Phones())
	}
	if _, ok := r.Birthday(); ok {
		t.Errorf("new record has a birthday")
	}
}

func TestRecord_Phones(t *testing.T) {
	t.Parallel()

	t.Run(
		"add keeps insertion order and duplicates",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "5555555555", "1234567890", "5555555555")
			want := []string{"5555555555", "1234567890", "5555555555"}
			if diff := cmp.Diff(want, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"add propagates validation errors",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John")
			if err := r.AddPhone("123"); !errors.Is(err, addressbook.ErrValidation) {
				t.Errorf("got error %v, want ErrValidation", err)
			}
			if len(r.Phones()) != 0 {
				t.Errorf("invalid phone was stored: %v", r.Phones())
			}
		},
	)

	t.Run(
		"phones returns a copy",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1234567890")
			ps := r.Phones()
			ps[0] = addressbook.Phone{}

			if diff := cmp.Diff([]string{"1234567890"}, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"remove drops every match and ignores unknown phones",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1111111111", "2222222222", "1111111111")
			r.RemovePhone("1111111111")
			r.RemovePhone("9999999999")

			if diff := cmp.Diff([]string{"2222222222"}, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"remove all then add leaves exactly one phone",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1111111111", "2222222222")
			r.RemoveAllPhones()
			if err := r.AddPhone("3333333333"); err != nil {
				t.Fatalf("add phone: %v", err)
			}

			if diff := cmp.Diff([]string{"3333333333"}, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"edit replaces every match",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1111111111", "2222222222", "1111111111")
			if err := r.EditPhone("1111111111", "3333333333"); err != nil {
				t.Fatalf("edit phone: %v", err)
			}

			want := []string{"3333333333", "2222222222", "3333333333"}
			if diff := cmp.Diff(want, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"edit validates the replacement first",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1111111111")
			if err := r.EditPhone("1111111111", "abc"); !errors.Is(err, addressbook.ErrValidation) {
				t.Errorf("got error %v, want ErrValidation", err)
			}
			if diff := cmp.Diff([]string{"1111111111"}, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"edit of an unknown phone is a no-op",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1111111111")
			if err := r.EditPhone("9999999999", "3333333333"); err != nil {
				t.Errorf("got error %v, want nil", err)
			}
			if diff := cmp.Diff([]string{"1111111111"}, phoneStrings(r)); diff != "" {
				t.Errorf("phones mismatch (-want +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"find returns the phone or ErrPhoneNotFound",
		func(t *testing.T) {
			t.Parallel()

			r := mustRecord(t, "John", "1111111111")

			p, err := r.FindPhone("1111111111")
			if err != nil {
				t.Errorf("got error %v, want nil", err)
			} else if p.String() != "1111111111" {
				t.Errorf("got phone %q, want %q", p, "1111111111")
			}

			if _, err := r.FindPhone("2222222222"); !errors.Is(err, addressbook.ErrPhoneNotFound) {
				t.Errorf("got error %v, want ErrPhoneNotFound", err)
			}
		},
	)
}

func TestRecord_Birthday(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, "John")
	if err := r.AddBirthday("15.06.1990"); err != nil {
		t.Fatalf("add birthday: %v", err)
	}
	if err := r.AddBirthday("01.01.2000"); err != nil {
		t.Fatalf("add birthday: %v", err)
	}
	if err := r.AddBirthday("31.04.2023"); !errors.Is(err, addressbook.ErrValidation) {
		t.Errorf("got error %v, want ErrValidation", err)
	}

	b, ok := r.Birthday()
	if !ok {
		t.Fatalf("birthday not set")
	}
	if b.String() != "01.01.2000" {
		t.Errorf("got birthday %q, want %q", b, "01.01.2000")
	}
}

func TestRecord_String(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, "John", "1234567890", "5555555555")
	if got, want := r.String(), "Contact name: John, phones: 1234567890; 5555555555"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if err := r.AddBirthday("15.06.1990"); err != nil {
		t.Fatalf("add birthday: %v", err)
	}
	if got, want := r.String(), "Contact name: John, phones: 1234567890; 5555555555, birthday: 15.06.1990"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got, want := mustRecord(t, "Jane").String(), "Contact name: Jane, phones: "; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
