package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nightmarlin/addressbook"
)

// Snapshot file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// File keeps the address book in a single JSON or YAML file.
type File struct {
	path   string
	format string
}

var _ Store = (*File)(nil)

// NewFile returns a File store at path. An empty format is derived from the
// extension: .yaml and .yml mean YAML, anything else JSON.
func NewFile(path, format string) (*File, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = FormatYAML
		default:
			format = FormatJSON
		}
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
	return &File{path: path, format: format}, nil
}

func (f *File) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.InfoContext(ctx, "no saved address book, starting empty", slog.String("path", f.path))
		return addressbook.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var s Snapshot
	if f.format == FormatYAML {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}

	book, err := s.Restore()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.path, err)
	}

	slog.InfoContext(
		ctx,
		"loaded address book",
		slog.String("path", f.path),
		slog.Int("contacts", book.Len()),
	)
	return book, nil
}

// Save writes the snapshot next to the target and renames it into place, so
// an interrupted save leaves the previous file intact.
func (f *File) Save(ctx context.Context, book *addressbook.AddressBook) error {
	s := Capture(book)

	var (
		data []byte
		err  error
	)
	if f.format == FormatYAML {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding address book: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}

	slog.InfoContext(
		ctx,
		"saved address book",
		slog.String("path", f.path),
		slog.Int("contacts", len(s.Contacts)),
	)
	return nil
}
