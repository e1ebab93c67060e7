package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/storage"
)

const (
	welcome = "Welcome to the assistant bot!"
	prompt  = "Enter a command: "
	goodbye = "Good bye!"

	maxLineLength = 64 * 1024
)

// A Shell is one interactive session: it loads the address book, answers
// commands line by line and saves the book when the session ends.
type Shell struct {
	Store      storage.Store
	WindowDays int
	Now        func() time.Time
}

// Run reads commands from in until close, exit or the end of input, then
// saves the book. A failing read still saves what the session changed before
// its error is returned. Load and save errors are returned; user mistakes,
// including overlong lines, never are.
func (s Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	book, err := s.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading address book: %w", err)
	}

	now := s.Now
	if now == nil {
		now = time.Now
	}
	d := NewDispatcher(book, s.WindowDays, now)

	_, _ = fmt.Fprintln(out, welcome)
	r := bufio.NewReader(in)
	var readErr error
	for {
		_, _ = fmt.Fprint(out, prompt)
		line, tooLong, err := readLine(r)
		if err != nil {
			_, _ = fmt.Fprintln(out)
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
		if tooLong {
			_, _ = fmt.Fprintln(out, "Invalid command.")
			continue
		}

		name, args := Parse(line)
		if name == "" {
			continue
		}
		if IsExit(name) {
			break
		}
		if reply := d.Dispatch(ctx, name, args); reply != "" {
			_, _ = fmt.Fprintln(out, reply)
		}
	}

	if err := s.Store.Save(ctx, d.Book()); err != nil {
		return errors.Join(fmt.Errorf("saving address book: %w", err), readErr)
	}
	if readErr != nil {
		return fmt.Errorf("reading commands: %w", readErr)
	}
	_, _ = fmt.Fprintln(out, goodbye)
	return nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineLength is consumed whole and reported as tooLong with no content.
// err is only set when no line could be read at all.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for read := false; ; read = true {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if read {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}

		if !tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
