// Package commands turns lines typed at the assistant prompt into operations on
// an address book.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nightmarlin/addressbook"
)

var ErrContactNotFound = errors.New("contact not found")

// A MissingArgumentError reports a command given fewer arguments than it needs.
type MissingArgumentError struct {
	Command string
	Args    []string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s needs %s", e.Command, strings.Join(e.Args, ", "))
}

func (e *MissingArgumentError) usage() string {
	var sb strings.Builder
	sb.WriteString(e.Command)
	for _, a := range e.Args {
		sb.WriteString(" <")
		sb.WriteString(a)
		sb.WriteString(">")
	}
	return sb.String()
}

type command struct {
	name string
	args []string
	help string
	run  func(ctx context.Context, args []string) (string, error)
}

// A Dispatcher runs commands against one address book.
type Dispatcher struct {
	book     *addressbook.AddressBook
	window   int
	now      func() time.Time
	commands []command // in help order
	lookup   map[string]command
}

// NewDispatcher returns a Dispatcher for book. window is the number of days
// the birthdays command looks ahead; now supplies today's date.
func NewDispatcher(book *addressbook.AddressBook, window int, now func() time.Time) *Dispatcher {
	d := &Dispatcher{book: book, window: window, now: now}
	d.commands = []command{
		{name: "hello", help: "greet the assistant", run: d.hello},
		{name: "add", args: []string{"name", "phone"}, help: "add a contact or a phone to it", run: d.add},
		{name: "change", args: []string{"name", "phone"}, help: "replace all phones of a contact", run: d.change},
		{name: "phone", args: []string{"name"}, help: "show a contact", run: d.phone},
		{name: "all", help: "show every contact", run: d.all},
		{name: "add-birthday", args: []string{"name", "DD.MM.YYYY"}, help: "set a contact's birthday", run: d.addBirthday},
		{name: "show-birthday", args: []string{"name"}, help: "show a contact's birthday", run: d.showBirthday},
		{name: "birthdays", help: "list birthdays to celebrate soon", run: d.birthdays},
		{name: "delete", args: []string{"name"}, help: "delete a contact", run: d.delete},
		{name: "remove-phone", args: []string{"name", "phone"}, help: "remove a phone from a contact", run: d.removePhone},
		{name: "edit-phone", args: []string{"name", "old phone", "new phone"}, help: "replace one phone of a contact", run: d.editPhone},
		{name: "help", help: "list commands", run: d.help},
	}
	d.lookup = make(map[string]command, len(d.commands))
	for _, cmd := range d.commands {
		d.lookup[cmd.name] = cmd
	}
	return d
}

// Book returns the address book the dispatcher works on.
func (d *Dispatcher) Book() *addressbook.AddressBook { return d.book }

// Parse splits a line into a lower-cased command word and its arguments.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// IsExit reports whether name ends the session.
func IsExit(name string) bool { return name == "close" || name == "exit" }

// Dispatch runs one command and returns the text to show the user. Errors are
// turned into messages here; none escape.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []string) string {
	cmd, ok := d.lookup[name]
	if !ok {
		return "Invalid command."
	}

	slog.DebugContext(ctx, "running command", slog.String("command", name), slog.Int("args", len(args)))

	if len(args) < len(cmd.args) {
		return d.message(ctx, name, &MissingArgumentError{Command: name, Args: cmd.args})
	}
	out, err := cmd.run(ctx, args)
	if err != nil {
		return d.message(ctx, name, err)
	}
	return out
}

func (d *Dispatcher) message(ctx context.Context, name string, err error) string {
	var (
		vErr   *addressbook.ValidationError
		argErr *MissingArgumentError
	)
	switch {
	case errors.As(err, &vErr):
		return fmt.Sprintf("Incorrect value: %s.", vErr)
	case errors.As(err, &argErr):
		return "Enter the argument for the command: " + argErr.usage()
	case errors.Is(err, ErrContactNotFound):
		return "Contact not found."
	case errors.Is(err, addressbook.ErrPhoneNotFound):
		return "Phone not found."
	default:
		slog.ErrorContext(
			ctx,
			"command failed",
			slog.String("command", name),
			slog.String("error", err.Error()),
		)
		return "Something went wrong."
	}
}

func (d *Dispatcher) find(name string) (*addressbook.Record, error) {
	r, ok := d.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	return r, nil
}

// findOrCreate returns the record for name, adding a new one if needed. The
// bool reports whether the record was created.
func (d *Dispatcher) findOrCreate(name string) (*addressbook.Record, bool, error) {
	if r, ok := d.book.Find(name); ok {
		return r, false, nil
	}
	r, err := addressbook.NewRecord(name)
	if err != nil {
		return nil, false, err
	}
	d.book.AddRecord(r)
	return r, true, nil
}

func (d *Dispatcher) hello(context.Context, []string) (string, error) {
	return "How can I help you?", nil
}

func (d *Dispatcher) add(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	if _, err := addressbook.NewPhone(phone); err != nil {
		return "", err
	}

	r, created, err := d.findOrCreate(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	if created {
		return "Contact added.", nil
	}
	return "Contact updated.", nil
}

func (d *Dispatcher) change(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	if _, err := addressbook.NewPhone(phone); err != nil {
		return "", err
	}

	r, err := d.find(name)
	if err != nil {
		return "", err
	}
	r.RemoveAllPhones()
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	return "Contact changed.", nil
}

func (d *Dispatcher) phone(_ context.Context, args []string) (string, error) {
	r, err := d.find(args[0])
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (d *Dispatcher) all(context.Context, []string) (string, error) {
	if d.book.Len() == 0 {
		return "No contacts.", nil
	}
	lines := make([]string, 0, d.book.Len())
	for r := range d.book.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) addBirthday(_ context.Context, args []string) (string, error) {
	name, raw := args[0], args[1]
	b, err := addressbook.NewBirthday(raw)
	if err != nil {
		return "", err
	}

	r, created, err := d.findOrCreate(name)
	if err != nil {
		return "", err
	}
	r.SetBirthday(b)
	if created {
		return "Contact added. Birthday updated.", nil
	}
	return "Contact birthday updated.", nil
}

// showBirthday prints nothing for a contact without a birthday.
func (d *Dispatcher) showBirthday(_ context.Context, args []string) (string, error) {
	r, err := d.find(args[0])
	if err != nil {
		return "", err
	}
	b, ok := r.Birthday()
	if !ok {
		return "", nil
	}
	return b.String(), nil
}

func (d *Dispatcher) birthdays(context.Context, []string) (string, error) {
	upcoming := d.book.UpcomingBirthdays(d.now(), d.window)
	if len(upcoming) == 0 {
		return "No upcoming birthdays.", nil
	}
	lines := make([]string, 0, len(upcoming))
	for _, u := range upcoming {
		lines = append(lines, u.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) delete(_ context.Context, args []string) (string, error) {
	if _, err := d.find(args[0]); err != nil {
		return "", err
	}
	d.book.Delete(args[0])
	return "Contact deleted.", nil
}

func (d *Dispatcher) removePhone(_ context.Context, args []string) (string, error) {
	r, err := d.find(args[0])
	if err != nil {
		return "", err
	}
	if _, err := r.FindPhone(args[1]); err != nil {
		return "", err
	}
	r.RemovePhone(args[1])
	return "Phone removed.", nil
}

func (d *Dispatcher) editPhone(_ context.Context, args []string) (string, error) {
	r, err := d.find(args[0])
	if err != nil {
		return "", err
	}
	if _, err := r.FindPhone(args[1]); err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return "Phone updated.", nil
}

func (d *Dispatcher) help(context.Context, []string) (string, error) {
	lines := make([]string, 0, len(d.commands)+1)
	for _, cmd := range d.commands {
		usage := (&MissingArgumentError{Command: cmd.name, Args: cmd.args}).usage()
		lines = append(lines, fmt.Sprintf("%-40s %s", usage, cmd.help))
	}
	lines = append(lines, fmt.Sprintf("%-40s %s", "close | exit", "save and quit"))
	return strings.Join(lines, "\n"), nil
}
