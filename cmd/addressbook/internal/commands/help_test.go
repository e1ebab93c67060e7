package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightmarlin/addressbook"
)

func TestDispatcher_HelpListsEveryCommand(t *testing.T) {
	d := NewDispatcher(addressbook.New(), addressbook.DefaultWindow, nil)

	out := d.Dispatch(context.Background(), "help", nil)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, len(d.lookup)+1, "one line per command plus close | exit")

	for i, cmd := range d.commands {
		assert.True(t, strings.HasPrefix(lines[i], cmd.name), "line %d: %q", i, lines[i])
		assert.Contains(t, lines[i], cmd.help)
	}
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "close | exit"))
	assert.Len(t, d.commands, len(d.lookup), "command names are unique")
}
