package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		text string
		cmd  string
		args string
	}{
		{"/start", "start", ""},
		{"/join_team Falcons", "join_team", "Falcons"},
		{"/join_team   Night Owls  ", "join_team", "Night Owls"},
		{"/judge@huntbot 1337 fountain", "judge", "1337 fountain"},
		{"/help@huntbot", "help", ""},
		{"hello there", "", ""},
	}
	for _, c := range cases {
		cmd, args := parseCommand(c.text)
		assert.Equal(t, c.cmd, cmd, "text %q", c.text)
		assert.Equal(t, c.args, args, "text %q", c.text)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Team \#1 \(best\)`, escapeMarkdown("Team #1 (best)"))
	assert.Equal(t, `a\_b\*c`, escapeMarkdown("a_b*c"))
	assert.Equal(t, "plain words", escapeMarkdown("plain words"))
}
