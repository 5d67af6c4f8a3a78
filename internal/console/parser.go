// Package console handles the game-facing plumbing: tailing the
// console log, parsing chat lines and writing responses back through
// the command file.
package console

import (
	"regexp"
	"strings"
)

// Chat lines look like
//
//	[ALL] PlayerName‎﹫steam [DEAD]: !fish some args
//
// where the channel tag is ALL, C, T or CT, the invisible mark after
// the name is emitted by the game, and the platform suffix and death
// tag are optional.
var chatLine = regexp.MustCompile(`\[(?:ALL|C?T?)\]\s+(.*?)‎(?:﹫\w+)?\s*(?:\[DEAD\])?:\s*(\S+)?(?:\s+(.*))?$`)

type ChatCommand struct {
	Username string
	Command  string
	Args     string
}

// ParseLine extracts a bang-command from a raw console line. Lines
// that are not chat, carry no command, or whose first word is not a
// bang-command are skipped.
func ParseLine(line string) (ChatCommand, bool) {
	m := chatLine.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return ChatCommand{}, false
	}

	cmd := ChatCommand{
		Username: m[1],
		Command:  m[2],
		Args:     strings.TrimSpace(m[3]),
	}
	if cmd.Command == "" || !strings.HasPrefix(cmd.Command, "!") {
		return ChatCommand{}, false
	}
	return cmd, true
}
