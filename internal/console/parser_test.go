package console

import "testing"

func TestParseLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want ChatCommand
		ok   bool
	}{
		{
			name: "simple command",
			line: "[ALL] Bob‎: !fish\n",
			want: ChatCommand{Username: "Bob", Command: "!fish"},
			ok:   true,
		},
		{
			name: "command with args",
			line: "[ALL] Bob‎: !gamble 50%",
			want: ChatCommand{Username: "Bob", Command: "!gamble", Args: "50%"},
			ok:   true,
		},
		{
			name: "team chat with platform suffix",
			line: "[CT] Fisher Man‎﹫steam: !shop buy Average Rod",
			want: ChatCommand{Username: "Fisher Man", Command: "!shop", Args: "buy Average Rod"},
			ok:   true,
		},
		{
			name: "dead player",
			line: "[T] Bob‎ [DEAD]: !balance",
			want: ChatCommand{Username: "Bob", Command: "!balance"},
			ok:   true,
		},
		{
			name: "chat that is not a command",
			line: "[ALL] Bob‎: nice catch!",
			ok:   false,
		},
		{
			name: "empty chat",
			line: "[ALL] Bob‎:",
			ok:   false,
		},
		{
			name: "non-chat console output",
			line: "Server: map loaded",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseLine(tc.line)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if got != tc.want {
				t.Errorf("parsed %+v, want %+v", got, tc.want)
			}
		})
	}
}
