package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"collapse whitespace", "a  \t b\n\nc", "a b c"},
		{"trim", "  清晰度很高  ", "清晰度很高"},
		{"control chars removed", "a\x01b\x7fcd", "abcd"},
		{"literal escapes removed", `第一行\n第二行\r`, "第一行第二行"},
		{"zero width removed", "\uFEFFhe\u200Bllo", "hello"},
		{"interior byte order mark removed", "he\uFEFFllo wo\uFEFFrld", "hello world"},
		{"crlf to space", "line1\r\nline2", "line1 line2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  a   b  ",
		"清 晰\t度\n很 高",
		`a\\nb`,
		`\\\nn`,
		"a\x00\x1fb",
		"\u200B\u200C\u200D\uFEFF",
		"mixed \r\n and \\n literal",
		" \x01 interior controls \x02 ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
