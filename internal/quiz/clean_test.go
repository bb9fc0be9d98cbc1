package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bracketed timestamps removed",
			in:   "[00:01:23] welcome back [01:02:03] to the show",
			want: "welcome back to the show",
		},
		{
			name: "parenthesized timestamps removed",
			in:   "first point (01:30) second point",
			want: "first point second point",
		},
		{
			name: "speaker labels removed",
			in:   "Speaker 1: hello there\nSpeaker 2: hi back",
			want: "hello there hi back",
		},
		{
			name: "whitespace collapsed",
			in:   "too   many\n\n\nspaces\there",
			want: "too many spaces here",
		},
		{
			name: "speaker label mid-line kept",
			in:   "he said Speaker 1: loudly",
			want: "he said Speaker 1: loudly",
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTranscript(tt.in))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First sentence. Second one! A third? ")
	assert.Equal(t, []string{"First sentence", "Second one", "A third"}, got)

	assert.Empty(t, splitSentences("..."))
	assert.Empty(t, splitSentences(""))
}
