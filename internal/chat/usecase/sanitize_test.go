package usecase

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "hello world",
			want: "hello world",
		},
		{
			name: "think block stripped",
			in:   "<think>let me reason</think>The answer is 4.",
			want: "The answer is 4.",
		},
		{
			name: "multiline think block",
			in:   "<think>\nstep 1\nstep 2\n</think>\nDone.",
			want: "Done.",
		},
		{
			name: "unterminated opener swallows the rest",
			in:   "Sure.<think>and then I will",
			want: "Sure.",
		},
		{
			name: "blank runs collapse",
			in:   "para one\n\n\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "surrounding space trimmed",
			in:   "  \n answer \n ",
			want: "answer",
		},
		{
			name: "only a think block leaves nothing",
			in:   "<think>all reasoning</think>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize(tt.in); got != tt.want {
				t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
