package oracle

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "raw json untouched",
			in:   `{"amount": 500}`,
			want: `{"amount": 500}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"amount\": 500}\n```",
			want: `{"amount": 500}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"amount\": 500}\n```",
			want: `{"amount": 500}`,
		},
		{
			name: "chatter around object",
			in:   "Here is the result:\n{\"amount\": 500}\nHope that helps!",
			want: `{"amount": 500}`,
		},
		{
			name: "array value",
			in:   "```json\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "object containing array stays whole",
			in:   `{"values": [1, 2]}`,
			want: `{"values": [1, 2]}`,
		},
		{
			name: "whitespace",
			in:   "  \n{\"a\": null}\t",
			want: `{"a": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
