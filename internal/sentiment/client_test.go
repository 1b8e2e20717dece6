package sentiment

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced json block",
			in:   "Here you go:\n```json\n{\"score\": 42}\n```\nHope that helps!",
			want: `{"score": 42}`,
		},
		{
			name: "fence without language tag",
			in:   "```\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "bare object with prose",
			in:   `Sure! The answer is {"mood": "bullish"} based on my analysis.`,
			want: `{"mood": "bullish"}`,
		},
		{
			name: "bare array with prose",
			in:   `Scenarios: [{"name": "up"}, {"name": "down"}] as requested.`,
			want: `[{"name": "up"}, {"name": "down"}]`,
		},
		{
			name: "clean json passes through",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "no json at all",
			in:   "  sorry, I cannot do that  ",
			want: "sorry, I cannot do that",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractJSON(c.in); got != c.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
