package news

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 120)

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
		{
			name: "strips source suffix",
			in:   []string{"OpenAI ships model - The Verge"},
			want: []string{"OpenAI ships model"},
		},
		{
			name: "cuts at first separator only",
			in:   []string{"A - B - C"},
			want: []string{"A"},
		},
		{
			name: "hyphen without spaces kept",
			in:   []string{"state-of-the-art chips"},
			want: []string{"state-of-the-art chips"},
		},
		{
			name: "truncates long titles",
			in:   []string{long},
			want: []string{strings.Repeat("a", 87) + "..."},
		},
		{
			name: "exactly max length kept",
			in:   []string{strings.Repeat("b", 90)},
			want: []string{strings.Repeat("b", 90)},
		},
		{
			name: "caps at three preserving order",
			in:   []string{"one", "two", "three", "four", "five"},
			want: []string{"one", "two", "three"},
		},
		{
			name: "separator applied before length check",
			in:   []string{"short title - " + long},
			want: []string{"short title"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Clean(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Clean() len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Clean()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClean_Bounds(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{},
		{"x"},
		{strings.Repeat("é", 200), "a - b", strings.Repeat("z", 91)},
		{"1", "2", "3", "4", "5", "6", "7"},
		{strings.Repeat("word ", 40) + " - Reuters", "ok"},
	}

	for _, in := range inputs {
		out := Clean(in)
		if len(out) > MaxHeadlines || len(out) > len(in) {
			t.Errorf("Clean(%d items) returned %d items", len(in), len(out))
		}
		for i, h := range out {
			if n := utf8.RuneCountInString(h); n > MaxHeadlineLength {
				t.Errorf("item %d has %d runes, want <= %d", i, n, MaxHeadlineLength)
			}
			if !utf8.ValidString(h) {
				t.Errorf("item %d is not valid UTF-8", i)
			}
			if strings.Contains(in[i], sourceSeparator) && strings.Contains(h, sourceSeparator) {
				t.Errorf("item %d still contains separator: %q", i, h)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		headlines []string
		label     string
		want      string
	}{
		{"none", nil, "AI", FallbackSummary},
		{"one", []string{"only"}, "TECH", FallbackSummary},
		{"two", []string{"Alpha", "Beta"}, "AI", "AI update: Alpha and Beta."},
		{"three uses first two", []string{"A", "B", "C"}, "GENERAL", "GENERAL update: A and B."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Summarize(tt.headlines, tt.label); got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize_ContainsLabelAndHeadlines(t *testing.T) {
	t.Parallel()

	h := []string{"Chipmaker posts record quarter", "New robotics lab opens"}
	got := Summarize(h, "TECH")

	for _, part := range []string{"TECH", h[0], h[1]} {
		if !strings.Contains(got, part) {
			t.Errorf("Summarize() = %q, missing %q", got, part)
		}
	}
}
