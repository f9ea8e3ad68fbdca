package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \t\n ", want: ""},
		{name: "subject", input: "  Social   Studies ", want: "social studies"},
		{name: "tabs inside", input: "Earth\tScience", want: "earth science"},
		{name: "hyphenated tag", input: "Pre-Algebra", want: "pre-algebra"},
		{name: "apostrophe", input: "Newton's Laws", want: "newton's laws"},
		{name: "diacritics", input: "Géographie Physique", want: "géographie physique"},
		{name: "already normal", input: "fractions", want: "fractions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
