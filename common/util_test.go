package common

import "testing"

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "arguments"},
		{1, "argument"},
		{2, "arguments"},
	}

	for _, tt := range tests {
		if got := Pluralize("argument", tt.n); got != tt.want {
			t.Errorf("Pluralize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
