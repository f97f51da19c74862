package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice@example.com", true},
		{"a@b", true},
		{"bad-format", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRequired(t *testing.T) {
	if Required("  ") {
		t.Error("Required accepted whitespace")
	}
	if !Required("x") {
		t.Error("Required rejected a value")
	}
}
