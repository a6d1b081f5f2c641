package lexer

import "testing"

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{
			name:     "valid position",
			pos:      Position{Filename: "test.cmm", Line: 42, Column: 15, Offset: 100},
			expected: "test.cmm:42:15",
		},
		{
			name:     "zero position",
			pos:      Position{},
			expected: ":0:0",
		},
		{
			name:     "no filename",
			pos:      Position{Line: 3, Column: 7},
			expected: ":3:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("Position.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPosition_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"zero value", Position{}, false},
		{"line zero", Position{Line: 0, Column: 5}, false},
		{"line one", Position{Line: 1, Column: 1}, true},
		{"later line", Position{Line: 42, Column: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.expected {
				t.Errorf("Position.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
