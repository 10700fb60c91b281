package util

import "testing"

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "A"},
		{90, "A"},
		{89.9, "B"},
		{80, "B"},
		{79.9, "C"},
		{70, "C"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := LetterGrade(tt.percentage); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{-10, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{110, 100},
	}

	for _, tt := range tests {
		if got := ClampScore(tt.score); got != tt.want {
			t.Errorf("ClampScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
