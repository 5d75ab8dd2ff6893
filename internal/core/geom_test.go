package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 15, 15, 10)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"one cell border", NewRect(0, 0, 10, 6), 1, NewRect(1, 1, 8, 4)},
		{"no inset", NewRect(3, 4, 5, 5), 0, NewRect(3, 4, 5, 5)},
		{"collapses to zero", NewRect(0, 0, 2, 2), 2, NewRect(2, 2, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Inset(tc.n)
			if got != tc.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tc.n, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}
