package repositories

import "testing"

func TestOrderedPair(t *testing.T) {
	tests := []struct {
		name       string
		a, b       int64
		wantFirst  int64
		wantSecond int64
	}{
		{name: "already ascending", a: 1, b: 2, wantFirst: 1, wantSecond: 2},
		{name: "descending swaps", a: 2, b: 1, wantFirst: 1, wantSecond: 2},
		{name: "equal ids", a: 3, b: 3, wantFirst: 3, wantSecond: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Both sides of a swap must lock rows in the same order regardless
			// of which proposal direction they come from.
			first, second := orderedPair(tt.a, tt.b)
			if first != tt.wantFirst || second != tt.wantSecond {
				t.Errorf("orderedPair(%d, %d) = (%d, %d), want (%d, %d)",
					tt.a, tt.b, first, second, tt.wantFirst, tt.wantSecond)
			}
			flippedFirst, flippedSecond := orderedPair(tt.b, tt.a)
			if flippedFirst != first || flippedSecond != second {
				t.Errorf("orderedPair is not symmetric: (%d, %d) vs (%d, %d)",
					first, second, flippedFirst, flippedSecond)
			}
		})
	}
}
