package unit

import "testing"

func TestCountBranches(t *testing.T) {
	text := "if x:\n    for y in z:\n        while True:\n            pass"
	// "if" appears once standalone; "for", "while" once each.
	if got := CountBranches(text); got != 3 {
		t.Errorf("CountBranches = %d, want 3", got)
	}
}

func TestCountBranches_SubstringSemantics(t *testing.T) {
	// Occurrences are substring counts: "elif" contains "if" as well.
	if got := CountBranches("elif"); got != 2 {
		t.Errorf("CountBranches(elif) = %d, want 2", got)
	}
	if got := CountBranches(""); got != 0 {
		t.Errorf("CountBranches(empty) = %d, want 0", got)
	}
}

func TestSizeMetric(t *testing.T) {
	cases := []struct {
		span Span
		want int
	}{
		{Span{Start: 1, End: 1}, 1},
		{Span{Start: 1, End: 2}, 1},
		{Span{Start: 3, End: 10}, 7},
	}
	for _, tc := range cases {
		if got := SizeMetric(tc.span); got != tc.want {
			t.Errorf("SizeMetric(%v) = %d, want %d", tc.span, got, tc.want)
		}
	}
}

func TestKey(t *testing.T) {
	u := Unit{Name: "foo", Kind: KindFunction}
	v := Unit{Name: "foo", Kind: KindClass}
	if u.Key() == v.Key() {
		t.Error("units of different kinds must not share a key")
	}
	w := Unit{Name: "foo", Kind: KindFunction, Fingerprint: "other"}
	if u.Key() != w.Key() {
		t.Error("key must depend only on kind and name")
	}
}
