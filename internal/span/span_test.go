package span

import (
	"go/token"
	"testing"
)

func TestContains(t *testing.T) {
	body := New(10, 50)

	tests := []struct {
		name  string
		inner Span
		want  bool
	}{
		{name: "strictly inside", inner: New(12, 20), want: true},
		{name: "equal", inner: New(10, 50), want: true},
		{name: "shares start", inner: New(10, 11), want: true},
		{name: "shares end", inner: New(49, 50), want: true},
		{name: "overlaps start", inner: New(5, 12), want: false},
		{name: "overlaps end", inner: New(45, 55), want: false},
		{name: "outside", inner: New(60, 70), want: false},
		{name: "invalid inner", inner: Span{}, want: false},
		{name: "reversed inner", inner: New(30, 20), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := body.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestInvalidContainsNothing(t *testing.T) {
	if (Span{}).Contains(New(1, 2)) {
		t.Error("zero span should contain nothing")
	}
}

func TestOffset(t *testing.T) {
	base := New(100, 200)

	lo, hi, ok := New(110, 115).Offset(base)
	if !ok || lo != 10 || hi != 15 {
		t.Errorf("Offset = (%d, %d, %v), want (10, 15, true)", lo, hi, ok)
	}

	if _, _, ok := New(90, 115).Offset(base); ok {
		t.Error("Offset of a span outside base should fail")
	}
}

func TestCover(t *testing.T) {
	got := New(10, 20).Cover(New(5, 15))
	if got != New(5, 20) {
		t.Errorf("Cover = %v, want 5-20", got)
	}

	if got := (Span{}).Cover(New(3, 4)); got != New(3, 4) {
		t.Errorf("Cover of invalid = %v, want 3-4", got)
	}
}

func TestLess(t *testing.T) {
	if !New(1, 5).Less(New(2, 3)) {
		t.Error("earlier start should sort first")
	}
	if !New(1, 3).Less(New(1, 5)) {
		t.Error("equal start should sort by end")
	}
	if New(1, 5).Less(New(1, 5)) {
		t.Error("equal spans are not less")
	}
}

func TestFormat(t *testing.T) {
	fset := token.NewFileSet()
	f := fset.AddFile("a.go", -1, 20)
	f.SetLines([]int{0, 10})

	s := New(f.Pos(2), f.Pos(12))
	if got, want := s.Format(fset), "a.go:1:3-2:3"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
	if got := s.Format(nil); got != s.String() {
		t.Errorf("Format(nil) = %q, want %q", got, s.String())
	}
}
