package analysis

import (
	"strings"
	"testing"

	"github.com/san-kum/phaseplot/internal/field"
)

func TestToASCII(t *testing.T) {
	vp := field.Viewport{XStart: -1, XEnd: 1, YStart: -1, YEnd: 1}
	out := ToASCII(&vp, 21, 11, []field.Point{{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 5, Y: 5}})

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(rows) != 11 {
		t.Fatalf("got %d rows, want 11", len(rows))
	}
	if r := []rune(rows[0]); r[20] != '•' {
		t.Errorf("top right = %q, want dot", r[20])
	}
	if r := []rune(rows[10]); r[0] != '•' {
		t.Errorf("bottom left = %q, want dot", r[0])
	}
	if r := []rune(rows[5]); r[10] != '┼' {
		t.Errorf("origin = %q, want axis cross", r[10])
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("point outside viewport was drawn:\n%s", out)
	}
}

func TestToASCIIFitsBounds(t *testing.T) {
	if ToASCII(nil, 10, 5) != "" {
		t.Error("no paths should render nothing")
	}
	out := ToASCII(nil, 10, 5, []field.Point{{X: 3, Y: 3}})
	if strings.Count(out, "•") != 1 {
		t.Errorf("single point not drawn:\n%s", out)
	}
}

func TestCrossings(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	path := []field.Point{{X: -1, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 0}, {X: -2, Y: 0}, {X: 2, Y: 4}}

	ts, pts := Crossings(times, path, 0)
	if len(ts) != 2 {
		t.Fatalf("got %d crossings, want 2", len(ts))
	}
	if ts[0] != 0.5 || pts[0] != (field.Point{X: 0, Y: 1}) {
		t.Errorf("first crossing t=%v at %v", ts[0], pts[0])
	}
	if ts[1] != 3.5 || pts[1] != (field.Point{X: 0, Y: 2}) {
		t.Errorf("second crossing t=%v at %v", ts[1], pts[1])
	}
}
