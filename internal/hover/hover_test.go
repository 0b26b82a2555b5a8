package hover

import (
	"testing"

	"github.com/xonecas/strum/internal/chordline"
)

func testLines() Lines {
	return Lines(chordline.Parse(chordline.Mark("G") + "\nAmazing grace\n\nhow sweet"))
}

func measured(src LineSource) Mapper {
	m := NewMapper(Metrics{
		PadLeft:    4,
		PadTop:     2,
		LineHeight: 20,
		CharWidth:  10,
		Bias:       0.2,
		GuideWidth: 60,
	}, src)
	m.Measure(Rect{X: 100, Y: 50, W: 800, H: 400})
	return m
}

func TestHoverUnmeasured(t *testing.T) {
	m := NewMapper(DefaultMetrics(), testLines())
	if _, ok := m.HoverFromPointer(1, 1); ok {
		t.Error("unmeasured mapper should not map")
	}
	m.Measure(Rect{W: 0, H: 10})
	if m.Measured() {
		t.Error("zero-width rect should not count as measured")
	}
}

func TestHoverOutside(t *testing.T) {
	m := measured(testLines())
	for _, p := range [][2]float64{{0, 0}, {99, 60}, {900, 60}, {500, 450}, {-1e9, 1e9}} {
		if c, ok := m.HoverFromPointer(p[0], p[1]); ok {
			t.Errorf("pointer %v mapped to %+v", p, c)
		}
	}
}

func TestHoverFromPointer(t *testing.T) {
	m := measured(testLines())
	tests := []struct {
		name string
		x, y float64
		want Cell
	}{
		{"origin", 104, 52, Cell{0, 0}},
		{"second line third col", 104 + 25, 52 + 25, Cell{1, 2}},
		{"bias pushes forward", 104 + 29, 52 + 25, Cell{1, 3}},
		{"left padding clamps to zero", 100, 50, Cell{0, 0}},
		{"chord line widened to guide", 104 + 300, 52, Cell{0, 30}},
		{"lyric line clamps to length", 104 + 300, 52 + 20, Cell{1, 13}},
		{"blank line widened", 104 + 500, 52 + 40, Cell{2, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.HoverFromPointer(tt.x, tt.y)
			if !ok {
				t.Fatal("expected a cell")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHoverClampsBottomRight(t *testing.T) {
	src := testLines()
	m := measured(src)
	got, ok := m.HoverFromPointer(899.9, 449.9)
	if !ok {
		t.Fatal("bottom-right corner should map")
	}
	last := src.LineCount() - 1
	if got.Line != last {
		t.Errorf("line = %d, want %d", got.Line, last)
	}
	if got.Column > src.LineWidth(last) {
		t.Errorf("column %d beyond line width %d", got.Column, src.LineWidth(last))
	}

	blankEnd := Lines(chordline.Parse("la\n"))
	m = measured(blankEnd)
	got, _ = m.HoverFromPointer(899.9, 449.9)
	if got.Line != 1 || got.Column > 60 {
		t.Errorf("blank last line: got %+v", got)
	}
}

func TestHoverScroll(t *testing.T) {
	m := measured(testLines())
	m.SetScroll(40)
	got, ok := m.HoverFromPointer(104, 52)
	if !ok || got.Line != 2 {
		t.Errorf("scrolled hover = %+v, %v", got, ok)
	}
	m.SetScroll(-5)
	if m.Scroll() != 0 {
		t.Errorf("negative scroll kept: %v", m.Scroll())
	}
}

func TestCellToPoint(t *testing.T) {
	m := measured(testLines())
	m.SetScroll(20)
	x, y := m.CellToPoint(Cell{Line: 2, Column: 3})
	if x != 134 || y != 72 {
		t.Errorf("CellToPoint = (%v, %v)", x, y)
	}
	c, ok := m.HoverFromPointer(x, y)
	if !ok || c != (Cell{Line: 2, Column: 3}) {
		t.Errorf("round trip = %+v, %v", c, ok)
	}
}

func TestMeasureCharWidth(t *testing.T) {
	if w := MeasureCharWidth(Reference, 0); w != 1 {
		t.Errorf("terminal width = %v", w)
	}
	if w := MeasureCharWidth("MMMM", 38); w != 9.5 {
		t.Errorf("rendered width = %v", w)
	}
	if w := MeasureCharWidth("", 10); w != 1 {
		t.Errorf("empty reference = %v", w)
	}
	if w := MeasureCharWidth("漢字", 0); w != 2 {
		t.Errorf("wide reference = %v", w)
	}
}
