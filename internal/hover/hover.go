// Package hover maps pointer coordinates on the editing surface to
// (line, column) cells of the document.
package hover

import (
	"math"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/xonecas/strum/internal/chordline"
)

// Reference is rendered off-screen to measure the monospace character width.
const Reference = "MMMMMMMMMMMMMMMMMMMM"

// Rect is the measured position and size of the editing surface.
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Metrics describes how text is laid out on the surface.
type Metrics struct {
	PadLeft    float64
	PadTop     float64
	LineHeight float64
	CharWidth  float64
	// Bias nudges the column forward before flooring so a pointer resting
	// on the right edge of a glyph lands on the next cell.
	Bias float64
	// GuideWidth is the minimum column range on chord and blank lines.
	GuideWidth int
}

// DefaultMetrics returns terminal-cell metrics: one row per line, one cell
// per character.
func DefaultMetrics() Metrics {
	return Metrics{
		LineHeight: 1,
		CharWidth:  1,
		Bias:       0.2,
		GuideWidth: 60,
	}
}

// Cell is a (line, column) position in the document.
type Cell struct {
	Line   int
	Column int
}

// LineSource exposes the line shape the mapper clamps against.
// *document.Document satisfies it.
type LineSource interface {
	LineCount() int
	IsChordLine(i int) bool
	IsBlank(i int) bool
	LineWidth(i int) int
}

// Lines adapts parsed lines to LineSource.
type Lines []chordline.Line

func (l Lines) LineCount() int { return len(l) }

func (l Lines) IsChordLine(i int) bool {
	return i >= 0 && i < len(l) && l[i].Kind == chordline.Chord
}

func (l Lines) IsBlank(i int) bool {
	return i >= 0 && i < len(l) && l[i].Kind == chordline.Lyric && l[i].IsBlank()
}

func (l Lines) LineWidth(i int) int {
	if i < 0 || i >= len(l) {
		return 0
	}
	return l[i].Width()
}

// Mapper converts pointer positions into cells. The zero value is unmeasured
// and maps nothing.
type Mapper struct {
	Metrics  Metrics
	Source   LineSource
	rect     Rect
	scrollY  float64
	measured bool
}

// NewMapper returns an unmeasured mapper.
func NewMapper(m Metrics, src LineSource) Mapper {
	return Mapper{Metrics: m, Source: src}
}

// Measure records the surface rectangle. A rectangle with no area leaves
// the mapper unmeasured.
func (m *Mapper) Measure(r Rect) {
	m.rect = r
	m.measured = r.W > 0 && r.H > 0
}

// SetScroll records the vertical scroll offset of the surface.
func (m *Mapper) SetScroll(y float64) {
	if y < 0 {
		y = 0
	}
	m.scrollY = y
}

// Scroll returns the vertical scroll offset.
func (m Mapper) Scroll() float64 { return m.scrollY }

// Measured reports whether a surface rectangle is known.
func (m Mapper) Measured() bool { return m.measured }

// Rect returns the measured surface rectangle.
func (m Mapper) Rect() Rect { return m.rect }

// WithSource returns a copy of m clamping against src.
func (m Mapper) WithSource(src LineSource) Mapper {
	m.Source = src
	return m
}

// HoverFromPointer maps a pointer position to a cell. It reports false when
// the surface is unmeasured, there is no line source, or the pointer is
// outside the surface.
func (m Mapper) HoverFromPointer(x, y float64) (Cell, bool) {
	if !m.measured || m.Source == nil || !m.rect.Contains(x, y) {
		return Cell{}, false
	}
	n := m.Source.LineCount()
	if n < 1 {
		return Cell{}, false
	}
	met := m.metrics()

	dx := x - m.rect.X - met.PadLeft
	dy := y - m.rect.Y - met.PadTop + m.scrollY

	line := clamp(int(math.Floor(dy/met.LineHeight)), 0, n-1)
	col := int(math.Floor(dx/met.CharWidth + met.Bias))
	return Cell{Line: line, Column: clamp(col, 0, m.maxColumn(line))}, true
}

// MaxColumn returns the largest column a hover on line may report.
func (m Mapper) MaxColumn(line int) int {
	if m.Source == nil {
		return 0
	}
	return m.maxColumn(line)
}

func (m Mapper) maxColumn(line int) int {
	w := m.Source.LineWidth(line)
	if m.Source.IsChordLine(line) || m.Source.IsBlank(line) {
		w = max(w, m.Metrics.GuideWidth)
	}
	return w
}

// CellToPoint returns the surface position of the top-left corner of c,
// accounting for scroll. Renderers use it to place guides, the caret, and
// the ghost label.
func (m Mapper) CellToPoint(c Cell) (float64, float64) {
	met := m.metrics()
	x := m.rect.X + met.PadLeft + float64(c.Column)*met.CharWidth
	y := m.rect.Y + met.PadTop + float64(c.Line)*met.LineHeight - m.scrollY
	return x, y
}

// metrics fills in unusable values so division never blows up.
func (m Mapper) metrics() Metrics {
	met := m.Metrics
	if met.LineHeight <= 0 {
		met.LineHeight = 1
	}
	if met.CharWidth <= 0 {
		met.CharWidth = 1
	}
	return met
}

// MeasureCharWidth returns the width of one character of reference given the
// width the reference rendered at. A non-positive renderedWidth measures the
// reference in terminal cells.
func MeasureCharWidth(reference string, renderedWidth float64) float64 {
	n := utf8.RuneCountInString(reference)
	if n == 0 {
		return 1
	}
	if renderedWidth <= 0 {
		renderedWidth = float64(runewidth.StringWidth(reference))
	}
	if renderedWidth <= 0 {
		return 1
	}
	return renderedWidth / float64(n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
