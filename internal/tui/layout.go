package tui

import (
	"image"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/xonecas/strum/internal/gesture"
	"github.com/xonecas/strum/internal/hover"
	"github.com/xonecas/strum/internal/palette"
)

const (
	paletteRows = 1
	statusRows  = 1
)

// addPillLabel is the palette button that opens the new chord dialog.
const addPillLabel = "+"

// layout holds the screen rectangles of every region.
type layout struct {
	palette image.Rectangle
	surface image.Rectangle
	help    image.Rectangle
	status  image.Rectangle
	pills   []pill
}

// pill is one palette entry on screen. An empty id is the add button.
type pill struct {
	id    string
	label string
	rect  image.Rectangle
}

func generateLayout(width, height, helpRows int) layout {
	surfaceH := height - paletteRows - statusRows - helpRows
	if surfaceH < 1 {
		surfaceH = 1
	}
	ly := layout{
		palette: image.Rect(0, 0, width, paletteRows),
		surface: image.Rect(0, paletteRows, width, paletteRows+surfaceH),
	}
	ly.help = image.Rect(0, ly.surface.Max.Y, width, ly.surface.Max.Y+helpRows)
	ly.status = image.Rect(0, ly.help.Max.Y, width, ly.help.Max.Y+statusRows)
	return ly
}

// layoutPills places the chord type pills left to right, followed by the
// add button. Pills that do not fit are dropped.
func layoutPills(types []palette.ChordType, bar image.Rectangle) []pill {
	var pills []pill
	x := bar.Min.X + 1
	place := func(id, label string) bool {
		w := lipgloss.Width(label) + 2
		if x+w > bar.Max.X {
			return false
		}
		pills = append(pills, pill{id: id, label: label, rect: image.Rect(x, bar.Min.Y, x+w, bar.Max.Y)})
		x += w + 1
		return true
	}
	for _, t := range types {
		if !place(t.ID, t.Label) {
			break
		}
	}
	place("", addPillLabel)
	return pills
}

// pillAt returns the pill under (x, y).
func (ly layout) pillAt(x, y int) (pill, bool) {
	for _, p := range ly.pills {
		if inRect(x, y, p.rect) {
			return p, true
		}
	}
	return pill{}, false
}

// inRect checks if (x, y) is inside r.
func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}

// handleResize applies a window size change and re-derives layout. A
// resize moves every cell under the pointer, so a drag in flight is
// cancelled.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	if msg.Width != m.width || msg.Height != m.height {
		m.step(gesture.Cancel{})
	}
	m.width, m.height = msg.Width, msg.Height
	helpRows := 0
	if m.help.ShowAll {
		helpRows = len(m.keys.FullHelp()[0])
	}
	m.layout = generateLayout(m.width, m.height, helpRows)
	m.layout.pills = layoutPills(m.palette.Types(), m.layout.palette)
	m.updateComponentSizes()
}

// updateComponentSizes pushes layout dimensions to sub-models.
func (m *Model) updateComponentSizes() {
	m.editor.SetWidth(m.layout.surface.Dx())
	m.editor.SetHeight(m.layout.surface.Dy())
	r := m.layout.surface
	m.mapper.Measure(hover.Rect{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	})
	m.syncMapper()
}

// syncMapper pushes the editor scroll offset to the hover mapper.
func (m *Model) syncMapper() {
	m.mapper.SetScroll(float64(m.editor.Scroll()) * m.mapper.Metrics.LineHeight)
}
