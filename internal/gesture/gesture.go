// Package gesture is the selection and drag state machine for chord tokens.
//
// A Session is a plain value. Step takes the current session, one pointer or
// action event, and the environment it happens in, and returns the next
// session plus the text to publish. Nothing is shared or mutated in place, so
// rollback and cancellation are deterministic.
package gesture

import (
	"math"

	"github.com/xonecas/strum/internal/chordline"
	"github.com/xonecas/strum/internal/hover"
	"github.com/xonecas/strum/internal/placement"
)

// DefaultThreshold is the movement, in pointer units, a press may make and
// still count as a tap.
const DefaultThreshold = 4

// Phase is the controller state.
type Phase int

const (
	Idle Phase = iota
	DraggingFromPalette
	DraggingExistingToken
	TokenSelected
	ChordTypeSelected
)

func (p Phase) String() string {
	switch p {
	case DraggingFromPalette:
		return "dragging-from-palette"
	case DraggingExistingToken:
		return "dragging-existing-token"
	case TokenSelected:
		return "token-selected"
	case ChordTypeSelected:
		return "chord-type-selected"
	}
	return "idle"
}

// Target is where a press landed: a palette chord type or the surface.
type Target struct {
	TypeID string
}

// Surface is the editing surface target.
func Surface() Target { return Target{} }

// Palette targets the palette pill of chord type id.
func Palette(id string) Target { return Target{TypeID: id} }

// OnPalette reports whether the press landed on a palette pill.
func (t Target) OnPalette() bool { return t.TypeID != "" }

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// Event is one input delivered to Step.
type Event interface{ event() }

// Press starts a gesture at a pointer position.
type Press struct {
	X, Y   float64
	Target Target
}

// Move reports pointer movement.
type Move struct{ X, Y float64 }

// Release ends a gesture at a pointer position.
type Release struct{ X, Y float64 }

// Cancel terminates the current gesture without committing it.
type Cancel struct{}

// Delete removes the selected token or chord type.
type Delete struct{}

// Done leaves a selection without changing anything.
type Done struct{}

func (Press) event()   {}
func (Move) event()    {}
func (Release) event() {}
func (Cancel) event()  {}
func (Delete) event()  {}
func (Done) event()    {}

// LabelSource resolves chord type ids to labels. *palette.Palette satisfies it.
type LabelSource interface {
	Label(id string) (string, bool)
}

// Env is the world a step happens in.
type Env struct {
	// Text is the current document text.
	Text      string
	Mapper    hover.Mapper
	Labels    LabelSource
	Policy    chordline.StackPolicy
	Threshold float64
}

// Result is what the host must publish after a step.
type Result struct {
	// Text is the document text after the step; equal to Env.Text unless
	// Changed.
	Text    string
	Changed bool
	// RemovedType is the id of a chord type the host should drop from the
	// palette.
	RemovedType string
}

// Ghost is the floating label that follows the pointer during a drag.
type Ghost struct {
	Label string
	X, Y  float64
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// press is a pointer that went down but is not yet classified as tap or drag.
type press struct {
	x, y   float64
	target Target
	label  string
	// token under the press point, for surface presses.
	cell     hover.Cell
	token    chordline.Token
	hasToken bool
}

// Session is the controller state. The zero value is Idle.
type Session struct {
	phase Phase

	pressed bool
	press   press

	// drag and armed state
	label    string
	typeID   string
	snapshot string
	hasSnap  bool

	// pointer feedback
	px, py  float64
	hover   hover.Cell
	hoverOK bool

	// TokenSelected
	selLine int
	selTok  chordline.Token
}

// Phase returns the current state.
func (s Session) Phase() Phase { return s.phase }

// Dragging reports whether a drag is in progress.
func (s Session) Dragging() bool {
	return s.phase == DraggingFromPalette || s.phase == DraggingExistingToken
}

// Pressed reports whether a press is waiting to become a tap or a drag.
func (s Session) Pressed() bool { return s.pressed }

// Hover returns the cell under the pointer while dragging or armed.
func (s Session) Hover() (hover.Cell, bool) {
	if !s.Dragging() && s.phase != ChordTypeSelected {
		return hover.Cell{}, false
	}
	return s.hover, s.hoverOK
}

// Ghost returns the drag ghost.
func (s Session) Ghost() (Ghost, bool) {
	if !s.Dragging() {
		return Ghost{}, false
	}
	return Ghost{Label: s.label, X: s.px, Y: s.py}, true
}

// Selection returns the selected token and its line.
func (s Session) Selection() (int, chordline.Token, bool) {
	if s.phase != TokenSelected {
		return 0, chordline.Token{}, false
	}
	return s.selLine, s.selTok, true
}

// Armed returns the selected chord type and its label.
func (s Session) Armed() (id, label string, ok bool) {
	if s.phase != ChordTypeSelected {
		return "", "", false
	}
	return s.typeID, s.label, true
}

// Label returns the label being dragged or armed.
func (s Session) Label() string { return s.label }

// Step applies ev to s.
func Step(s Session, ev Event, env Env) (Session, Result) {
	res := Result{Text: env.Text}
	switch e := ev.(type) {
	case Press:
		return s.onPress(e, env), res
	case Move:
		return s.onMove(e, env)
	case Release:
		return s.onRelease(e, env)
	case Cancel:
		return s.onCancel(env)
	case Delete:
		return s.onDelete(env)
	case Done:
		if s.phase == TokenSelected || s.phase == ChordTypeSelected {
			return Session{}, res
		}
	}
	return s, res
}

func (s Session) onPress(e Press, env Env) Session {
	// One gesture at a time.
	if s.Dragging() || s.pressed {
		return s
	}
	p := press{x: e.X, y: e.Y, target: e.Target}
	if e.Target.OnPalette() {
		label, ok := lookup(env.Labels, e.Target.TypeID)
		if !ok {
			return s
		}
		p.label = label
	} else if cell, ok := mapper(env).HoverFromPointer(e.X, e.Y); ok {
		p.cell = cell
		lines := chordline.Parse(env.Text)
		if cell.Line < len(lines) && lines[cell.Line].Kind == chordline.Chord {
			p.token, p.hasToken = chordline.TokenAt(lines[cell.Line].Text, cell.Column)
		}
	}
	s.pressed = true
	s.press = p
	s.px, s.py = e.X, e.Y
	return s
}

func (s Session) onMove(e Move, env Env) (Session, Result) {
	res := Result{Text: env.Text}
	s.px, s.py = e.X, e.Y
	if s.pressed && !s.Dragging() && exceeds(s.press, e.X, e.Y, env.Threshold) {
		s, res = s.startDrag(env)
	}
	if s.Dragging() || s.phase == ChordTypeSelected {
		s.hover, s.hoverOK = mapper(Env{Text: res.Text, Mapper: env.Mapper}).HoverFromPointer(e.X, e.Y)
	}
	return s, res
}

// startDrag turns the pending press into a drag. Dragging an existing token
// snapshots the text before removing the token from it.
func (s Session) startDrag(env Env) (Session, Result) {
	res := Result{Text: env.Text}
	p := s.press
	s.pressed = false
	switch {
	case p.target.OnPalette():
		s.phase = DraggingFromPalette
		s.typeID = p.target.TypeID
		s.label = p.label
		s.snapshot, s.hasSnap = "", false
	case p.hasToken:
		s.snapshot, s.hasSnap = env.Text, true
		s.phase = DraggingExistingToken
		s.typeID = ""
		s.label = p.token.Text
		res.Text = placement.RemoveSpanOnLine(env.Text, p.cell.Line, p.token.Span, env.Policy)
		res.Changed = res.Text != env.Text
	}
	return s, res
}

func (s Session) onRelease(e Release, env Env) (Session, Result) {
	res := Result{Text: env.Text}
	s.px, s.py = e.X, e.Y

	if s.pressed {
		s.pressed = false
		if !exceeds(s.press, e.X, e.Y, env.Threshold) {
			return s.tap(env)
		}
		if !s.press.target.OnPalette() && !s.press.hasToken {
			// A press that wandered off with nothing to drag is not a tap;
			// an armed chord is not placed.
			return s, res
		}
		// The pointer jumped without intermediate motion: a drag that
		// starts and ends in one step.
		orig := env.Text
		var lifted Result
		s, lifted = s.startDrag(env)
		env.Text = lifted.Text
		s, res = s.drop(e, env)
		res.Changed = res.Text != orig
		return s.settle(), res
	}
	if s.Dragging() {
		s, res = s.drop(e, env)
		return s.settle(), res
	}
	return s, res
}

// drop commits or abandons the current drag at the release point.
func (s Session) drop(e Release, env Env) (Session, Result) {
	res := Result{Text: env.Text}
	cell, ok := mapper(env).HoverFromPointer(e.X, e.Y)
	if ok {
		res.Text = placement.PlaceChord(env.Text, cell.Line, cell.Column, s.label, env.Policy)
	} else if s.phase == DraggingExistingToken && s.hasSnap {
		res.Text = s.snapshot
	}
	res.Changed = res.Text != env.Text
	return s, res
}

// settle ends a drag and returns to Idle.
func (s Session) settle() Session {
	return Session{px: s.px, py: s.py}
}

// tap classifies a short press.
func (s Session) tap(env Env) (Session, Result) {
	res := Result{Text: env.Text}
	p := s.press
	switch {
	case p.target.OnPalette():
		return Session{phase: ChordTypeSelected, typeID: p.target.TypeID, label: p.label, px: s.px, py: s.py}, res
	case s.phase == ChordTypeSelected:
		cell, ok := mapper(env).HoverFromPointer(p.x, p.y)
		if ok {
			res.Text = placement.PlaceChord(env.Text, cell.Line, cell.Column, s.label, env.Policy)
			res.Changed = res.Text != env.Text
			s.hover, s.hoverOK = cell, true
		}
		return s, res
	case p.hasToken:
		return Session{phase: TokenSelected, selLine: p.cell.Line, selTok: p.token, px: s.px, py: s.py}, res
	}
	return Session{px: s.px, py: s.py}, res
}

func (s Session) onCancel(env Env) (Session, Result) {
	res := Result{Text: env.Text}
	switch s.phase {
	case DraggingExistingToken:
		if s.hasSnap {
			res.Text = s.snapshot
			res.Changed = res.Text != env.Text
		}
		return s.settle(), res
	case DraggingFromPalette:
		return s.settle(), res
	}
	s.pressed = false
	return s, res
}

func (s Session) onDelete(env Env) (Session, Result) {
	res := Result{Text: env.Text}
	switch s.phase {
	case TokenSelected:
		lines := chordline.Parse(env.Text)
		if s.selLine < len(lines) && lines[s.selLine].Kind == chordline.Chord {
			tok, ok := chordline.TokenAt(lines[s.selLine].Text, s.selTok.Start)
			if ok && tok == s.selTok {
				res.Text = placement.RemoveSpanOnLine(env.Text, s.selLine, tok.Span, env.Policy)
				res.Changed = res.Text != env.Text
			}
		}
		return Session{}, res
	case ChordTypeSelected:
		res.RemovedType = s.typeID
		return Session{}, res
	}
	return s, res
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mapper(env Env) hover.Mapper {
	return env.Mapper.WithSource(hover.Lines(chordline.Parse(env.Text)))
}

func lookup(src LabelSource, id string) (string, bool) {
	if src == nil {
		return "", false
	}
	return src.Label(id)
}

func exceeds(p press, x, y, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return math.Abs(x-p.x) > threshold || math.Abs(y-p.y) > threshold
}
