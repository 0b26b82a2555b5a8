// Package palette keeps the list of reusable chord types shown above the
// editor.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/strum/internal/chordline"
)

// DefaultChords seeds a palette when the config names none.
var DefaultChords = []string{"C", "D", "Em", "G", "Am", "F"}

// ErrEmptyLabel is returned for a blank chord label.
var ErrEmptyLabel = errors.New("empty chord label")

// ChordType is a palette entry.
type ChordType struct {
	ID    string
	Label string
}

// Palette is an ordered list of chord types. Methods are safe on a nil
// receiver and behave like an empty palette.
type Palette struct {
	types []ChordType
}

// New builds a palette from labels. Invalid and duplicate labels are skipped.
func New(labels ...string) *Palette {
	p := &Palette{}
	for _, l := range labels {
		if _, err := p.Add(l); err != nil {
			log.Warn().Err(err).Str("label", l).Msg("palette: skipping chord")
		}
	}
	return p
}

// ValidateLabel checks that label is a single chord token.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return ErrEmptyLabel
	}
	for _, r := range label {
		if !chordline.IsChordChar(r) {
			return fmt.Errorf("chord %q: invalid character %q", label, r)
		}
	}
	return nil
}

// Add appends a chord type with a fresh id.
func (p *Palette) Add(label string) (ChordType, error) {
	if p == nil {
		return ChordType{}, errors.New("nil palette")
	}
	label = strings.TrimSpace(label)
	if err := ValidateLabel(label); err != nil {
		return ChordType{}, err
	}
	for _, t := range p.types {
		if t.Label == label {
			return ChordType{}, fmt.Errorf("chord %q already in palette", label)
		}
	}
	t := ChordType{ID: uuid.New().String(), Label: label}
	p.types = append(p.types, t)
	return t, nil
}

// Remove drops the chord type with id. It reports whether one was removed.
func (p *Palette) Remove(id string) bool {
	if p == nil {
		return false
	}
	for i, t := range p.types {
		if t.ID == id {
			p.types = append(p.types[:i], p.types[i+1:]...)
			return true
		}
	}
	return false
}

// Label returns the label of chord type id.
func (p *Palette) Label(id string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, t := range p.types {
		if t.ID == id {
			return t.Label, true
		}
	}
	return "", false
}

// Types returns a copy of the chord types in display order.
func (p *Palette) Types() []ChordType {
	if p == nil {
		return nil
	}
	out := make([]ChordType, len(p.types))
	copy(out, p.types)
	return out
}

// Len returns the number of chord types.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.types)
}
