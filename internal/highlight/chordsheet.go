package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChordSheet lexes marker-prefixed lyrics. Chord symbols on chord lines come
// out as Name.Function, the marker as Comment.Special, lyrics as Text.
var ChordSheet = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Chord sheet",
		Aliases:   []string{"chordsheet", "strum"},
		Filenames: []string{"*.chords"},
	},
	chordSheetRules,
))

func chordSheetRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\u200B`, Type: chroma.CommentSpecial, Mutator: chroma.Push("chords")},
			{Pattern: `[^\n]+`, Type: chroma.Text},
			{Pattern: `\n`, Type: chroma.Text},
		},
		"chords": {
			{Pattern: `\n`, Type: chroma.Text, Mutator: chroma.Pop(1)},
			{Pattern: `[A-Za-z0-9#()/+\-:._]+`, Type: chroma.NameFunction},
			{Pattern: `[^\S\n]+`, Type: chroma.TextWhitespace},
			{Pattern: `\u200B`, Type: chroma.CommentSpecial},
			{Pattern: `[^\n]`, Type: chroma.Punctuation},
		},
	}
}
