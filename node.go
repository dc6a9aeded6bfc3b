package alconna

import "strings"

// Sentence is a required literal prefix sequence attached to an Option
// or Subcommand: the node can only match if the preceding tokens match
// the Sentence verbatim. Enables disambiguation of nested groupings.
type Sentence struct {
	Words []string
}

// NewSentence builds a Sentence from literal words, matched in order.
func NewSentence(words ...string) *Sentence { return &Sentence{Words: words} }

// match checks whether av's next len(Words) tokens equal Words
// verbatim; on success it commits the cursor past them, on failure it
// leaves the cursor untouched.
func (s *Sentence) match(av *argv) bool {
	if s == nil {
		return true
	}

	m := av.mark()

	for _, want := range s.Words {
		tok, ok := av.peekString()
		if !ok || tok != want {
			av.rewind(m)
			return false
		}

		av.next()
	}

	return true
}

// node is the common contract leaf Options and internal Subcommands
// both satisfy, letting the Analyser's dispatcher treat them uniformly
// for tie-breaking and matching.
type node interface {
	names() []string
	sentence() *Sentence
	priority() int
	destPath() string
}

// matchesName reports whether tok equals name or one of aliases,
// set-based after normalization: lowercased when configured.
func matchesName(tok string, name string, aliases []string, caseInsensitive bool) (string, bool) {
	norm := func(s string) string {
		if caseInsensitive {
			return strings.ToLower(s)
		}

		return s
	}

	candidates := append([]string{name}, aliases...)

	for _, c := range candidates {
		if norm(tok) == norm(c) {
			return c, true
		}
	}

	return "", false
}

// matchesCompact reports whether tok has one of name/aliases as a
// prefix, returning the matched name and the remainder to be pushed
// back onto the cursor (compact name/value concatenation).
func matchesCompact(tok, name string, aliases []string, caseInsensitive bool) (matched string, remainder string, ok bool) {
	norm := func(s string) string {
		if caseInsensitive {
			return strings.ToLower(s)
		}

		return s
	}

	ntok := norm(tok)
	candidates := append([]string{name}, aliases...)

	for _, c := range candidates {
		nc := norm(c)
		if len(ntok) > len(nc) && strings.HasPrefix(ntok, nc) {
			return c, tok[len(c):], true
		}
	}

	return "", "", false
}
