package alconna

import (
	"regexp"
	"strconv"
)

// Header is the command's entry point: a set of prefix strings
// (possibly empty) combined with a command name, which may be a literal,
// a regex (whose bracket groups become HeadResult bindings), or a set of
// non-text elements matched by type.
type Header struct {
	Prefixes []string
	Name     string
	NameRE   *regexp.Regexp
	Objects  []any // accepted non-text command-name tokens
}

// NewHeader builds a literal-name Header with no prefixes.
func NewHeader(name string) *Header { return &Header{Name: name} }

// WithPrefixes attaches acceptable prefix strings; a Header matches iff
// the first token(s) compose, in order, one prefix (possibly the empty
// one, if "" is among Prefixes or Prefixes is empty) plus the command
// name.
func (h *Header) WithPrefixes(prefixes ...string) *Header {
	h.Prefixes = prefixes
	return h
}

// WithNameRegex switches to regex-bracketed name matching; captured
// groups populate HeadResult.Groups by name (named groups) or index
// (unnamed groups, stringified).
func (h *Header) WithNameRegex(re *regexp.Regexp) *Header {
	h.NameRE = re
	h.Name = ""

	return h
}

// WithObjects switches to non-text-element header matching: the first
// token's dynamic type must equal the type of one of objects (compared
// by type name; the values themselves are not compared).
func (h *Header) WithObjects(objects ...any) *Header {
	h.Objects = objects
	return h
}

// HeadResult is the head-match sub-record of Arparma.
type HeadResult struct {
	Origin  any
	Result  string
	Matched bool
	Groups  map[string]string
}

// match attempts every (prefix, name) pair in order; the first that
// consumes the cursor prefix wins.
func (h *Header) match(av *argv) *HeadResult {
	prefixes := h.Prefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	for _, prefix := range prefixes {
		m := av.mark()

		if res, ok := h.tryOne(av, prefix); ok {
			return res
		}

		av.rewind(m)
	}

	return &HeadResult{Matched: false}
}

func (h *Header) tryOne(av *argv, prefix string) (*HeadResult, bool) {
	if len(h.Objects) > 0 {
		tok := av.peek()
		for _, want := range h.Objects {
			if sameType(tok, want) {
				av.next()
				return &HeadResult{Origin: tok, Result: "", Matched: true}, true
			}
		}

		return nil, false
	}

	tok, isStr := av.peekString()
	if !isStr {
		return nil, false
	}

	candidate := tok

	if prefix != "" {
		if len(tok) <= len(prefix) || tok[:len(prefix)] != prefix {
			// Prefix might be its own token (space-separated) instead
			// of glued to the name.
			if tok != prefix {
				return nil, false
			}

			av.next()

			tok2, isStr2 := av.peekString()
			if !isStr2 {
				return nil, false
			}

			candidate = tok2
		} else {
			candidate = tok[len(prefix):]
		}
	}

	if h.NameRE != nil {
		loc := h.NameRE.FindStringSubmatchIndex(candidate)
		if loc == nil || loc[0] != 0 {
			return nil, false
		}

		if loc[1] != len(candidate) {
			return nil, false
		}

		av.next()

		groups := map[string]string{}
		names := h.NameRE.SubexpNames()

		matches := h.NameRE.FindStringSubmatch(candidate)
		for i, g := range matches {
			if i == 0 {
				continue
			}

			key := names[i]
			if key == "" {
				key = strconv.Itoa(i)
			}

			groups[key] = g
		}

		return &HeadResult{Origin: tok, Result: candidate, Matched: true, Groups: groups}, true
	}

	if candidate == h.Name {
		av.next()
		return &HeadResult{Origin: tok, Result: candidate, Matched: true}, true
	}

	return nil, false
}

func sameType(a, b any) bool {
	return reflectTypeName(a) == reflectTypeName(b)
}
