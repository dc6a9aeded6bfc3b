package alconna

// candidateMatch records a node the dispatcher could claim the current
// token for, along with the bookkeeping the tie-break in better needs.
type candidateMatch struct {
	opt  *Option
	sub  *Subcommand
	node node

	sentencePrefixed bool
	isCompact        bool
	compactRemainder string
	order            int
}

// trialOption checks (without permanently consuming) whether o could
// claim the token at av's cursor.
func trialOption(av *argv, o *Option, ci bool, order int) *candidateMatch {
	m := av.mark()
	defer av.rewind(m)

	if !o.Sentence.match(av) {
		return nil
	}

	sentenceOK := av.mark().cursor != m.cursor

	tok, isStr := av.peekString()
	if !isStr {
		return nil
	}

	if _, ok := matchesName(tok, o.Name, o.Aliases, ci); ok {
		return &candidateMatch{opt: o, node: o, sentencePrefixed: sentenceOK, order: order}
	}

	if o.Compact {
		if _, remainder, ok := matchesCompact(tok, o.Name, o.Aliases, ci); ok {
			return &candidateMatch{
				opt: o, node: o, sentencePrefixed: sentenceOK,
				isCompact: true, compactRemainder: remainder, order: order,
			}
		}
	}

	return nil
}

func trialSubcommand(av *argv, s *Subcommand, ci bool, order int) *candidateMatch {
	m := av.mark()
	defer av.rewind(m)

	if !s.Sentence.match(av) {
		return nil
	}

	sentenceOK := av.mark().cursor != m.cursor

	tok, isStr := av.peekString()
	if !isStr {
		return nil
	}

	if _, ok := matchesName(tok, s.Name, s.Aliases, ci); ok {
		return &candidateMatch{sub: s, node: s, sentencePrefixed: sentenceOK, order: order}
	}

	if s.Compact {
		if _, remainder, ok := matchesCompact(tok, s.Name, s.Aliases, ci); ok {
			return &candidateMatch{
				sub: s, node: s, sentencePrefixed: sentenceOK,
				isCompact: true, compactRemainder: remainder, order: order,
			}
		}
	}

	return nil
}

// selectCandidate implements the dispatcher's tie-break:
// Sentence-prefixed nodes outrank bare nodes; among same-prefix
// candidates, higher priority wins; same-priority ties fall to
// definition order.
func selectCandidate(av *argv, opts []*Option, subs []*Subcommand, used map[node]int, ci bool) *candidateMatch {
	var best *candidateMatch

	order := 0

	consider := func(cm *candidateMatch) {
		if cm == nil {
			return
		}

		if best == nil || better(cm, best) {
			best = cm
		}
	}

	for _, o := range opts {
		if used[o] > 0 && !o.allowsRepeat() {
			order++

			continue
		}

		consider(trialOption(av, o, ci, order))
		order++
	}

	for _, s := range subs {
		if used[s] > 0 && !s.allowsRepeat() {
			order++

			continue
		}

		consider(trialSubcommand(av, s, ci, order))
		order++
	}

	return best
}

func better(a, b *candidateMatch) bool {
	if a.sentencePrefixed != b.sentencePrefixed {
		return a.sentencePrefixed
	}

	pa, pb := nodePriority(a.node), nodePriority(b.node)
	if pa != pb {
		return pa > pb
	}

	return a.order < b.order
}

func nodePriority(n node) int { return n.priority() }

// commit replays the same Sentence + name/compact match that trial*
// already verified, this time keeping the cursor advancement, and
// pushes back any compact remainder so the node's own Args sees it as
// its first token.
func (cm *candidateMatch) commit(av *argv) {
	if cm.opt != nil {
		cm.opt.Sentence.match(av)
	} else {
		cm.sub.Sentence.match(av)
	}

	av.next()

	if cm.isCompact && cm.compactRemainder != "" {
		av.pushBack(cm.compactRemainder)
	}
}
