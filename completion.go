package alconna

import (
	"github.com/rsteube/carapace"
)

// CompSession is the speculative-mode analyser wrapper: instead of
// fully matching, it walks the grammar tree far enough to describe what
// could legally come next, and renders that as a carapace.Action so a
// shell-completion integration can drive it directly.
type CompSession struct {
	cmd       *Alconna
	remainder []any
}

func newCompSession(a *Alconna, remainder []any) *CompSession {
	return &CompSession{cmd: a, remainder: remainder}
}

// Tab runs the speculative pass: it replays remainder through the same
// node-priority dispatch the real Analyser uses, without ever producing
// a fatal error for an incomplete or dangling token, and returns the
// carapace.Action describing legal continuations from wherever that
// replay stopped.
func (c *CompSession) Tab() carapace.Action {
	av := newArgv(c.remainder)
	av.ingest(c.remainder)

	opts, subs, args := c.cmd.options, c.cmd.subcommands, c.cmd.Args
	used := map[node]int{}

	for !av.eof() {
		cm := selectCandidate(av, opts, subs, used, c.cmd.Meta.CaseInsensitive)
		if cm == nil {
			break
		}

		cm.commit(av)
		used[cm.node]++

		if cm.opt != nil {
			if cm.opt.Args != nil {
				skipArgsSpeculatively(av, cm.opt.Args)
			}

			continue
		}

		opts, subs, args = cm.sub.options, cm.sub.subcommands, cm.sub.Args
	}

	return actionsFor(opts, subs, args)
}

// skipArgsSpeculatively advances av past as many tokens as args' slots
// would greedily claim, ignoring Pattern mismatches (a half-typed token
// being completed is expected not to fully match yet).
func skipArgsSpeculatively(av *argv, args *Args) {
	reserved := map[string]bool{}

	st := newArgsState(args)
	for !av.eof() {
		claimed, err := st.step(av, reserved)
		if err != nil || !claimed {
			return
		}
	}
}

// actionsFor builds the completion candidates available at the current
// dispatch point: every non-hidden child Option/Subcommand name, and a
// value-shaped hint for each non-hidden slot of the scope's Args, batched
// together into one combined carapace.Action.
func actionsFor(opts []*Option, subs []*Subcommand, args *Args) carapace.Action {
	var names []string

	for _, o := range opts {
		if o.Hidden {
			continue
		}

		names = append(names, o.Name)
		names = append(names, o.Aliases...)
	}

	for _, s := range subs {
		if s.Hidden {
			continue
		}

		names = append(names, s.Name)
	}

	batch := []carapace.Action{carapace.ActionValues(names...)}

	if args != nil {
		for _, slot := range args.Slots() {
			if slot.Flags.has(FlagHidden) {
				continue
			}

			batch = append(batch, carapace.Action{}.Usage(slot.Pattern.String()))
		}
	}

	return carapace.Batch(batch...).ToA()
}
