package alconna

import (
	"context"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// reservedTriggers returns the set of literal tokens the built-in
// options recognize, honoring whichever builtins a.Meta.DisableBuiltins
// has suppressed. tryBuiltin acts on them only as the first token after
// the header; elsewhere they only stop an optional Args slot from
// binding them.
func (a *Alconna) reservedTriggers() map[string]bool {
	out := map[string]bool{}

	if !a.Meta.DisableBuiltins[DisableHelp] {
		out["--help"] = true
		out["-h"] = true
	}

	if !a.Meta.DisableBuiltins[DisableShortcut] {
		out["--shortcut"] = true
	}

	if !a.Meta.DisableBuiltins[DisableCompletion] {
		out["--comp"] = true
		out["?"] = true
	}

	return out
}

// Parse runs the full analyser pipeline against the process-wide
// default Registry. ctx is threaded through to any bound AsyncExecutor;
// it carries no significance to the matching phases themselves.
func (a *Alconna) Parse(ctx context.Context, input any) (*Arparma, error) {
	return a.ParseWith(ctx, DefaultRegistry(), input)
}

// ParseWith runs the pipeline against an explicit Registry, so callers
// who don't want to share the process-wide default's cache/shortcuts can
// supply their own.
func (a *Alconna) ParseWith(ctx context.Context, reg *Registry, input any) (*Arparma, error) {
	av := newArgv(input)
	if a.Meta.Separators != nil {
		av.separators = a.Meta.Separators
	}

	if a.Meta.Preprocessors != nil {
		av.preprocessors = a.Meta.Preprocessors
	}

	if a.Meta.FilterOut != nil {
		av.filterOut = a.Meta.FilterOut
	}

	av.ingest(input)

	cacheTokens := append([]any(nil), av.tokens...)
	gen := reg.generationOf(a.ID())

	result, ok := reg.cacheGet(a.ID(), cacheTokens, gen)
	if !ok {
		result = a.analyse(ctx, av, reg)
		reg.cachePut(a.ID(), cacheTokens, gen, result)
	}

	if !result.Matched && a.Meta.RaiseException {
		return result, result.ErrorInfo
	}

	return result, nil
}

// analyse drives the full matching pipeline: shortcut expansion, header
// match, built-ins (tryBuiltin, right after the header), body match,
// behaviors, and callback dispatch.
func (a *Alconna) analyse(ctx context.Context, av *argv, reg *Registry) *Arparma {
	a.logPhase(reg, "ingest", av.tokens)

	if !a.Meta.DisableBuiltins[DisableShortcut] {
		a.expandShortcut(av, reg)
	}

	result := newArparma(av)

	headToken, _ := av.peekString()

	hr := a.Header.match(av)
	result.HeadMatch = hr

	if !hr.Matched {
		result.Matched = false

		if a.Meta.FuzzyMatch && a.Header.Name != "" && headToken != "" {
			if candidate, ok := fuzzyMatch(headToken, []string{a.Header.Name}); ok {
				result.ErrorInfo = errFuzzySuggestion(candidate)

				return result
			}
		}

		result.ErrorInfo = errHeaderMismatch()

		return result
	}

	a.logPhase(reg, "header_matched", hr.Result)

	reserved := a.reservedTriggers()

	if builtin, ok := a.tryBuiltin(av, reg, reserved); ok {
		builtin.HeadMatch = hr
		return builtin
	}

	sr := a.matchScope(av, a.options, a.subcommands, a.Args, reserved)

	if sr.fatal != nil {
		result.Matched = false
		result.ErrorInfo = sr.fatal

		return result
	}

	result.Matched = true
	result.MainArgs = sr.mainArgs
	result.Options = sr.options
	result.Subcommands = sr.subcommands
	result.OtherArgs = extrasToBindings(sr.extra)

	a.logPhase(reg, "body_matched", nil)

	runBehaviors(a.behaviors(), result)

	if !result.Matched {
		return result
	}

	if err := runExecutors(ctx, a.executors, flattenBindings(result)); err != nil {
		result.Matched = false
		result.ErrorInfo = errBehavior("executor", err.Error())
	}

	return result
}

func (a *Alconna) behaviors() []Behavior { return a.behaviorList }

func (a *Alconna) logPhase(reg *Registry, phase string, data any) {
	if a.Meta.Logger == nil {
		return
	}

	a.Meta.Logger.Debug().Str("phase", phase).Str("command", a.ID()).Interface("data", data).Msg("alconna: phase")
}

// expandShortcut consults reg's shortcut table: on a hit, the matched
// key token and everything after it are replaced wholesale by the
// rendered template (remaining tokens survive only through its
// placeholders), and matching restarts against the rewritten stream.
func (a *Alconna) expandShortcut(av *argv, reg *Registry) {
	store := reg.shortcutsFor(a.ID())

	sc, n, ok := store.match(av)
	if !ok {
		return
	}

	for i := 0; i < n; i++ {
		av.next()
	}

	remainder := av.remaining()
	defaultSep := " "

	av.tokens = sc.expand(remainder, defaultSep)
	av.cursor = 0
}

// tryBuiltin recognizes a reserved trigger token sitting at av's cursor
// and, if present, fully handles it, returning a terminal
// KindBuiltinAction Arparma.
func (a *Alconna) tryBuiltin(av *argv, reg *Registry, reserved map[string]bool) (*Arparma, bool) {
	tok, isStr := av.peekString()
	if !isStr || !reserved[tok] {
		return nil, false
	}

	result := newArparma(av)
	result.Matched = true

	switch tok {
	case "--help", "-h":
		av.next()

		result.ErrorInfo = errBuiltin(renderHelp(a))

		return result, true

	case "--shortcut":
		av.next()

		key, _ := av.peekString()
		av.next()

		words := av.remaining()
		parts := make([]string, 0, len(words))

		for _, w := range words {
			parts = append(parts, toTokenString(w))
		}

		sc := Shortcut{Key: key, Template: strings.Join(parts, " ")}
		reg.RegisterShortcut(a.ID(), sc)

		result.ErrorInfo = errBuiltin(sc)

		return result, true

	case "--comp", "?":
		av.next()

		session := newCompSession(a, av.remaining())

		result.ErrorInfo = errBuiltin(session)

		return result, true
	}

	return nil, false
}

// renderHelp builds a minimal usage listing from a's grammar tree. It is
// not a full templated help renderer (out of scope here) but carries
// enough structure — header, options, subcommands, each with their Args
// — to be useful standalone or as input to a caller's own formatter.
func renderHelp(a *Alconna) string {
	var b strings.Builder

	b.WriteString(a.Header.Name)
	b.WriteString("\n")

	writeArgsUsage(&b, "  ", a.Args)
	writeNodesUsage(&b, "  ", a.options, a.subcommands)

	return b.String()
}

func writeArgsUsage(b *strings.Builder, indent string, args *Args) {
	if args == nil {
		return
	}

	for _, slot := range args.Slots() {
		if slot.Flags.has(FlagHidden) {
			continue
		}

		b.WriteString(indent)
		b.WriteString("<")
		b.WriteString(slot.Name)
		b.WriteString(": ")
		b.WriteString(slot.Pattern.String())
		b.WriteString(">")

		if slot.Notice != "" {
			b.WriteString("  ")
			b.WriteString(slot.Notice)
		}

		b.WriteString("\n")
	}
}

func writeNodesUsage(b *strings.Builder, indent string, opts []*Option, subs []*Subcommand) {
	for _, o := range opts {
		if o.Hidden {
			continue
		}

		b.WriteString(indent)
		b.WriteString(o.Name)

		for _, alias := range o.Aliases {
			b.WriteString(", ")
			b.WriteString(alias)
		}

		b.WriteString("\n")
		writeArgsUsage(b, indent+"  ", o.Args)
	}

	for _, s := range subs {
		if s.Hidden {
			continue
		}

		b.WriteString(indent)
		b.WriteString(s.Name)
		b.WriteString("\n")
		writeArgsUsage(b, indent+"  ", s.Args)
		writeNodesUsage(b, indent+"  ", s.options, s.subcommands)
	}
}

// --------------------------------------------------------------------------------------------------- //
//                                            Body match                                                //
// --------------------------------------------------------------------------------------------------- //

// scopeResult is the output of matching one grammar scope (the root
// Alconna, or one Subcommand's children) to completion.
type scopeResult struct {
	options     *orderedmap.OrderedMap
	subcommands *orderedmap.OrderedMap
	mainArgs    Bindings
	extra       []any
	fatal       *Error
}

type nodeAccum struct {
	value any
	args  Bindings
	sub   *scopeResult
}

// matchScope runs the per-token interleaved dispatch loop: at each
// token, child Options get first refusal, then child Subcommands, then
// the scope's own Args; a token none of them claims becomes an $extra
// token (or a fatal error, in strict mode). Nodes win a token over Args
// unless doing so would strand a still-required Arg slot with nothing
// left to bind it: a one-token lookahead (wouldStarveRequiredArgs)
// checks, before a node candidate is allowed to claim the token, that
// enough tokens remain afterward to satisfy every required slot the
// scope's Args still owes; if not, the token falls through to the Args
// walker instead.
func (a *Alconna) matchScope(av *argv, opts []*Option, subs []*Subcommand, args *Args, reserved map[string]bool) *scopeResult {
	accum := map[node]*nodeAccum{}
	used := map[node]int{}

	var order []node

	argsSt := newArgsState(args)

	var extra []any

	for !av.eof() {
		cm := selectCandidate(av, opts, subs, used, a.Meta.CaseInsensitive)
		if cm != nil && wouldStarveRequiredArgs(av, argsSt) {
			cm = nil
		}

		if cm != nil {
			cm.commit(av)
			used[cm.node]++

			if _, seen := accum[cm.node]; !seen {
				order = append(order, cm.node)
			}

			acc := accum[cm.node]
			if acc == nil {
				acc = &nodeAccum{}
				accum[cm.node] = acc
			}

			if cm.opt != nil {
				bindings, ferr := a.matchChildArgs(av, cm.opt.Args, reserved)
				if ferr != nil {
					return &scopeResult{fatal: ferr}
				}

				acc.args = bindings
				acc.value = cm.opt.Act.fold(acc.value, foldValue(bindings), true)

				continue
			}

			sub := a.matchScope(av, cm.sub.options, cm.sub.subcommands, cm.sub.Args, reserved)
			if sub.fatal != nil {
				return &scopeResult{fatal: sub.fatal}
			}

			extra = append(extra, sub.extra...)
			acc.sub = sub
			acc.value = cm.sub.Act.fold(acc.value, foldValue(sub.mainArgs), true)

			continue
		}

		claimed, ferr := argsSt.step(av, reserved)
		if ferr != nil {
			return &scopeResult{fatal: ferr}
		}

		if claimed {
			continue
		}

		tok := av.next()

		if a.Meta.Strict {
			return &scopeResult{fatal: errParamsUnmatched(tok, "no matching option, subcommand or argument")}
		}

		extra = append(extra, tok)
	}

	mainArgs, ferr := argsSt.finalize()
	if ferr != nil {
		return &scopeResult{fatal: ferr}
	}

	optionsMap, subsMap := buildResultMaps(opts, subs, accum, order)

	return &scopeResult{
		options:     optionsMap,
		subcommands: subsMap,
		mainArgs:    mainArgs,
		extra:       extra,
	}
}

// wouldStarveRequiredArgs implements the dispatcher's one-token
// lookahead: it reports whether letting a node claim the token at av's
// cursor would leave fewer tokens afterward than argsSt still needs to
// satisfy its remaining required slots.
func wouldStarveRequiredArgs(av *argv, argsSt *argsState) bool {
	need := argsSt.requiredRemaining()
	if need == 0 {
		return false
	}

	avail := len(av.tokens) - av.cursor - 1

	return avail < need
}

// matchChildArgs drives a node's own Args schema to completion against
// the tokens immediately following that node's name — it does not
// interleave with sibling nodes: the node's own Args are matched
// exactly as a nested Args scope.
func (a *Alconna) matchChildArgs(av *argv, args *Args, reserved map[string]bool) (Bindings, *Error) {
	st := newArgsState(args)

	for {
		claimed, err := st.step(av, reserved)
		if err != nil {
			return nil, err
		}

		if !claimed {
			break
		}
	}

	return st.finalize()
}

// foldValue picks the representative value an Option/Subcommand's
// Action folds across repeated matches: the single bound value when
// there is exactly one Arg slot, the whole Bindings map otherwise, and a
// bare presence marker when there are none.
func foldValue(bindings Bindings) any {
	switch len(bindings) {
	case 0:
		return true
	case 1:
		for _, v := range bindings {
			return v
		}

		return true
	default:
		return bindings
	}
}

func buildResultMaps(opts []*Option, subs []*Subcommand, accum map[node]*nodeAccum, order []node) (*orderedmap.OrderedMap, *orderedmap.OrderedMap) {
	optionsMap := orderedmap.New()
	subsMap := orderedmap.New()

	emitted := map[node]bool{}

	for _, n := range order {
		acc := accum[n]

		switch v := n.(type) {
		case *Option:
			optionsMap.Set(v.Name, &OptionResult{Value: acc.value, Args: acc.args})
		case *Subcommand:
			subsMap.Set(v.Name, subcommandResultFrom(v, acc))
		}

		emitted[n] = true
	}

	for _, o := range opts {
		if emitted[o] {
			continue
		}

		val := o.Default
		if val == nil {
			val = o.Act.zero()
		}

		optionsMap.Set(o.Name, &OptionResult{Value: val, Args: Bindings{}})
	}

	for _, s := range subs {
		if emitted[s] {
			continue
		}

		val := s.Default
		if val == nil {
			val = s.Act.zero()
		}

		res := newSubcommandResult()
		res.Value = val
		subsMap.Set(s.Name, res)
	}

	return optionsMap, subsMap
}

func subcommandResultFrom(s *Subcommand, acc *nodeAccum) *SubcommandResult {
	res := newSubcommandResult()
	res.Value = acc.value

	if acc.sub != nil {
		res.Args = acc.sub.mainArgs
		res.Options = acc.sub.options
		res.Subcommands = acc.sub.subcommands
	}

	if res.Args == nil {
		res.Args = Bindings{}
	}

	return res
}

func extrasToBindings(extra []any) Bindings {
	out := Bindings{}

	for i, v := range extra {
		out[strings.Join([]string{"$extra", itoaFast(i)}, "_")] = v
	}

	return out
}

func itoaFast(n int) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte

	i := len(buf)
	neg := n < 0

	if neg {
		n = -n
	}

	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	if neg {
		i--
		buf[i] = '-'
	}

	return string(buf[i:])
}

// flattenBindings merges MainArgs with every matched Option/Subcommand's
// own Args into one flat map, the shape the Executor contract expects:
// invoked with the flattened arg bindings.
func flattenBindings(r *Arparma) Bindings {
	out := Bindings{}

	for k, v := range r.MainArgs {
		out[k] = v
	}

	for _, key := range r.Options.Keys() {
		raw, _ := r.Options.Get(key)
		opt := raw.(*OptionResult)

		for k, v := range opt.Args {
			out[k] = v
		}
	}

	for _, key := range r.Subcommands.Keys() {
		raw, _ := r.Subcommands.Get(key)
		sub := raw.(*SubcommandResult)

		for k, v := range sub.Args {
			out[k] = v
		}
	}

	return out
}
