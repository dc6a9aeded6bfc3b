package alconna

import "github.com/goforj/godump"

// Dump renders a tree view of the full result — head match, bound main
// args, every option/subcommand sub-result, and the error record, if
// any — using godump.DumpStr the way `mmp-vice` uses it for ad-hoc
// struct inspection (sim/spawn.go, stars/cmdcustom.go). Useful for
// debugging a failed or surprising match without hand-rolling a
// pretty-printer.
func (r *Arparma) Dump() string {
	return godump.DumpStr(dumpView{
		HeadMatch: r.HeadMatch,
		Matched:   r.Matched,
		MainArgs:  r.MainArgs,
		Options:   optionsDumpView(r.Options),
		Subs:      subcommandsDumpView(r.Subcommands),
		OtherArgs: r.OtherArgs,
		ErrorInfo: r.ErrorInfo,
	})
}

// dumpView flattens Arparma's orderedmap fields into plain Go maps:
// godump walks exported struct fields via reflection and has no notion
// of orderedmap.OrderedMap's internal representation.
type dumpView struct {
	HeadMatch *HeadResult
	Matched   bool
	MainArgs  Bindings
	Options   map[string]*OptionResult
	Subs      map[string]*SubcommandResult
	OtherArgs Bindings
	ErrorInfo *Error
}

func optionsDumpView(m interface {
	Keys() []string
	Get(string) (any, bool)
}) map[string]*OptionResult {
	out := map[string]*OptionResult{}

	for _, k := range m.Keys() {
		if v, ok := m.Get(k); ok {
			out[k] = v.(*OptionResult)
		}
	}

	return out
}

func subcommandsDumpView(m interface {
	Keys() []string
	Get(string) (any, bool)
}) map[string]*SubcommandResult {
	out := map[string]*SubcommandResult{}

	for _, k := range m.Keys() {
		if v, ok := m.Get(k); ok {
			out[k] = v.(*SubcommandResult)
		}
	}

	return out
}
