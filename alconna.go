package alconna

import "github.com/rs/zerolog"

// DisableBuiltin names one of the three built-in options a command may
// suppress.
type DisableBuiltin uint8

const (
	// DisableHelp suppresses the built-in --help|-h option.
	DisableHelp DisableBuiltin = iota
	// DisableShortcut suppresses the built-in --shortcut option.
	DisableShortcut
	// DisableCompletion suppresses the built-in --comp|? option.
	DisableCompletion
)

// Meta carries the per-command configuration knobs.
type Meta struct {
	Separators      map[rune]bool
	FuzzyMatch      bool
	Compact         bool
	Strict          bool
	DisableBuiltins map[DisableBuiltin]bool
	Namespace       string
	RaiseException  bool

	// CaseInsensitive controls name-normalization during matching.
	CaseInsensitive bool

	// Logger receives structured debug events for each analyser phase
	// transition when non-nil. The zero value is a disabled logger:
	// zero-cost when unset.
	Logger *zerolog.Logger

	// Preprocessors transforms an opaque, non-string ingested token
	// before matching begins, keyed by the token's dynamic type.
	Preprocessors map[string]Preprocessor

	// FilterOut drops an opaque, non-string ingested token entirely
	// during ingest, keyed by the token's dynamic type.
	FilterOut map[string]bool
}

func defaultMeta() Meta {
	return Meta{
		Separators:      defaultSeparators(),
		DisableBuiltins: map[DisableBuiltin]bool{},
	}
}

// MetaOption configures a Meta via the functional-options idiom.
type MetaOption func(*Meta)

// WithSeparators overrides the token boundary characters for string
// input.
func WithSeparators(seps ...rune) MetaOption {
	return func(m *Meta) {
		set := make(map[rune]bool, len(seps))
		for _, r := range seps {
			set[r] = true
		}

		m.Separators = set
	}
}

// WithFuzzyMatch enables edit-distance suggestions on header mismatch.
func WithFuzzyMatch() MetaOption { return func(m *Meta) { m.FuzzyMatch = true } }

// WithCompact sets Meta.Compact. The matcher does not read it: compact
// option-name/first-arg concatenation is enabled only per node, via
// Option.WithCompact and Subcommand.WithCompact.
func WithCompact() MetaOption { return func(m *Meta) { m.Compact = true } }

// WithStrict rejects extra tokens instead of binding them to $extra.
func WithStrict() MetaOption { return func(m *Meta) { m.Strict = true } }

// WithDisabledBuiltin suppresses one of the built-in options.
func WithDisabledBuiltin(b DisableBuiltin) MetaOption {
	return func(m *Meta) { m.DisableBuiltins[b] = true }
}

// WithNamespace tags the command for registry grouping.
func WithNamespace(ns string) MetaOption { return func(m *Meta) { m.Namespace = ns } }

// WithRaiseException makes Parse also return the unmatched Arparma's
// ErrorInfo as its error on fatal failures.
func WithRaiseException() MetaOption { return func(m *Meta) { m.RaiseException = true } }

// WithCaseInsensitiveNames normalizes node-name comparisons to
// lowercase.
func WithCaseInsensitiveNames() MetaOption { return func(m *Meta) { m.CaseInsensitive = true } }

// WithLogger attaches a structured logger for phase-transition events.
func WithLogger(logger zerolog.Logger) MetaOption {
	return func(m *Meta) { m.Logger = &logger }
}

// WithPreprocessor registers fn to transform every ingested token whose
// dynamic type matches sample's, before matching begins. sample is only
// used to derive the type key; its value is discarded.
func WithPreprocessor(sample any, fn Preprocessor) MetaOption {
	return func(m *Meta) {
		if m.Preprocessors == nil {
			m.Preprocessors = map[string]Preprocessor{}
		}

		m.Preprocessors[reflectTypeName(sample)] = fn
	}
}

// WithFilterOut drops every ingested token whose dynamic type matches
// sample's entirely, before matching begins.
func WithFilterOut(sample any) MetaOption {
	return func(m *Meta) {
		if m.FilterOut == nil {
			m.FilterOut = map[string]bool{}
		}

		m.FilterOut[reflectTypeName(sample)] = true
	}
}

// Alconna is the grammar root: Header ⊕ top-level Args ⊕ collection of
// child Options/Subcommands ⊕ Meta.
type Alconna struct {
	Header *Header
	Args   *Args
	Meta   Meta

	options     []*Option
	subcommands []*Subcommand

	executors    []Executor
	behaviorList []Behavior

	id string // identity used by the Registry/cache
}

// New builds an Alconna root from a header (built with NewHeader, or a
// bare literal string promoted to one), children (any mix of *Option,
// *Subcommand and one *Args), and functional Meta options.
func New(header any, children []any, opts ...MetaOption) *Alconna {
	var h *Header

	switch v := header.(type) {
	case *Header:
		h = v
	case string:
		h = NewHeader(v)
	default:
		panic("alconna: header must be *Header or string")
	}

	a := &Alconna{Header: h, Meta: defaultMeta()}

	for _, c := range children {
		switch v := c.(type) {
		case *Option:
			a.options = append(a.options, v)
		case *Subcommand:
			a.subcommands = append(a.subcommands, v)
		case *Args:
			a.Args = v
		}
	}

	for _, o := range opts {
		o(&a.Meta)
	}

	a.id = identityOf(h, a.Meta.Namespace)
	a.assignDestPaths()

	return a
}

func identityOf(h *Header, ns string) string {
	name := h.Name
	if name == "" && h.NameRE != nil {
		name = h.NameRE.String()
	}

	if ns == "" {
		return name
	}

	return ns + "::" + name
}

// assignDestPaths computes the dotted dest_path of every node reachable
// from the root and records it on the node (destPath). Arparma's maps
// key results by node Name within each scope, not by dest_path.
func (a *Alconna) assignDestPaths() {
	for _, o := range a.options {
		o.dest = o.Name
	}

	for _, s := range a.subcommands {
		assignSubcommandPaths(s, s.Name)
	}
}

func assignSubcommandPaths(s *Subcommand, prefix string) {
	s.dest = prefix

	for _, o := range s.options {
		o.dest = prefix + "." + o.Name
	}

	for _, child := range s.subcommands {
		assignSubcommandPaths(child, prefix+"."+child.Name)
	}
}

// Option registers an additional top-level child Option.
func (a *Alconna) Option(o *Option) *Alconna {
	a.options = append(a.options, o)
	o.dest = o.Name

	return a
}

// Subcommand registers an additional top-level child Subcommand.
func (a *Alconna) Subcommand(s *Subcommand) *Alconna {
	a.subcommands = append(a.subcommands, s)
	assignSubcommandPaths(s, s.Name)

	return a
}

// Options returns the top-level child Options.
func (a *Alconna) Options() []*Option { return a.options }

// Subcommands returns the top-level child Subcommands.
func (a *Alconna) Subcommands() []*Subcommand { return a.subcommands }

// Bind attaches a sync or async Executor, invoked after a successful,
// matched parse (the analyser's final dispatch phase).
func (a *Alconna) Bind(e Executor) *Alconna {
	a.executors = append(a.executors, e)
	return a
}

// WithBehavior attaches a Behavior, run in registration order against
// every matched result right after the body match completes and before
// executors run. A Behavior may still flip the result to unmatched
// (see Exclusion, SetDefault).
func (a *Alconna) WithBehavior(b Behavior) *Alconna {
	a.behaviorList = append(a.behaviorList, b)
	return a
}

// ID is the stable identity used for cache keys and registry lookups.
func (a *Alconna) ID() string { return a.id }
