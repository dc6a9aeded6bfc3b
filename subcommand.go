package alconna

// Subcommand is an internal node of the grammar tree: everything an
// Option has, plus nested Options and Subcommands, recursive without
// depth bound.
type Subcommand struct {
	Name    string
	Aliases []string

	Sentence *Sentence
	Args     *Args

	Act      Action
	Priority int
	Compact  bool
	Default  any
	Hidden   bool

	options     []*Option
	subcommands []*Subcommand

	dest string
}

// NewSubcommand builds a Subcommand named name, with the given child
// Options/Subcommands (passed as a flat list; use *Option/*Subcommand
// values directly — Go's type system distinguishes them, so there is no
// ambiguity resolving children by type).
func NewSubcommand(name string, children ...any) *Subcommand {
	sc := &Subcommand{Name: name, Act: Store()}

	for _, c := range children {
		switch v := c.(type) {
		case *Option:
			sc.options = append(sc.options, v)
		case *Subcommand:
			sc.subcommands = append(sc.subcommands, v)
		case *Args:
			sc.Args = v
		}
	}

	return sc
}

// WithAliases adds alternative names.
func (s *Subcommand) WithAliases(aliases ...string) *Subcommand {
	s.Aliases = append(s.Aliases, aliases...)
	return s
}

// WithSentence attaches a required literal prefix.
func (s *Subcommand) WithSentence(words ...string) *Subcommand {
	s.Sentence = NewSentence(words...)
	return s
}

// WithArgs attaches the Subcommand's own Args schema.
func (s *Subcommand) WithArgs(args *Args) *Subcommand {
	s.Args = args
	return s
}

// WithAction overrides the default Store() action.
func (s *Subcommand) WithAction(act Action) *Subcommand {
	s.Act = act
	return s
}

// WithPriority sets the dispatcher tie-break priority.
func (s *Subcommand) WithPriority(p int) *Subcommand {
	s.Priority = p
	return s
}

// WithCompact marks the subcommand name as allowing value concatenation.
func (s *Subcommand) WithCompact() *Subcommand {
	s.Compact = true
	return s
}

// WithDefault sets the value reported when the Subcommand is absent.
func (s *Subcommand) WithDefault(v any) *Subcommand {
	s.Default = v
	return s
}

// AsHidden hides the subcommand from generated help text.
func (s *Subcommand) AsHidden() *Subcommand {
	s.Hidden = true
	return s
}

// Option registers an additional child Option.
func (s *Subcommand) Option(o *Option) *Subcommand {
	s.options = append(s.options, o)
	return s
}

// Subcommand registers an additional nested Subcommand.
func (s *Subcommand) Subcommand(child *Subcommand) *Subcommand {
	s.subcommands = append(s.subcommands, child)
	return s
}

// Options returns the child Options.
func (s *Subcommand) Options() []*Option { return s.options }

// Subcommands returns the nested Subcommands.
func (s *Subcommand) Subcommands() []*Subcommand { return s.subcommands }

func (s *Subcommand) names() []string     { return append([]string{s.Name}, s.Aliases...) }
func (s *Subcommand) sentence() *Sentence { return s.Sentence }
func (s *Subcommand) priority() int       { return s.Priority }
func (s *Subcommand) destPath() string    { return s.dest }

func (s *Subcommand) allowsRepeat() bool {
	return s.Act.Kind == ActionAppend || s.Act.Kind == ActionCount
}
