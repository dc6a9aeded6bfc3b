package alconna

// Option is a leaf node of the grammar tree.
type Option struct {
	Name    string
	Aliases []string

	Sentence *Sentence
	Args     *Args

	Act      Action
	Priority int

	// Compact means the option's first Arg may abut the option name
	// with no separator (e.g. `-f1` == `-f 1`).
	Compact bool

	// Default populates the OptionResult.Value when the Option never
	// appears in the input at all.
	Default any

	// Hidden omits the option from generated help text.
	Hidden bool

	dest string // set by the parent Subcommand/Alconna on attach
}

// NewOption builds an Option named name (its first long/short form);
// additional Aliases may be added with WithAliases.
func NewOption(name string) *Option {
	return &Option{Name: name, Act: Store()}
}

// WithAliases adds alternative names this Option also matches under.
func (o *Option) WithAliases(aliases ...string) *Option {
	o.Aliases = append(o.Aliases, aliases...)
	return o
}

// WithSentence attaches a required literal prefix.
func (o *Option) WithSentence(words ...string) *Option {
	o.Sentence = NewSentence(words...)
	return o
}

// WithArgs attaches the Option's own Args schema.
func (o *Option) WithArgs(args *Args) *Option {
	o.Args = args
	return o
}

// WithAction overrides the default Store() action.
func (o *Option) WithAction(act Action) *Option {
	o.Act = act
	return o
}

// WithPriority sets the tie-break priority used by the dispatcher:
// among same-prefix candidates, the higher priority wins.
func (o *Option) WithPriority(p int) *Option {
	o.Priority = p
	return o
}

// WithCompact marks the option as allowing name+value concatenation.
func (o *Option) WithCompact() *Option {
	o.Compact = true
	return o
}

// WithDefault sets the value reported when the Option is absent from
// the input entirely.
func (o *Option) WithDefault(v any) *Option {
	o.Default = v
	return o
}

// AsHidden hides the option from generated help text.
func (o *Option) AsHidden() *Option {
	o.Hidden = true
	return o
}

func (o *Option) names() []string     { return append([]string{o.Name}, o.Aliases...) }
func (o *Option) sentence() *Sentence { return o.Sentence }
func (o *Option) priority() int       { return o.Priority }
func (o *Option) destPath() string    { return o.dest }

// allowsRepeat reports whether this Option may legally match more than
// once in a single scope: only append/count actions may.
func (o *Option) allowsRepeat() bool {
	return o.Act.Kind == ActionAppend || o.Act.Kind == ActionCount
}
