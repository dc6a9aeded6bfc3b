// Package alconna implements a command-schema matcher for CLI and
// message-chain inputs: a tree of headers, arguments, options and nested
// subcommands is matched against a token stream (a string to be tokenized,
// or a heterogeneous sequence already containing strings and opaque
// non-text values), producing a result tree that records what matched,
// which arguments were bound to which typed values, and which error (if
// any) terminated the match.
package alconna
