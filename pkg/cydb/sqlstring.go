package cydb

import "github.com/spaolacci/murmur3"

// QueryOptions carries caller-supplied metadata that rides alongside a
// prepared statement but never affects its rendering: a human name for
// logging/tracing, and whether the caller intends to reuse the prepared
// statement (which callers use to decide whether to key a driver-level
// statement cache off Identifier).
type QueryOptions struct {
	Name      string
	Cacheable bool
}

// SqlString is the output of Writer.prepare(): the rendered SQL text,
// the positional argument vector ready to hand to a database/sql
// driver, and a content hash usable as a statement-cache key. Identifier
// is computed lazily; two SqlStrings with identical Text always have
// identical Identifier values, never computed from the Args.
type SqlString struct {
	Text      string
	Arguments []any
	Options   QueryOptions

	identifier     uint64
	identifierSet  bool
}

// Identifier returns (and memoizes) a murmur3 hash of Text, suitable as
// a statement-cache key. It never includes Arguments, so two renders of
// the same template against different bound values share one
// Identifier.
func (s *SqlString) Identifier() uint64 {
	if !s.identifierSet {
		s.identifier = murmur3.Sum64([]byte(s.Text))
		s.identifierSet = true
	}
	return s.identifier
}
