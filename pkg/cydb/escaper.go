package cydb

// EscapeSequence names a pair of string delimiters (e.g. `'…'`, `"…"`,
// `$tag$…$tag$`) whose interior the raw placeholder parser must skip over:
// a `?` found inside one of these spans is SQL text, not a bind site.
type EscapeSequence struct {
	// Open is the literal opening delimiter, or a regexp fragment when
	// Pattern is true (used for PostgreSQL's dollar-quoting, whose tag
	// varies call to call).
	Open string
	// Close is the literal closing delimiter matching Open. Ignored
	// when Pattern is true; the parser reuses the captured Open text.
	Close string
	// Pattern marks Open as a regexp fragment with one capture group
	// rather than a literal string.
	Pattern bool
}

// Escaper supplies the dialect-specific string-level primitives the
// Writer relies on for every piece of text it cannot express through the
// argument bag: quoting, LIKE escaping, blob encoding and placeholder
// emission. It is the only source of truth for quoting; the Writer never
// builds a quoted token itself.
type Escaper interface {
	// EscapeIdentifier quotes a single identifier (table, column, alias).
	EscapeIdentifier(name string) string
	// EscapeIdentifierList quotes and comma-joins a list of identifiers.
	EscapeIdentifierList(names []string) string
	// EscapeLiteral quotes a string literal for direct embedding in SQL
	// text. The Writer does not call it: UPDATE SET values, like every
	// other value, are Expressions, and a SET clause has no way to take
	// a raw string to be embedded as a literal.
	EscapeLiteral(s string) string
	// EscapeLike neutralizes LIKE/SIMILAR TO wildcard characters in s.
	// reserved, when non-empty, overrides the dialect's default
	// reserved-character set; dialects may ignore it.
	EscapeLike(s string, reserved string) string
	// EscapeBlob renders a byte slice as a dialect binary literal.
	EscapeBlob(b []byte) string
	// WritePlaceholder returns the placeholder token for the 0-based
	// argument index i (e.g. "?", "$1", ":p1").
	WritePlaceholder(i int) string
	// UnescapePlaceholderChar is what a `??` token in a Raw template
	// becomes once parsed — ordinarily "?", but drivers that perform
	// their own substitution pass may want the literal "??" preserved.
	UnescapePlaceholderChar() string
	// EscapeSequences lists the string-delimiter pairs the raw
	// placeholder parser must treat as opaque.
	EscapeSequences() []EscapeSequence
}
