package cydb

// BoundArg is one entry of an ArgumentBag: the native value as handed to
// Value(), plus the optional type tag that steers later conversion.
type BoundArg struct {
	Value any
	Type  string // empty when no type hint was supplied
}

// ArgumentBag is the append-only, ordered collection of values bound
// during one format pass. Index assignment happens at Append time and is
// immediately used to emit the dialect placeholder, so argument order in
// the bag always matches left-to-right depth-first formatting order.
type ArgumentBag struct {
	args []BoundArg
}

// NewArgumentBag returns an empty bag ready for one prepare() call.
func NewArgumentBag() *ArgumentBag {
	return &ArgumentBag{}
}

// Append records a bound value and returns the 0-based index assigned to
// it, which the caller uses to emit the dialect placeholder for this
// position.
func (b *ArgumentBag) Append(value any, typ string) int {
	b.args = append(b.args, BoundArg{Value: value, Type: typ})
	return len(b.args) - 1
}

// Len reports how many arguments have been bound so far.
func (b *ArgumentBag) Len() int { return len(b.args) }

// At returns the argument bound at index i.
func (b *ArgumentBag) At(i int) BoundArg { return b.args[i] }

// All returns the bag's contents in append order. The returned slice is
// a copy; mutating it does not affect the bag.
func (b *ArgumentBag) All() []BoundArg {
	out := make([]BoundArg, len(b.args))
	copy(out, b.args)
	return out
}

// WriterContext is the per-render scratch threaded through every
// formatting call: it carries the ArgumentBag being filled and a
// reference to the shared Converter used to resolve raw-placeholder
// arguments. It lives exactly for the duration of one prepare() call.
type WriterContext struct {
	Bag       *ArgumentBag
	Converter Converter
	dialect   Escaper
}

// NewWriterContext builds a fresh, empty context bound to the given
// escaper and converter.
func NewWriterContext(esc Escaper, conv Converter) *WriterContext {
	return &WriterContext{
		Bag:       NewArgumentBag(),
		Converter: conv,
		dialect:   esc,
	}
}

// bind appends value/typ to the bag and returns the placeholder token to
// emit at the call site, e.g. "?" or "$3".
func (c *WriterContext) bind(value any, typ string) string {
	idx := c.Bag.Append(value, typ)
	return c.dialect.WritePlaceholder(idx)
}
