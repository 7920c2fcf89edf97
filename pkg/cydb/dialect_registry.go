package cydb

import "sync"

var (
	dialectMu  sync.RWMutex
	dialectReg = map[string]func() *Writer{}
)

// RegisterDialect registers a factory for a named dialect. Dialect
// packages call this from an init() func, the same pattern the teacher
// uses to register its DatabaseTransformer implementations.
func RegisterDialect(name string, factory func() *Writer) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	dialectReg[name] = factory
}

// NewWriterFor returns a fresh Writer for the named dialect. Importing a
// dialect subpackage for its registration side effect is required
// before calling this (blank-import it, e.g.
// `_ "github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"`).
func NewWriterFor(name string) (*Writer, error) {
	dialectMu.RLock()
	factory, ok := dialectReg[name]
	dialectMu.RUnlock()
	if !ok {
		return nil, newBuilderError("NewWriterFor", "unregistered dialect %q", name)
	}
	return factory(), nil
}

// Dialects lists every currently registered dialect name.
func Dialects() []string {
	dialectMu.RLock()
	defer dialectMu.RUnlock()
	out := make([]string, 0, len(dialectReg))
	for k := range dialectReg {
		out = append(out, k)
	}
	return out
}
