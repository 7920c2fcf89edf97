// Package postgres supplies the PostgreSQL Escaper and DialectOps for
// pkg/cydb's Writer.
package postgres

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cydbgo/cydb/pkg/cydb"
)

// Escaper implements cydb.Escaper for PostgreSQL: double-quoted
// identifiers, numbered "$n" placeholders, and dollar-quoted-string
// aware raw-template scanning.
type Escaper struct{}

func (Escaper) EscapeIdentifier(name string) string {
	if name == "*" {
		return "*"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (e Escaper) EscapeIdentifierList(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = e.EscapeIdentifier(n)
	}
	return strings.Join(out, ", ")
}

func (Escaper) EscapeLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (Escaper) EscapeLike(s string, reserved string) string {
	chars := reserved
	if chars == "" {
		chars = `\%_`
	}
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(chars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (Escaper) EscapeBlob(b []byte) string {
	return "'\\x" + hex.EncodeToString(b) + "'"
}

func (Escaper) WritePlaceholder(i int) string {
	return "$" + strconv.Itoa(i+1)
}

func (Escaper) UnescapePlaceholderChar() string { return "?" }

func (Escaper) EscapeSequences() []cydb.EscapeSequence {
	return []cydb.EscapeSequence{
		{Open: `(\$[A-Za-z_][A-Za-z0-9_]*\$|\$\$)`, Pattern: true},
		{Open: `'`, Close: `'`},
		{Open: `"`, Close: `"`},
	}
}
