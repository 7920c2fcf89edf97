// Package mysql supplies the MySQL Escaper and DialectOps for
// pkg/cydb's Writer. MariaDB reuses this escaper unchanged; see
// pkg/cydb/dialect/mariadb.
package mysql

import (
	"encoding/hex"
	"strings"

	"github.com/cydbgo/cydb/pkg/cydb"
)

// Escaper implements cydb.Escaper for MySQL: backtick-quoted
// identifiers and "?" ordinal placeholders.
type Escaper struct{}

func (Escaper) EscapeIdentifier(name string) string {
	if name == "*" {
		return "*"
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (e Escaper) EscapeIdentifierList(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = e.EscapeIdentifier(n)
	}
	return strings.Join(out, ", ")
}

func (Escaper) EscapeLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "'", `\'`)
	return "'" + r.Replace(s) + "'"
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
	return "x'" + hex.EncodeToString(b) + "'"
}

func (Escaper) WritePlaceholder(i int) string { return "?" }

func (Escaper) UnescapePlaceholderChar() string { return "?" }

func (Escaper) EscapeSequences() []cydb.EscapeSequence {
	return []cydb.EscapeSequence{
		{Open: `'`, Close: `'`},
		{Open: `"`, Close: `"`},
		{Open: "`", Close: "`"},
	}
}
