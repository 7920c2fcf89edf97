package cydb

import (
	"regexp"
	"strings"
)

// rawTokenKind discriminates the pieces a raw template is split into.
type rawTokenKind int

const (
	rawLiteral rawTokenKind = iota
	rawPlaceholder
)

// rawToken is one piece of a parsed raw template: either a literal
// chunk of SQL text (copied through verbatim) or a placeholder, whose
// Cast holds the "::TYPE" suffix text when the template used the
// "?::TYPE" form, empty otherwise.
type rawToken struct {
	Kind rawTokenKind
	Text string
	Cast string
}

var placeholderScan = regexp.MustCompile(`\?\?|\?(::[A-Za-z][A-Za-z0-9_]*(\[\])?)?`)

// parseRawTemplate splits template into literal and placeholder tokens,
// skipping over any region that matches one of escaper's escape
// sequences (e.g. dialect-specific quoting) so that a literal "?"
// embedded in a quoted string or quoted identifier is never mistaken for
// a bind placeholder. SQL comments are not skipped. "??" always denotes one literal "?" regardless of
// escaper, resolved to escaper.UnescapePlaceholderChar() at format time.
func parseRawTemplate(escaper Escaper, template string) []rawToken {
	seqs := escaper.EscapeSequences()
	var tokens []rawToken
	var lit strings.Builder
	i := 0
	n := len(template)

	flushLiteral := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, rawToken{Kind: rawLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for i < n {
		if end, ok := matchEscapeSequence(template, i, seqs); ok {
			lit.WriteString(template[i:end])
			i = end
			continue
		}
		if template[i] != '?' {
			lit.WriteByte(template[i])
			i++
			continue
		}
		loc := placeholderScan.FindStringIndex(template[i:])
		if loc == nil || loc[0] != 0 {
			lit.WriteByte(template[i])
			i++
			continue
		}
		match := template[i : i+loc[1]]
		if match == "??" {
			flushLiteral()
			tokens = append(tokens, rawToken{Kind: rawLiteral, Text: escaper.UnescapePlaceholderChar()})
			i += len(match)
			continue
		}
		flushLiteral()
		cast := ""
		if len(match) > 1 {
			cast = match[1:]
		}
		tokens = append(tokens, rawToken{Kind: rawPlaceholder, Cast: cast})
		i += len(match)
	}
	flushLiteral()
	return tokens
}

// matchEscapeSequence reports whether an escape sequence from seqs opens
// at position i in s, returning the index just past its matching close.
// For Pattern sequences (dollar-quoting: an opening token captured by a
// regex group, closed by the same literal token) the capture is
// re-matched literally at the close. A sequence with no matching close
// before the end of the string extends to end of string, so a ? inside
// an unterminated quoted region is never split mid-token.
func matchEscapeSequence(s string, i int, seqs []EscapeSequence) (int, bool) {
	for _, seq := range seqs {
		if seq.Pattern {
			re, err := regexp.Compile("^" + seq.Open)
			if err != nil {
				continue
			}
			loc := re.FindStringSubmatchIndex(s[i:])
			if loc == nil {
				continue
			}
			open := s[i+loc[0] : i+loc[1]]
			var closeTok string
			if len(loc) >= 4 && loc[2] >= 0 {
				closeTok = s[i+loc[2] : i+loc[3]]
			} else {
				closeTok = open
			}
			rest := i + loc[1]
			idx := strings.Index(s[rest:], closeTok)
			if idx < 0 {
				return len(s), true
			}
			return rest + idx + len(closeTok), true
		}
		if strings.HasPrefix(s[i:], seq.Open) {
			rest := i + len(seq.Open)
			idx := strings.Index(s[rest:], seq.Close)
			if idx < 0 {
				return len(s), true
			}
			return rest + idx + len(seq.Close), true
		}
	}
	return 0, false
}
