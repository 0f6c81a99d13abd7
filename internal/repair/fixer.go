package repair

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Fix applies the deterministic repair passes in order and reports how many
// individual fixes were made. The result is not guaranteed to be valid JSON;
// callers decide by parsing it.
func Fix(s string) (string, int) {
	total := 0
	for _, pass := range []func(string) (string, int){
		unwrapDoubleEncoded,
		normalizeSmartQuotes,
		stripComments,
		requoteStrings,
		quoteUnquotedKeys,
		convertHexNumbers,
		escapeRawNewlines,
		elideFunctionValues,
		insertMissingCommas,
		removeTrailingCommas,
		closeUnclosed,
	} {
		var n int
		s, n = pass(s)
		total += n
	}
	return s, total
}

// unwrapDoubleEncoded unwraps a whole input that is itself a JSON-encoded
// JSON string, once: "{\"a\":1}" becomes {"a":1}.
func unwrapDoubleEncoded(s string) (string, int) {
	t := strings.TrimSpace(s)
	if len(t) < 4 {
		return s, 0
	}
	opens := strings.HasPrefix(t, `"{`) || strings.HasPrefix(t, `"[`)
	closes := strings.HasSuffix(t, `}"`) || strings.HasSuffix(t, `]"`)
	if !opens || !closes {
		return s, 0
	}
	var inner string
	if err := json.Unmarshal([]byte(t), &inner); err != nil {
		return s, 0
	}
	if !json.Valid([]byte(inner)) {
		return s, 0
	}
	return inner, 1
}

// normalizeSmartQuotes maps Unicode smart quotes to their ASCII forms.
func normalizeSmartQuotes(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '“', '”', '„':
			b.WriteByte('"')
			n++
		case '‘', '’', '‚':
			b.WriteByte('\'')
			n++
		default:
			b.WriteRune(r)
		}
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// stripComments removes // line comments and /* block */ comments outside
// string literals.
func stripComments(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inStr = true
			b.WriteByte(ch)
			continue
		}
		if ch == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				j := strings.IndexByte(s[i:], '\n')
				if j < 0 {
					i = len(s)
				} else {
					i += j - 1
				}
				n++
				continue
			case '*':
				j := strings.Index(s[i+2:], "*/")
				if j < 0 {
					i = len(s)
				} else {
					i += 2 + j + 1
				}
				n++
				continue
			}
		}
		b.WriteByte(ch)
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// requoteStrings re-quotes single-quoted and backtick-delimited strings with
// double quotes, escaping as needed. A quote character only opens a string
// when it sits at a value or key position; apostrophes in prose are left
// alone.
func requoteStrings(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	lastSig := byte(0)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inStr = true
			lastSig = ch
			b.WriteByte(ch)
			continue
		}
		if (ch == '\'' || ch == '`') && delimiterPosition(lastSig) {
			end := findQuoteEnd(s, i+1, ch)
			if end >= 0 {
				b.WriteByte('"')
				writeRequoted(&b, s[i+1:end], ch)
				b.WriteByte('"')
				n++
				lastSig = '"'
				i = end
				continue
			}
		}
		if !isSpace(ch) {
			lastSig = ch
		}
		b.WriteByte(ch)
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

func delimiterPosition(lastSig byte) bool {
	switch lastSig {
	case 0, ':', ',', '[', '{', '(':
		return true
	}
	return false
}

func findQuoteEnd(s string, from int, quote byte) int {
	esc := false
	for i := from; i < len(s); i++ {
		switch {
		case esc:
			esc = false
		case s[i] == '\\':
			esc = true
		case s[i] == quote:
			return i
		case s[i] == '\n' && quote == '\'':
			return -1
		}
	}
	return -1
}

func writeRequoted(b *strings.Builder, body string, quote byte) {
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '\\' && i+1 < len(body) && body[i+1] == quote:
			b.WriteByte(quote)
			i++
		case ch == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(ch)
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// quoteUnquotedKeys quotes bare object keys: {name: 1} becomes {"name": 1}.
func quoteUnquotedKeys(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s) + 16)
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inStr = true
			b.WriteByte(ch)
			continue
		}
		b.WriteByte(ch)
		if ch != '{' && ch != ',' {
			continue
		}
		j := i + 1
		for j < len(s) && isSpace(s[j]) {
			b.WriteByte(s[j])
			j++
		}
		if j >= len(s) || !isIdentStart(s[j]) {
			i = j - 1
			continue
		}
		k := j
		for k < len(s) && isIdentPart(s[k]) {
			k++
		}
		m := k
		for m < len(s) && isSpace(s[m]) {
			m++
		}
		if m < len(s) && s[m] == ':' {
			b.WriteByte('"')
			b.WriteString(s[j:k])
			b.WriteByte('"')
			n++
			i = k - 1
		} else {
			i = j - 1
		}
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// convertHexNumbers rewrites hex integer literals to decimal.
func convertHexNumbers(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inStr = true
			b.WriteByte(ch)
			continue
		}
		if ch == '0' && i+2 < len(s) && (s[i+1] == 'x' || s[i+1] == 'X') && isHexDigit(s[i+2]) {
			prevOK := i == 0 || !isIdentPart(s[i-1])
			k := i + 2
			for k < len(s) && isHexDigit(s[k]) {
				k++
			}
			if prevOK {
				if v, err := strconv.ParseInt(s[i+2:k], 16, 64); err == nil {
					b.WriteString(strconv.FormatInt(v, 10))
					n++
					i = k - 1
					continue
				}
			}
		}
		b.WriteByte(ch)
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// escapeRawNewlines escapes raw newlines inside string literals as \n.
func escapeRawNewlines(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
				b.WriteByte(ch)
			case ch == '\\':
				esc = true
				b.WriteByte(ch)
			case ch == '"':
				inStr = false
				b.WriteByte(ch)
			case ch == '\n':
				b.WriteString(`\n`)
				n++
			case ch == '\r':
				if i+1 < len(s) && s[i+1] == '\n' {
					continue
				}
				b.WriteString(`\n`)
				n++
			default:
				b.WriteByte(ch)
			}
			continue
		}
		if ch == '"' {
			inStr = true
		}
		b.WriteByte(ch)
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// elideFunctionValues removes properties whose value is a JavaScript function
// definition: key: function(...) {...} disappears along with its separator.
func elideFunctionValues(s string) (string, int) {
	n := 0
	for {
		start, end, ok := findFunctionProperty(s)
		if !ok {
			break
		}
		s = s[:start] + s[end:]
		n++
	}
	return s, n
}

func findFunctionProperty(s string) (int, int, bool) {
	inStr, esc := false, false
	for i := 0; i+8 <= len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			continue
		}
		if ch == '"' {
			inStr = true
			continue
		}
		if s[i:i+8] != "function" {
			continue
		}
		if i > 0 && isIdentPart(s[i-1]) {
			continue
		}
		body := i + 8
		for body < len(s) && isSpace(s[body]) {
			body++
		}
		// optional function name
		for body < len(s) && isIdentPart(s[body]) {
			body++
		}
		for body < len(s) && isSpace(s[body]) {
			body++
		}
		if body >= len(s) || s[body] != '(' {
			continue
		}
		afterParen := matchBalanced(s, body, '(', ')')
		if afterParen < 0 {
			continue
		}
		braceAt := afterParen
		for braceAt < len(s) && isSpace(s[braceAt]) {
			braceAt++
		}
		if braceAt >= len(s) || s[braceAt] != '{' {
			continue
		}
		end := matchBalanced(s, braceAt, '{', '}')
		if end < 0 {
			continue
		}
		start, ok := propertyStart(s, i)
		if !ok {
			continue
		}
		// absorb one adjoining separator comma
		if j := skipSpaceForward(s, end); j < len(s) && s[j] == ',' {
			end = j + 1
		} else if k := skipSpaceBackward(s, start); k >= 0 && s[k] == ',' {
			start = k
		}
		return start, end, true
	}
	return 0, 0, false
}

// matchBalanced returns the index just past the closer matching the opener at
// from, or -1.
func matchBalanced(s string, from int, open, close byte) int {
	depth := 0
	inStr, esc := false, false
	for i := from; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// propertyStart walks backwards from the function keyword over the colon and
// the key preceding it.
func propertyStart(s string, fnAt int) (int, bool) {
	i := skipSpaceBackward(s, fnAt)
	if i < 0 || s[i] != ':' {
		return 0, false
	}
	i = skipSpaceBackward(s, i)
	if i < 0 {
		return 0, false
	}
	if s[i] == '"' {
		for j := i - 1; j >= 0; j-- {
			if s[j] == '"' && (j == 0 || s[j-1] != '\\') {
				return j, true
			}
		}
		return 0, false
	}
	if isIdentPart(s[i]) {
		j := i
		for j > 0 && isIdentPart(s[j-1]) {
			j--
		}
		return j, true
	}
	return 0, false
}

func skipSpaceForward(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipSpaceBackward(s string, i int) int {
	i--
	for i >= 0 && isSpace(s[i]) {
		i--
	}
	return i
}

type fixFrame struct {
	object       bool
	expectingKey bool
	afterValue   bool
}

// insertMissingCommas inserts separator commas between adjacent values. A
// small container state machine decides when a new token begins while the
// previous value is still awaiting its separator.
func insertMissingCommas(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s) + 8)
	var stack []fixFrame
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			b.WriteByte(ch)
			continue
		}
		top := func() *fixFrame {
			if len(stack) == 0 {
				return nil
			}
			return &stack[len(stack)-1]
		}
		startsToken := ch == '"' || ch == '{' || ch == '[' || ch == '-' ||
			(ch >= '0' && ch <= '9') || isIdentStart(ch)
		if f := top(); f != nil && f.afterValue && startsToken {
			b.WriteByte(',')
			n++
			f.afterValue = false
			if f.object {
				f.expectingKey = true
			}
		}
		switch ch {
		case '"':
			inStr = true
			if f := top(); f != nil {
				if f.object && f.expectingKey {
					f.expectingKey = false
				} else {
					f.afterValue = true
				}
			}
			b.WriteByte(ch)
		case '{':
			stack = append(stack, fixFrame{object: true, expectingKey: true})
			b.WriteByte(ch)
		case '[':
			stack = append(stack, fixFrame{object: false})
			b.WriteByte(ch)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if f := top(); f != nil {
				f.afterValue = true
				f.expectingKey = false
			}
			b.WriteByte(ch)
		case ':':
			if f := top(); f != nil && f.object {
				f.afterValue = false
			}
			b.WriteByte(ch)
		case ',':
			if f := top(); f != nil {
				f.afterValue = false
				if f.object {
					f.expectingKey = true
				}
			}
			b.WriteByte(ch)
		default:
			if startsToken {
				// scalar value token; swallow it whole
				j := i
				for j < len(s) && (isIdentPart(s[j]) || s[j] == '.' || s[j] == '-' || s[j] == '+') {
					j++
				}
				b.WriteString(s[i:j])
				if f := top(); f != nil {
					// a bare ident before ':' is an unquoted key, not a value
					k := skipSpaceForward(s, j)
					if !(f.object && k < len(s) && s[k] == ':') {
						f.afterValue = true
					}
				}
				i = j - 1
				continue
			}
			b.WriteByte(ch)
		}
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// removeTrailingCommas drops commas that directly precede a closer.
func removeTrailingCommas(s string) (string, int) {
	n := 0
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inStr = true
			b.WriteByte(ch)
			continue
		}
		if ch == ',' {
			j := skipSpaceForward(s, i+1)
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				n++
				continue
			}
		}
		b.WriteByte(ch)
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// closeUnclosed balances the input: an unterminated string gets its closing
// quote and unclosed braces/brackets get synthetic closers.
func closeUnclosed(s string) (string, int) {
	var stack []byte
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
			} else if ch == '\\' {
				esc = true
			} else if ch == '"' {
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if !inStr && len(stack) == 0 {
		return s, 0
	}
	n := 0
	var b strings.Builder
	b.WriteString(s)
	if inStr {
		b.WriteByte('"')
		n++
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(closerFor(stack[i]))
		n++
	}
	return b.String(), n
}
