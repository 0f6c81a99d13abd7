// Package repair holds the text-level normalisation and repair passes the
// parsing strategies share: a preprocessor that never fails and a counting
// JSON fixer. Both operate on raw text before any JSON decoding.
package repair

import "strings"

// MaxDepth is the structural safety cap on bracket nesting. Input whose depth
// exceeds it is truncated at the offending opener and balanced with
// synthetic closers.
const MaxDepth = 50

// Info reports preprocessing side effects the driver cares about.
type Info struct {
	// Truncated is set when the depth cap fired.
	Truncated bool
}

// Preprocess normalises raw text. It never fails; ambiguity resolves
// conservatively by skipping the transform. Idempotent.
func Preprocess(s string) string {
	out, _ := PreprocessWithInfo(s)
	return out
}

// PreprocessWithInfo is Preprocess plus the side-effect report.
func PreprocessWithInfo(s string) (string, Info) {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = stripZeroWidth(s)
	s = reduceBackslashRuns(s)
	s, truncated := capDepth(s, MaxDepth)
	return s, Info{Truncated: truncated}
}

func stripZeroWidth(s string) string {
	if !strings.ContainsAny(s, "\u200B\u200C\u200D\uFEFF") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func recognizedEscape(r rune) bool {
	switch r {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

// reduceBackslashRuns repairs double-escaping from naive re-emission: inside
// a string literal, a run of two or more backslashes whose follower is not a
// recognised escape reduces to a single backslash. Reducing to the fixed
// point (rather than halving once) keeps the pass idempotent.
func reduceBackslashRuns(s string) string {
	if !strings.Contains(s, `\\`) {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	inStr := false
	i := 0
	for i < len(rs) {
		ch := rs[i]
		if ch == '\\' {
			j := i
			for j < len(rs) && rs[j] == '\\' {
				j++
			}
			n := j - i
			emitted := n
			if inStr && n >= 2 && (j >= len(rs) || !recognizedEscape(rs[j])) {
				emitted = 1
			}
			for k := 0; k < emitted; k++ {
				b.WriteRune('\\')
			}
			// An odd run escapes its follower; a quote escaped this way must
			// not toggle the string state.
			if inStr && emitted%2 == 1 && j < len(rs) && rs[j] == '"' {
				b.WriteRune('"')
				j++
			}
			i = j
			continue
		}
		if ch == '"' {
			inStr = !inStr
		}
		b.WriteRune(ch)
		i++
	}
	return b.String()
}

func closerFor(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}

// capDepth truncates the input at the point nesting first exceeds max and
// appends the closers required to balance what is already open.
func capDepth(s string, max int) (string, bool) {
	var stack []byte
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inStr {
			if esc {
				esc = false
				continue
			}
			switch ch {
			case '\\':
				esc = true
			case '"':
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{', '[':
			if len(stack)+1 > max {
				var b strings.Builder
				b.WriteString(s[:i])
				for j := len(stack) - 1; j >= 0; j-- {
					b.WriteByte(closerFor(stack[j]))
				}
				return b.String(), true
			}
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return s, false
}
