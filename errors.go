package tryparse

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeNoInput reports empty or whitespace-only input.
	CodeNoInput = "no_input"
	// CodeNoCandidates reports that every strategy produced nothing.
	CodeNoCandidates = "no_candidates"
	// CodeCoercionFailed reports a shape or type mismatch between a candidate
	// and the target schema. Params carry "expected" and "got".
	CodeCoercionFailed = "coercion_failed"
	// CodeMissingField reports a required field absent with no default.
	CodeMissingField = "missing_field"
	// CodeInvalidEnum reports an input that matched no enum variant.
	CodeInvalidEnum = "invalid_enum"
	// CodeAmbiguousUnion is reserved for stricter modes where identically
	// scoring union variants are rejected instead of tie-broken.
	CodeAmbiguousUnion = "ambiguous_union"
	// CodeOverDeepInput reports that the preprocessor truncated the input at
	// the nesting cap and no strategy produced a candidate from the truncated
	// text. When candidates exist but all fail coercion, the coercion error is
	// reported instead.
	CodeOverDeepInput = "over_deep_input"
	// CodeParseError reports an internal decoding failure.
	CodeParseError = "parse_error"
)

// Issue represents a single parse or coercion failure entry.
type Issue struct {
	Path    string // JSON Pointer into the candidate (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, candidate provenance, etc.
	// Params carries structured parameters (e.g., {"expected":"i64", "got":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. coercion_failed at /price
		fmt.Fprintf(b, "%s at %s", it.Code, displayPath(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
