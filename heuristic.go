package tryparse

import (
	"strconv"
	"strings"

	"github.com/microagents/tryparse/internal/repair"
)

// Heuristic is the last resort: it hunts for the outermost balanced {...} or
// [...] region and parses it directly or through the fixer; failing that, it
// recovers key: value pairs from prose and builds an Object. Emits at most
// one candidate.
type Heuristic struct{}

func (Heuristic) Name() string  { return "heuristic" }
func (Heuristic) Priority() int { return 30 }

func (Heuristic) Run(text string) []*FlexValue {
	if region, ok := outermostBalanced(text); ok {
		if v, err := decodeStrict(region); err == nil {
			setSourceDeep(v, Source{Kind: SourceHeuristic})
			return []*FlexValue{v}
		}
		if fixed, n := repair.Fix(region); n > 0 {
			if v, err := decodeStrict(fixed); err == nil {
				setSourceDeep(v, Source{Kind: SourceHeuristic})
				return []*FlexValue{v}
			}
		}
	}
	if v := pairsFromProse(text); v != nil {
		return []*FlexValue{v}
	}
	return nil
}

// outermostBalanced returns the region from the first brace or bracket in
// the text to its matching closer. Only that first opener is tried: when it
// is never closed, no region is returned.
func outermostBalanced(text string) (string, bool) {
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}
	open := text[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}
	depth := 0
	inStr, esc := false, false
	for i := start; i < len(text); i++ {
		ch := text[i]
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
		case closer:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// pairsFromProse extracts Name: Value lines into an Object with scalar
// values typed best-effort.
func pairsFromProse(text string) *FlexValue {
	src := Source{Kind: SourceHeuristic}
	var members []Member
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 || idx == len(line)-1 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if key == "" || val == "" || strings.ContainsAny(key, "{}[]\"") {
			continue
		}
		members = append(members, Member{Key: key, Value: proseScalar(val, src)})
	}
	if len(members) == 0 {
		return nil
	}
	return NewObject(members, src)
}

func proseScalar(s string, src Source) *FlexValue {
	switch strings.ToLower(s) {
	case "true":
		return NewBool(true, src)
	case "false":
		return NewBool(false, src)
	case "null", "~":
		return NewNull(src)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i, src)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f, src)
	}
	return NewString(strings.Trim(s, `"'`), src)
}
