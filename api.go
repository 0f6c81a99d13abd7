package tryparse

import "github.com/microagents/tryparse/schema"

// Typed output shapes: Bool→bool, I64→int64, F64→float64, String→string,
// Option→nil or the inner value, Seq→[]any, Map→map[string]any,
// Struct→map[string]any keyed by canonical field names, unit enum
// variants→string, payload variants and union selections→EnumValue. Use
// Bind to project the result into a caller struct.

var defaultParser = NewParser()

// Parse fits the input into the schema with fuzzy matching disabled: type
// coercions still apply, but field keys and enum variant names must match
// exactly.
func Parse(input string, s *schema.Schema) (any, error) {
	v, _, err := parseWith(input, s, defaultParser, false)
	return v, err
}

// ParseFlexible fits the input into the schema with fuzzy field and enum
// matching enabled.
func ParseFlexible(input string, s *schema.Schema) (any, error) {
	v, _, err := parseWith(input, s, defaultParser, true)
	return v, err
}

// ParseWithCandidates is ParseFlexible plus the full ranked candidate pool.
// The winning candidate appears in the pool carrying its transformation
// log; on failure the pool is still returned for diagnostic inspection.
func ParseWithCandidates(input string, s *schema.Schema) (any, []*FlexValue, error) {
	return parseWith(input, s, defaultParser, true)
}

// ParseWithParser is ParseFlexible over a caller-configured strategy set.
func ParseWithParser(input string, s *schema.Schema, p *Parser) (any, error) {
	v, _, err := parseWith(input, s, p, true)
	return v, err
}

func parseWith(input string, sc *schema.Schema, p *Parser, fuzzy bool) (any, []*FlexValue, error) {
	cands, err := p.Candidates(input)
	if err != nil {
		return nil, nil, err
	}
	var firstErr error
	for i, c := range cands {
		val, updated, err := coerceCandidate(sc, c, fuzzy)
		if err == nil {
			cands[i] = updated
			return val, cands, nil
		}
		// candidates are ranked, so the first failure is the best attempt
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, cands, firstErr
}
