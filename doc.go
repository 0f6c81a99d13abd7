// Package tryparse turns messy, free-form text — typically the output of a
// large language model — into typed values.
//
// The input may contain valid JSON, JSON wrapped in prose or code fences,
// JSON with common syntactic defects, YAML, or prose from which structured
// data must be recovered. A pipeline of independent extraction strategies
// proposes candidate trees, a scorer ranks them by how little they had to be
// changed, and a schema-directed coercion engine fits the best candidate
// into a caller-supplied descriptor, recording every transformation it
// applied along the way.
//
//	s := schema.Struct(
//		schema.F("name", schema.String()),
//		schema.F("age", schema.I64()),
//	)
//	v, err := tryparse.ParseFlexible("```json\n{ name: \"Alice\", age: \"30\" }\n```", s)
//
// Parsing is best-effort on ambiguous input; what the package guarantees is
// a stable, deterministic ranking of the parses it considered.
package tryparse
