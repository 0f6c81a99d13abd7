package tryparse

import "github.com/microagents/tryparse/internal/repair"

// JSONFixer runs the deterministic repair pass and parses the result as
// strict JSON. The number of fixes applied feeds the base-score penalty;
// individual fixes are counted, not logged.
type JSONFixer struct{}

func (JSONFixer) Name() string  { return "json_fixer" }
func (JSONFixer) Priority() int { return 20 }

func (JSONFixer) Run(text string) []*FlexValue {
	fixed, n := repair.Fix(text)
	if n == 0 {
		// nothing repaired; DirectJSON already covers the clean case
		return nil
	}
	v, err := decodeStrict(fixed)
	if err != nil {
		return nil
	}
	setSourceDeep(v, Source{Kind: SourceFixed, Fixes: n})
	return []*FlexValue{v}
}
