package tryparse

import "strings"

// MultiObject handles responses carrying several concatenated top-level JSON
// objects. Each object becomes its own candidate, and the whole stream also
// becomes one array candidate, which wins for sequence targets since it
// needs no wrapping. Not part of the default set.
type MultiObject struct{}

func (MultiObject) Name() string  { return "multi_object" }
func (MultiObject) Priority() int { return 25 }

func (MultiObject) Run(text string) []*FlexValue {
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return nil
	}
	values, err := decodeTopLevel(text)
	if err != nil || len(values) < 2 {
		return nil
	}
	for _, v := range values {
		if v.Kind != KindObject {
			return nil
		}
	}
	out := make([]*FlexValue, 0, len(values)+1)
	combined := make([]*FlexValue, len(values))
	arraySrc := Source{Kind: SourceMultiObjectArray}
	for i, v := range values {
		combined[i] = v.Clone()
		setSourceDeep(combined[i], arraySrc)
		setSourceDeep(v, Source{Kind: SourceMultiObject, Index: i})
	}
	out = append(out, NewArray(combined, arraySrc))
	out = append(out, values...)
	return out
}
