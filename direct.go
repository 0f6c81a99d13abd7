package tryparse

// DirectJSON parses the entire text as strict JSON. The fast path: a clean
// parse scores zero.
type DirectJSON struct{}

func (DirectJSON) Name() string  { return "direct_json" }
func (DirectJSON) Priority() int { return 1 }

func (DirectJSON) Run(text string) []*FlexValue {
	v, err := decodeStrict(text)
	if err != nil {
		return nil
	}
	setSourceDeep(v, Source{Kind: SourceDirect})
	return []*FlexValue{v}
}
