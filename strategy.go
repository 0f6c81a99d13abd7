package tryparse

// Strategy is a pure function that tries to lift preprocessed text into
// candidate FlexValues. Strategies are independent: one strategy's failure
// never blocks another, and a failure is simply an empty result.
type Strategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string
	// Priority orders strategies; lower runs (and ties) earlier.
	Priority() int
	// Run proposes zero or more candidates from the text.
	Run(text string) []*FlexValue
}

// DefaultStrategies returns the standard set: DirectJSON, Markdown, YAML,
// JSONFixer, and Heuristic, in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		DirectJSON{},
		Markdown{},
		YAML{},
		JSONFixer{},
		Heuristic{},
	}
}
