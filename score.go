package tryparse

import "sort"

// Score assigns a total cost to a candidate. Lower is better; 0 means a
// clean direct parse. The score is the sum of the source base cost, the
// per-transformation penalties, and a confidence penalty on the
// strategy-assigned base confidence.
func Score(c *FlexValue) int {
	s := sourceBase(c.Source)
	for _, t := range c.trans {
		s += transPenalty(t.Kind)
	}
	s += int((1.0 - c.base) * 100.0)
	return s
}

func sourceBase(src Source) int {
	switch src.Kind {
	case SourceDirect:
		return 0
	case SourceMarkdown:
		return 10 + 5*src.Fixes
	case SourceYAML:
		return 15
	case SourceFixed:
		return 20 + 5*src.Fixes
	case SourceMultiObjectArray:
		return 25
	case SourceMultiObject:
		return 30
	case SourceRawPrimitive:
		return 40
	case SourceHeuristic:
		return 50
	}
	return 0
}

func transPenalty(kind string) int {
	switch kind {
	case TransStringToNumber, TransStringToBool, TransNumberToString:
		return 2
	case TransFloatToInt, TransEnumFuzzyMatched:
		return 3
	case TransFieldRenamed, TransKeyImplied:
		return 4
	case TransSingleToArray:
		return 5
	case TransVariantSelected:
		return 2
	case TransDefaultInserted:
		return 50
	}
	return 0
}

// sourcePriority is the static strategy priority used as a tie-break; it
// mirrors the priorities the strategies declare.
func sourcePriority(src Source) int {
	switch src.Kind {
	case SourceDirect:
		return 1
	case SourceMarkdown:
		return 2
	case SourceYAML:
		return 15
	case SourceFixed:
		return 20
	case SourceMultiObjectArray, SourceMultiObject:
		return 25
	case SourceRawPrimitive:
		return 28
	case SourceHeuristic:
		return 30
	}
	return 99
}

// Rank stably sorts candidates by ascending score, breaking ties by strategy
// priority and then by the order the candidates were produced.
func Rank(cs []*FlexValue) {
	sort.SliceStable(cs, func(i, j int) bool {
		si, sj := Score(cs[i]), Score(cs[j])
		if si != sj {
			return si < sj
		}
		return sourcePriority(cs[i].Source) < sourcePriority(cs[j].Source)
	})
}

// Best returns the lowest-scoring candidate, or nil for an empty pool. The
// input order is not disturbed.
func Best(cs []*FlexValue) *FlexValue {
	if len(cs) == 0 {
		return nil
	}
	ranked := append([]*FlexValue(nil), cs...)
	Rank(ranked)
	return ranked[0]
}
