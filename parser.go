package tryparse

import (
	"sort"
	"strings"
	"sync"

	"github.com/microagents/tryparse/i18n"
	"github.com/microagents/tryparse/internal/repair"
)

// Parser holds an ordered strategy set. The zero value is not usable; build
// one with NewParser or NewParserWith.
type Parser struct {
	strategies []Strategy
}

// NewParser returns a parser with the default strategy set.
func NewParser() *Parser { return NewParserWith(DefaultStrategies()...) }

// NewParserWith returns a parser over the given strategies, ordered by
// priority (stable for equal priorities).
func NewParserWith(strategies ...Strategy) *Parser {
	ss := append([]Strategy(nil), strategies...)
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].Priority() < ss[j].Priority() })
	return &Parser{strategies: ss}
}

// Strategies returns the configured set in execution order.
func (p *Parser) Strategies() []Strategy {
	return append([]Strategy(nil), p.strategies...)
}

// Candidates preprocesses the input, runs every strategy, and returns the
// pool ranked by score. Strategies run concurrently; results land in
// per-strategy slots, so the pool ordering is independent of scheduling.
func (p *Parser) Candidates(input string) ([]*FlexValue, error) {
	if strings.TrimSpace(input) == "" {
		return nil, Issues{Issue{Path: "", Code: CodeNoInput, Message: i18n.T(CodeNoInput, nil)}}
	}
	text, info := repair.PreprocessWithInfo(input)
	slots := make([][]*FlexValue, len(p.strategies))
	var wg sync.WaitGroup
	for i, s := range p.strategies {
		wg.Add(1)
		go func(i int, s Strategy) {
			defer wg.Done()
			slots[i] = s.Run(text)
		}(i, s)
	}
	wg.Wait()
	var pool []*FlexValue
	for _, cs := range slots {
		pool = append(pool, cs...)
	}
	if len(pool) == 0 {
		code := CodeNoCandidates
		if info.Truncated {
			code = CodeOverDeepInput
		}
		return nil, Issues{Issue{Path: "", Code: code, Message: i18n.T(code, nil)}}
	}
	Rank(pool)
	return pool, nil
}
