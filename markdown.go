package tryparse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/microagents/tryparse/internal/repair"
)

// Fenced-block patterns are process-wide read-only caches, shared across
// concurrent calls.
var (
	backtickFenceRE = regexp.MustCompile("(?s)```([A-Za-z0-9]*)[ \t]*\r?\n(.*?)```")
	tildeFenceRE    = regexp.MustCompile("(?s)~~~([A-Za-z0-9]*)[ \t]*\r?\n(.*?)~~~")
)

// Markdown extracts structured content from fenced code blocks. Each block
// is tried as strict JSON, then through the fixer, then as YAML; every
// success becomes a candidate. Blocks are emitted in block-local rank order:
// a json language tag beats no tag beats other tags, later blocks lose a
// small penalty, and larger blocks win ties.
type Markdown struct{}

func (Markdown) Name() string  { return "markdown" }
func (Markdown) Priority() int { return 2 }

type fencedBlock struct {
	lang    string
	content string
	index   int
}

func extractBlocks(text string) []fencedBlock {
	type located struct {
		fencedBlock
		pos int
	}
	var found []located
	for _, re := range []*regexp.Regexp{backtickFenceRE, tildeFenceRE} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			found = append(found, located{
				fencedBlock: fencedBlock{
					lang:    strings.ToLower(text[m[2]:m[3]]),
					content: strings.TrimSpace(text[m[4]:m[5]]),
				},
				pos: m[0],
			})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	blocks := make([]fencedBlock, len(found))
	for i, f := range found {
		f.fencedBlock.index = i
		blocks[i] = f.fencedBlock
	}
	return blocks
}

func langRank(lang string) int {
	switch lang {
	case "json", "jsonc", "json5":
		return 2
	case "":
		return 1
	}
	return 0
}

func (Markdown) Run(text string) []*FlexValue {
	blocks := extractBlocks(text)
	if len(blocks) == 0 {
		return nil
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		ri, rj := langRank(blocks[i].lang), langRank(blocks[j].lang)
		if ri != rj {
			return ri > rj
		}
		if blocks[i].index != blocks[j].index {
			return blocks[i].index < blocks[j].index
		}
		return len(blocks[i].content) > len(blocks[j].content)
	})
	var out []*FlexValue
	for _, blk := range blocks {
		if blk.content == "" {
			continue
		}
		src := Source{Kind: SourceMarkdown, Lang: blk.lang}
		if v, err := decodeStrict(blk.content); err == nil {
			setSourceDeep(v, src)
			out = append(out, v)
			continue
		}
		if fixed, n := repair.Fix(blk.content); n > 0 {
			if v, err := decodeStrict(fixed); err == nil {
				src.Fixes = n
				setSourceDeep(v, src)
				out = append(out, v)
				continue
			}
		}
		if v := parseYAMLDocument(blk.content); v != nil {
			setSourceDeep(v, src)
			out = append(out, v)
		}
	}
	return out
}
