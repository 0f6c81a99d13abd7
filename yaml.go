package tryparse

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML parses the whole text as a YAML document. Mappings become Objects
// preserving order, sequences become Arrays, and scalars are typed by their
// tag, defaulting to string when ambiguous.
type YAML struct{}

func (YAML) Name() string  { return "yaml" }
func (YAML) Priority() int { return 15 }

func (YAML) Run(text string) []*FlexValue {
	if !looksLikeYAML(text) {
		return nil
	}
	v := parseYAMLDocument(text)
	if v == nil {
		return nil
	}
	setSourceDeep(v, Source{Kind: SourceYAML})
	return []*FlexValue{v}
}

// looksLikeYAML gates the strategy: JSON-shaped input is left to the JSON
// strategies, and prose only qualifies with at least two non-comment lines
// that contain a colon or start a "- " list item.
func looksLikeYAML(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" || strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return false
	}
	count := 0
	for _, line := range strings.Split(t, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ":") || strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count >= 2
}

func parseYAMLDocument(text string) *FlexValue {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	return yamlNodeToFlex(doc.Content[0], 0)
}

func yamlNodeToFlex(n *yaml.Node, depth int) *FlexValue {
	if n == nil || depth > maxYAMLDepth {
		return nil
	}
	src := Source{Kind: SourceYAML}
	switch n.Kind {
	case yaml.AliasNode:
		return yamlNodeToFlex(n.Alias, depth+1)
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			val := yamlNodeToFlex(n.Content[i+1], depth+1)
			if val == nil {
				return nil
			}
			members = append(members, Member{Key: yamlScalarKey(n.Content[i]), Value: val})
		}
		return NewObject(members, src)
	case yaml.SequenceNode:
		items := make([]*FlexValue, 0, len(n.Content))
		for _, c := range n.Content {
			v := yamlNodeToFlex(c, depth+1)
			if v == nil {
				return nil
			}
			items = append(items, v)
		}
		return NewArray(items, src)
	case yaml.ScalarNode:
		return yamlScalarToFlex(n, src)
	}
	return nil
}

const maxYAMLDepth = 64

func yamlScalarKey(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	return n.Value
}

func yamlScalarToFlex(n *yaml.Node, src Source) *FlexValue {
	switch n.Tag {
	case "!!null":
		return NewNull(src)
	case "!!bool":
		if b, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
			return NewBool(b, src)
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return NewInt(i, src)
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return NewFloat(f, src)
		}
	}
	return NewString(n.Value, src)
}
