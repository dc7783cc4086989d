package alertrules

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type v2File struct {
	Groups []v2Group `yaml:"groups"`
}

type v2Group struct {
	Name  string   `yaml:"name"`
	Rules []v2Rule `yaml:"rules"`
}

type v2Rule struct {
	Alert       string     `yaml:"alert"`
	Expr        string     `yaml:"expr"`
	For         string     `yaml:"for"`
	Labels      orderedMap `yaml:"labels"`
	Annotations orderedMap `yaml:"annotations"`
}

// orderedMap marshals as a YAML mapping that keeps insertion order.
type orderedMap []Pair

func (m orderedMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Value},
		)
	}
	return node, nil
}

func (g Generator) renderV2(rules []Rule) (string, error) {
	group := v2Group{Name: g.Group, Rules: make([]v2Rule, 0, len(rules))}
	for _, r := range rules {
		group.Rules = append(group.Rules, v2Rule{
			Alert:       g.AlertName(r),
			Expr:        g.Expr(r),
			For:         r.Duration,
			Labels:      g.Labels(r),
			Annotations: g.Annotations(r),
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v2File{Groups: []v2Group{group}}); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
