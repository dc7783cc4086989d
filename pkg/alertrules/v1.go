package alertrules

import (
	"strings"
	"text/template"
)

var v1Template = template.Must(template.New("v1").Parse(`ALERT {{.Name}}
  IF {{.Expr}}
  FOR {{.Duration}}
  LABELS {
    {{.Labels}}
  }
  ANNOTATIONS {
    {{.Annotations}}
  }
`))

type v1Rule struct {
	Name        string
	Expr        string
	Duration    string
	Labels      string
	Annotations string
}

func (g Generator) renderV1(rules []Rule) (string, error) {
	blocks := make([]string, 0, len(rules))
	for _, r := range rules {
		var b strings.Builder
		err := v1Template.Execute(&b, v1Rule{
			Name:        r.Name,
			Expr:        g.Expr(r),
			Duration:    r.Duration,
			Labels:      v1Entries(g.Labels(r)),
			Annotations: v1Entries(g.Annotations(r)),
		})
		if err != nil {
			return "", err
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n"), nil
}

// v1Entries renders `name = "value"` pairs, one per line.
func v1Entries(pairs []Pair) string {
	entries := make([]string, len(pairs))
	for i, p := range pairs {
		entries[i] = p.Name + " = " + `"` + strings.ReplaceAll(p.Value, `"`, `\"`) + `"`
	}
	return strings.Join(entries, ",\n    ")
}
