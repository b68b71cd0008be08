package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/bjaus/termtable"
)

// ErrInvalidTemplate reports a --cell-template that does not parse.
var ErrInvalidTemplate = errors.New("invalid template")

var templateFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"kind":  func(v any) string { return termtable.Classify(v).String() },
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// templateFormatter compiles tmpl into a cell formatter that executes it with
// the cell as dot.
func templateFormatter(tmpl string) (termtable.CellFormatter, error) {
	t, err := template.New("cell").Funcs(templateFuncs).Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return func(cell any) (string, error) {
		var sb strings.Builder
		if err := t.Execute(&sb, cell); err != nil {
			return "", err
		}
		return sb.String(), nil
	}, nil
}
