package cli

import (
	"fmt"
	"strings"

	"github.com/bjaus/termtable"
)

// parseColumns reads a --columns value such as "name,size:Bytes".
func parseColumns(s string) ([]termtable.Column, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var cols []termtable.Column
	for _, part := range strings.Split(s, ",") {
		key, label, _ := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: empty column key in %q", termtable.ErrInvalidConfig, s)
		}
		cols = append(cols, termtable.Column{Key: key, Label: strings.TrimSpace(label)})
	}
	return cols, nil
}
