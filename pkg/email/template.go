package email

import (
	"fmt"
	"os"
	"strings"
)

// RenderString replaces every literal {{key}} in tmpl with vars[key].
// Values are inserted verbatim, without HTML escaping. Placeholders with no
// matching key are left in place.
func RenderString(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// RenderFile reads the UTF-8 template at path and renders it with vars.
func RenderFile(path string, vars map[string]string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return RenderString(string(b), vars), nil
}
