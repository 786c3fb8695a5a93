package template

import (
	"os"
	"regexp"
	"sort"
	"strings"

	verrors "github.com/jturbide/vhost/internal/errors"
)

// Vars maps placeholder names (without braces) to their values.
type Vars map[string]string

var placeholderRe = regexp.MustCompile(`\{\{((?s:.+?))\}\}`)

// Render replaces every {{key}} token of tmpl with vars[key], then removes the
// placeholders left in the template text. Known tokens are found in a single
// left-to-right pass over tmpl and values are inserted verbatim, even when
// they contain brace sequences of their own.
func Render(tmpl string, vars Vars) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	text := 0
	for i := 0; i < len(tmpl); {
		j := strings.Index(tmpl[i:], "{{")
		if j < 0 {
			break
		}
		i += j
		if k := strings.Index(tmpl[i+2:], "}}"); k >= 0 {
			if v, ok := vars[tmpl[i+2:i+2+k]]; ok {
				b.WriteString(stripUnresolved(tmpl[text:i]))
				b.WriteString(v)
				i += k + 4
				text = i
				continue
			}
		}
		i++
	}
	b.WriteString(stripUnresolved(tmpl[text:]))
	return b.String()
}

func stripUnresolved(s string) string {
	return placeholderRe.ReplaceAllString(s, "")
}

// Placeholders returns the distinct placeholder names used in tmpl, sorted.
func Placeholders(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Unknown returns the placeholders of tmpl that vars does not define.
func Unknown(tmpl string, vars Vars) []string {
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Load returns the template at path, or the embedded default for kind when
// path is empty.
func Load(path, kind string) (string, error) {
	if path == "" {
		return Default(kind)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", verrors.WrapPath(verrors.ErrCodeIO, path, "failed to read template", err)
	}
	return string(data), nil
}
