package template

import (
	"embed"
	"fmt"
)

//go:embed templates/*.tmpl
var defaults embed.FS

// Default returns the built-in vhost template for a server kind.
func Default(kind string) (string, error) {
	content, err := defaults.ReadFile("templates/" + kind + ".conf.tmpl")
	if err != nil {
		return "", fmt.Errorf("no built-in template for %s", kind)
	}
	return string(content), nil
}
