// Package template renders vhost files and global snippets from plain-text
// templates with {{name}} placeholders.
//
// The syntax is deliberately minimal: no nesting, no conditionals, no
// escaping. Every token of the form {{identifier}} is replaced by the value
// of that identifier, and tokens without a value are dropped from the output.
//
//	out := template.Render("ServerName {{name}}", template.Vars{"name": "a.test"})
//	// ServerName a.test
//
// # Built-in Templates
//
// A default template is embedded for each server kind and used when a
// platform does not point at its own file:
//
//	templates/apache.conf.tmpl
//	templates/nginx.conf.tmpl
//
// # Vhost Placeholders
//
//   - name: the site name
//   - aliases: the aliases joined by single spaces
//   - root: the absolute document root
//   - ssl_cert, ssl_key: certificate paths, falling back to the platform defaults
//   - custom: the site's free-text block
//   - php: the site's PHP version tag
//   - log_dir: the kind's log directory
//   - ip: the address used for the site's hosts entries
//   - kind: the server kind
//
// Global snippets receive vhosts_dir, log_dir and kind.
package template
