// Package block keeps a marker-delimited block of generated text in sync
// inside a file that otherwise belongs to the user.
//
// A managed block looks like this:
//
//	# BEGIN AUTOGENERATED-apache
//	Include /etc/apache2/autogenerated-apache.conf
//	# END AUTOGENERATED-apache
//
// Merge is a pure function over the current content; Syncer wraps it with
// the file I/O, backups and the single atomic write. Text outside the block
// is never modified.
package block

import "strings"

// Markers is the literal begin/end line pair that delimits a managed block.
type Markers struct {
	Begin string
	End   string
}

// NewMarkers returns the "# BEGIN <name>" / "# END <name>" pair.
func NewMarkers(name string) Markers {
	return Markers{
		Begin: "# BEGIN " + name,
		End:   "# END " + name,
	}
}

// Render returns the full block: begin marker, payload and end marker, each
// separated by a single newline and without a trailing newline.
func (m Markers) Render(payload string) string {
	return m.Begin + "\n" + payload + "\n" + m.End
}

// Action is the decision Merge takes for a piece of content.
type Action int

const (
	// ActionAppend means no block existed and one was appended.
	ActionAppend Action = iota
	// ActionReplace means an existing block was rewritten.
	ActionReplace
	// ActionUnchanged means the existing block already holds the payload.
	ActionUnchanged
	// ActionBlocked means the existing block differs and force is off.
	ActionBlocked
)

// String returns a short description of the action.
func (a Action) String() string {
	switch a {
	case ActionAppend:
		return "block appended"
	case ActionReplace:
		return "block updated"
	case ActionUnchanged:
		return "block up to date"
	case ActionBlocked:
		return "block differs, use --force to replace"
	default:
		return "unknown"
	}
}

// Changed reports whether the action rewrites the content.
func (a Action) Changed() bool {
	return a == ActionAppend || a == ActionReplace
}

// Span locates the first block bounded by m in content. start is the index of
// the begin marker and end the index just past the end marker. ok is false
// when either marker is missing or the end marker does not follow the begin
// marker.
func Span(content string, m Markers) (start, end int, ok bool) {
	start = strings.Index(content, m.Begin)
	if start < 0 {
		return 0, 0, false
	}
	rel := strings.Index(content[start+len(m.Begin):], m.End)
	if rel < 0 {
		return 0, 0, false
	}
	end = start + len(m.Begin) + rel + len(m.End)
	return start, end, true
}

// Merge computes the synchronized content for payload.
//
// Without an existing block the rendered block is appended, separated from
// non-empty content by a blank line, and followed by a newline; appending
// never needs force. An existing block that is byte-equal to m.Render(payload)
// yields ActionUnchanged regardless of force. An existing block with other content is replaced,
// markers included, only when force is set; otherwise content is returned
// as is with ActionBlocked.
func Merge(content string, m Markers, payload string, force bool) (string, Action) {
	start, end, ok := Span(content, m)
	if !ok {
		return appendBlock(content, m, payload), ActionAppend
	}

	if content[start:end] == m.Render(payload) {
		return content, ActionUnchanged
	}
	if !force {
		return content, ActionBlocked
	}

	return content[:start] + m.Render(payload) + content[end:], ActionReplace
}

func appendBlock(content string, m Markers, payload string) string {
	var b strings.Builder
	b.Grow(len(content) + len(m.Begin) + len(payload) + len(m.End) + 4)
	b.WriteString(content)
	if content != "" {
		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.Render(payload))
	b.WriteString("\n")
	return b.String()
}
