package stanza

import (
	"fmt"
	"regexp"
	"strings"
)

// Candidate is one possible driver-configuration stanza for a device, as
// produced by scanning or by an explicit override. The text is opaque to
// callers and immutable once produced: it holds a `[tag]` header line
// followed by tab-indented `key = "value"` lines, terminated by a newline.
type Candidate string

// String returns the raw stanza text.
func (c Candidate) String() string { return string(c) }

// Texts converts a candidate slice to plain strings for classification.
func Texts(candidates []Candidate) []string {
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = string(c)
	}
	return texts
}

// fieldPattern matches one `key = "value"` line. The key is substituted in
// via QuoteMeta, the value is captured without its surrounding quotes.
const fieldPattern = `(?im)^[ \t]*%s[ \t]*=[ \t]*"([^"]*)"`

// Field extracts the value of a `key = "value"` line from stanza text.
// Matching is case-insensitive. Returns the first occurrence and true,
// or "" and false when the key is absent.
func (c Candidate) Field(key string) (string, bool) {
	re := regexp.MustCompile(fmt.Sprintf(fieldPattern, regexp.QuoteMeta(key)))
	m := re.FindStringSubmatch(string(c))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Tag returns the device tag from the stanza's `[tag]` header line,
// or "" when the stanza has no header.
func (c Candidate) Tag() string {
	text := strings.TrimLeft(string(c), " \t\r\n")
	if !strings.HasPrefix(text, "[") {
		return ""
	}
	end := strings.IndexByte(text, ']')
	if end < 0 {
		return ""
	}
	return text[1:end]
}

// Retag replaces the stanza's `[tag]` header with the given device name.
// A stanza without a header gets one prepended. The body is untouched.
func (c Candidate) Retag(name string) Candidate {
	text := string(c)
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
			return Candidate("[" + name + "]" + trimmed[nl:])
		}
		return Candidate("[" + name + "]\n")
	}
	return Candidate("[" + name + "]\n" + text)
}
