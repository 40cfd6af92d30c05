package stanza

import "strings"

// Override is the parsed form of an explicit raw override block. The block's
// first character is a user-chosen separator standing in for newlines; the
// remainder is the stanza body with separators instead of line breaks.
//
// An override bypasses scanning and selection entirely: it always yields
// exactly one candidate.
type Override struct {
	// Separator is the user-chosen line-separator character.
	Separator byte

	// Body is the block content with separators already replaced by
	// newlines. Empty for an empty override.
	Body string

	// HasHeader reports whether the body carries its own `[tag]` header
	// line. When false, Stanza prepends the device name as the tag.
	HasHeader bool
}

// ParseOverride parses a raw override block. An empty or single-character
// block parses to an empty override (Body == "").
func ParseOverride(raw string) Override {
	if len(raw) < 2 {
		return Override{}
	}
	sep := raw[0]
	body := strings.ReplaceAll(raw[1:], string(sep), "\n")
	return Override{
		Separator: sep,
		Body:      body,
		HasHeader: body[0] == '[',
	}
}

// Stanza renders the override as the single candidate stanza for the named
// device. An empty override becomes an empty named stanza; a body with its
// own header is used verbatim; otherwise the device name is prepended as a
// synthetic header.
func (o Override) Stanza(name string) Candidate {
	if o.Body == "" {
		return Candidate("[" + name + "]\n\n")
	}
	if o.HasHeader {
		return Candidate(o.Body + "\n")
	}
	return Candidate("[" + name + "]\n" + o.Body + "\n")
}
