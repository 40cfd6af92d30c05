// Package render produces the final on-disk content for a chosen stanza.
//
// Rendering appends device-class tuning directives to the chosen candidate
// in a fixed order; the base stanza text is never otherwise modified. The
// classification driving the directives is re-derived from the chosen
// candidate alone, not from the full candidate set it was selected from.
package render

import (
	"strings"

	"github.com/muurk/nutsmith/internal/classify"
	"github.com/muurk/nutsmith/internal/stanza"
)

// DefaultPollingInterval is used when no interval is configured.
const DefaultPollingInterval = "30"

// Render appends tuning directives to the chosen stanza:
//
//   - `synchronous = yes` for SNMP-capable ePDUs, so outlet commands are
//     not reordered by the driver.
//   - `timeout = 15` for netxml-ups, which defaults to a timeout too short
//     for loaded network cards.
//   - a polling directive, always: `pollfreq` for SNMP drivers,
//     `pollinterval` for everything else.
//
// The polling interval is passed through as a string; an empty value falls
// back to DefaultPollingInterval.
func Render(chosen stanza.Candidate, pollingInterval string) string {
	if pollingInterval == "" {
		pollingInterval = DefaultPollingInterval
	}

	c := classify.ClassifyOne(string(chosen))

	var b strings.Builder
	b.WriteString(string(chosen))

	if c.Epdu && c.Snmp {
		b.WriteString("\tsynchronous = yes\n")
	}
	if c.XML {
		b.WriteString("\ttimeout = 15\n")
	}
	if c.Snmp {
		b.WriteString("\tpollfreq = " + pollingInterval + "\n")
	} else {
		b.WriteString("\tpollinterval = " + pollingInterval + "\n")
	}

	return b.String()
}
