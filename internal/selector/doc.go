// Package selector picks the single best candidate stanza for a device.
//
// Selection is deterministic over the discovery-ordered candidate set and
// never mutates its input. The only way to get "no selection" from a
// non-empty set is MIB-priority exhaustion: a multi-candidate set where no
// candidate's mibs value matches any priority pattern is treated as
// ambiguous and rejected rather than guessed at.
package selector
