// Package store persists rendered device configs and detects change.
//
// The store is one directory with one file per device, named after the
// device. File content is the exact rendered stanza last deployed for
// that device; the aggregate ups.conf is rebuilt from these files on
// every commit (see the lifecycle package).
//
// Change detection compares BLAKE3 fingerprints of the stored file and
// the newly rendered content, so an unchanged device causes neither a
// rewrite nor a driver restart. An unreadable previous file is treated
// as absent rather than as an error: first-time configuration must not
// be blocked by a fingerprinting failure on the old side.
package store
