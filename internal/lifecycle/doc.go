// Package lifecycle manages driver service units across a reconciliation
// batch.
//
// The package provides three pieces:
//
//   - Batch: the accumulated start/stop decisions of one pass. Units are
//     deduplicated with last-action-wins semantics, so a device erased
//     after being configured in the same batch ends up only in the stop
//     set.
//   - ServiceManager: the narrow interface to the service manager
//     (systemctl), with a real systemd implementation and a recording
//     dry-run one. Every implementation accepts an empty unit set as a
//     no-op, which keeps commit sequences branch-free.
//   - Regenerator: the once-per-commit aggregate config rebuild, either
//     performed natively from the device store or delegated to an
//     external helper command.
//
// The commit ordering itself (disable, stop, regenerate, restart, enable,
// reload server) lives in the configurator package; this package only
// supplies the mechanisms it sequences.
package lifecycle
