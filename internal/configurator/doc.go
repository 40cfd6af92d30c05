// Package configurator orchestrates driver configuration deployment.
//
// One reconciliation pass walks the device inventory: for each device,
// candidate stanzas are resolved (by scanning, or an explicit override),
// the best one is selected and rendered, and the result is persisted only
// when its content actually changed. Devices that left the inventory have
// their configs erased. The pass ends with exactly one Commit, which
// replays the accumulated unit decisions against the service manager in a
// fixed, fault-tolerant order.
//
// Pass state lives in a lifecycle.Batch owned by the caller, so the
// configurator itself is stateless and safe to share. The sequence per
// pass is:
//
//	batch := lifecycle.NewBatch()
//	for name, dev := range inventory {
//	    c.Configure(ctx, batch, name, dev)
//	}
//	c.Erase(batch, staleName)
//	c.Commit(ctx, batch)
//
// or equivalently one Reconcile call, which also handles stale-config
// detection and reporting.
//
// # Failure policy
//
// Configure returns false only for transient conditions (no usable
// candidate); everything else is logged and absorbed. A device with no
// address and no override is a successful no-op: rescanning it would not
// help until its inventory entry changes. Commit never aborts early; each
// lifecycle step runs regardless of prior failures and the batch is
// always cleared afterwards. There is no rollback.
package configurator
