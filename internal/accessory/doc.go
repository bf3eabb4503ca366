// Package accessory decides create-vs-restore for discovered bulbs.
//
// Each discovery cycle yields records in arrival order; this package
// matches them against the identities a host runtime already holds and
// emits one action per usable record:
//
//   - ActionCreate: the bulb's key is new, register a fresh accessory
//   - ActionRestore: the key is known, reuse the existing handle and
//     refresh cached context (e.g. the bulb moved to a new address)
//
// Stable keys are UUIDv5 values derived from the bulb id, so the same
// physical bulb maps to the same key across cycles and restarts.
// Records lacking an id are dropped before reconciliation rather than
// silently registered.
//
// Reconcile is pure; Apply drives the host's Registrar with the
// decisions. The host supplies its known identities explicitly each
// cycle, so there is no ambient accessory state in this package.
package accessory
