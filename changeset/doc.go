// Package changeset fingerprints normalized city objects and classifies
// the ids of two documents as added, removed, changed or unchanged by
// comparing fingerprints.
package changeset
