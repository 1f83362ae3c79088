// Package audit implements the append-only trail of review decisions
// and its CSV export to object storage.
package audit

import "slices"

// Fields is one audit record as a flat field map. Export operates on
// field maps so records produced by different code paths serialize
// consistently even when their key sets drift.
type Fields map[string]string

// Entry is an immutable record of one review decision.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Batch     string `json:"batch"`
	DocType   string `json:"doc_type"`
	Versions  string `json:"v1_v2"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	Decision  string `json:"decision"`
}

// Fields returns the entry as a field map keyed by column name.
func (e Entry) Fields() Fields {
	return Fields{
		"timestamp": e.Timestamp,
		"batch":     e.Batch,
		"doc_type":  e.DocType,
		"v1_v2":     e.Versions,
		"status":    e.Status,
		"notes":     e.Notes,
		"decision":  e.Decision,
	}
}

// FieldsOf converts entries to field maps, preserving order.
func FieldsOf(entries []Entry) []Fields {
	fields := make([]Fields, len(entries))
	for i, e := range entries {
		fields[i] = e.Fields()
	}
	return fields
}

// Trail is an append-only list of audit entries. Entries are never
// edited or removed after creation.
type Trail struct {
	entries []Entry
}

// Append adds an entry to the end of the trail.
func (t *Trail) Append(e Entry) {
	t.entries = append(t.entries, e)
}

// Entries returns the entries in append order.
func (t *Trail) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Len returns the number of entries.
func (t *Trail) Len() int {
	return len(t.entries)
}
