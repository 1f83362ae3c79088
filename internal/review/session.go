// Package review implements the version comparison domain: candidate
// pair generation, per-reviewer session state, and the append-only
// audit trail each decision feeds.
package review

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/JaimeStill/collate/internal/audit"
	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/pkg/formatting"
)

// Review decisions.
const (
	DecisionAccept   = "Accept"
	DecisionReject   = "Reject"
	DecisionMoreInfo = "Request More Information"
)

// ParseDecision validates a decision value. An empty value defaults to
// Accept.
func ParseDecision(s string) (string, error) {
	switch s {
	case "":
		return DecisionAccept, nil
	case DecisionAccept, DecisionReject, DecisionMoreInfo:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown decision %q", ErrValidation, s)
	}
}

// Status reports whether a (batch, type) combination has been reviewed.
type Status string

// Review statuses. Once reviewed, a combination never auto-reverts;
// only a fresh decision on the same key re-confirms it.
const (
	StatusNotReviewed Status = "not-reviewed"
	StatusReviewed    Status = "reviewed"
)

type statusKey struct {
	batch   string
	docType catalog.DocType
}

// Session holds one reviewer's selections, review statuses, and audit
// trail. Mutation happens only through explicit operations; the
// registry serializes access so each session behaves as a single-actor
// state machine.
type Session struct {
	id        string
	created   time.Time
	catalog   *catalog.Catalog
	batch     string
	docType   catalog.DocType
	versions  []int
	selection *Pair
	statuses  map[statusKey]Status
	trail     audit.Trail
}

// NewSession creates a session over a loaded catalog, activating the
// first batch and the CI document type.
func NewSession(id string, cat *catalog.Catalog) *Session {
	s := &Session{
		id:       id,
		created:  time.Now(),
		catalog:  cat,
		docType:  catalog.DocTypeCI,
		statuses: make(map[statusKey]Status),
	}
	if batches := cat.Batches(); len(batches) > 0 {
		s.batch = batches[0]
	}
	s.deriveVersions()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Audit returns the session's audit entries in append order.
func (s *Session) Audit() []audit.Entry {
	return s.trail.Entries()
}

// SelectBatch activates a batch, re-deriving the available version set.
func (s *Session) SelectBatch(batch string) error {
	if !slices.Contains(s.catalog.Batches(), batch) {
		return fmt.Errorf("%w: unknown batch %q", ErrValidation, batch)
	}
	s.batch = batch
	s.deriveVersions()
	return nil
}

// SelectDocType activates a document type, re-deriving the available
// version set.
func (s *Session) SelectDocType(docType catalog.DocType) {
	s.docType = docType
	s.deriveVersions()
}

// SelectComparison sets the active pair. Both versions must be present
// in the current available set and distinct; invalid selections are
// rejected with no state change. Re-selecting the current pair is a
// no-op.
func (s *Session) SelectComparison(a, b int) error {
	if a == b {
		return fmt.Errorf("%w: versions must be distinct", ErrValidation)
	}
	if !slices.Contains(s.versions, a) {
		return fmt.Errorf("%w: version %d not available", ErrValidation, a)
	}
	if !slices.Contains(s.versions, b) {
		return fmt.Errorf("%w: version %d not available", ErrValidation, b)
	}
	s.selection = &Pair{A: a, B: b}
	return nil
}

// RecordDecision appends an audit entry for the active comparison and
// marks the (batch, type) combination reviewed. The decision defaults
// to Accept when empty.
func (s *Session) RecordDecision(decision, notes string) (*audit.Entry, error) {
	parsed, err := ParseDecision(decision)
	if err != nil {
		return nil, err
	}
	if s.batch == "" || s.selection == nil {
		return nil, fmt.Errorf("%w: no active comparison", ErrValidation)
	}

	entry := audit.Entry{
		Timestamp: formatting.FormatTimestamp(time.Now()),
		Batch:     s.batch,
		DocType:   string(s.docType),
		Versions:  s.selection.Label(),
		Status:    string(StatusReviewed),
		Notes:     notes,
		Decision:  parsed,
	}
	s.trail.Append(entry)
	s.statuses[statusKey{batch: s.batch, docType: s.docType}] = StatusReviewed

	return &entry, nil
}

// Status returns the review status for a (batch, type) combination,
// defaulting to not-reviewed for unseen keys.
func (s *Session) Status(batch string, docType catalog.DocType) Status {
	if status, ok := s.statuses[statusKey{batch: batch, docType: docType}]; ok {
		return status
	}
	return StatusNotReviewed
}

// deriveVersions recomputes the available version set for the active
// key. The current comparison survives when still valid; otherwise it
// resets to the first two sorted versions. A single-version group is
// not comparable.
func (s *Session) deriveVersions() {
	s.versions = s.catalog.Versions(s.batch, s.docType)

	if s.selection != nil && s.pairValid(*s.selection) {
		return
	}

	if len(s.versions) >= 2 {
		s.selection = &Pair{A: s.versions[0], B: s.versions[1]}
	} else {
		s.selection = nil
	}
}

func (s *Session) pairValid(p Pair) bool {
	return p.A != p.B &&
		slices.Contains(s.versions, p.A) &&
		slices.Contains(s.versions, p.B)
}

// VersionInfo pairs a version number with its upstream portal metadata
// for display beside the comparison panes.
type VersionInfo struct {
	Version      int    `json:"version"`
	StorageKey   string `json:"storage_key"`
	Filename     string `json:"filename"`
	PortalStatus string `json:"portal_status"`
	Reason       string `json:"reason,omitempty"`
}

// StatusEntry reports the review status of one (batch, type)
// combination.
type StatusEntry struct {
	Batch   string          `json:"batch"`
	DocType catalog.DocType `json:"doc_type"`
	Status  Status          `json:"status"`
}

// Snapshot is a read-only projection of session state for the panel.
type Snapshot struct {
	ID         string          `json:"id"`
	Created    string          `json:"created"`
	Batches    []string        `json:"batches"`
	Batch      string          `json:"batch"`
	DocType    catalog.DocType `json:"doc_type"`
	Versions   []VersionInfo   `json:"versions"`
	Pairs      []Pair          `json:"pairs"`
	Comparison *Pair           `json:"comparison,omitempty"`
	Comparable bool            `json:"comparable"`
	Statuses   []StatusEntry   `json:"statuses"`
	AuditCount int             `json:"audit_count"`
}

// Summary identifies a session in the listing surface.
type Summary struct {
	ID         string          `json:"id"`
	Created    string          `json:"created"`
	Batch      string          `json:"batch"`
	DocType    catalog.DocType `json:"doc_type"`
	AuditCount int             `json:"audit_count"`
	Reviewed   int             `json:"reviewed"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() *Snapshot {
	versions := make([]VersionInfo, 0, len(s.versions))
	for _, v := range s.versions {
		info := VersionInfo{Version: v}
		if rec, err := s.catalog.Find(s.batch, s.docType, v); err == nil {
			info.StorageKey = rec.StorageKey
			info.Filename = rec.Filename
			info.PortalStatus = rec.PortalStatus
			info.Reason = rec.Reason
		}
		versions = append(versions, info)
	}

	statuses := make([]StatusEntry, 0, len(s.statuses))
	for key, status := range s.statuses {
		statuses = append(statuses, StatusEntry{
			Batch:   key.batch,
			DocType: key.docType,
			Status:  status,
		})
	}
	slices.SortFunc(statuses, func(a, b StatusEntry) int {
		if c := cmp.Compare(a.Batch, b.Batch); c != 0 {
			return c
		}
		return cmp.Compare(string(a.DocType), string(b.DocType))
	})

	var comparison *Pair
	if s.selection != nil {
		p := *s.selection
		comparison = &p
	}

	return &Snapshot{
		ID:         s.id,
		Created:    formatting.FormatTimestamp(s.created),
		Batches:    s.catalog.Batches(),
		Batch:      s.batch,
		DocType:    s.docType,
		Versions:   versions,
		Pairs:      GeneratePairs(s.versions),
		Comparison: comparison,
		Comparable: s.selection != nil,
		Statuses:   statuses,
		AuditCount: s.trail.Len(),
	}
}

// Summary returns the session's listing projection.
func (s *Session) Summary() Summary {
	return Summary{
		ID:         s.id,
		Created:    formatting.FormatTimestamp(s.created),
		Batch:      s.batch,
		DocType:    s.docType,
		AuditCount: s.trail.Len(),
		Reviewed:   len(s.statuses),
	}
}
