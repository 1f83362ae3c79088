// Package catalog implements the document catalog domain for Collate.
// It loads the upstream review table, expands each batch version into its
// CI and PL document records, and provides lookup and verification over
// the resulting immutable catalog.
package catalog

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// DocType is one of the two fixed document categories tracked per batch.
type DocType string

const (
	DocTypeCI DocType = "CI"
	DocTypePL DocType = "PL"
)

// DocTypes returns the fixed document type set in expansion order.
func DocTypes() []DocType {
	return []DocType{DocTypeCI, DocTypePL}
}

// ParseDocType parses a document type string, ignoring case.
func ParseDocType(s string) (DocType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(DocTypeCI):
		return DocTypeCI, nil
	case string(DocTypePL):
		return DocTypePL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDocType, s)
	}
}

// Record is one reviewable document unit: a single version of a single
// document type within a batch, located in blob storage by StorageKey.
type Record struct {
	Batch        string  `json:"batch"`
	Type         DocType `json:"type"`
	Version      int     `json:"version"`
	StorageKey   string  `json:"storage_key"`
	Filename     string  `json:"filename"`
	PortalStatus string  `json:"portal_status"`
	Reason       string  `json:"reason"`
}

// StorageKey synthesizes the deterministic blob key for a document.
func StorageKey(t DocType, batch string, version int) string {
	return fmt.Sprintf("%s/%s/%s_%d.pdf", t, batch, batch, version)
}

// Filename synthesizes the display filename for a document.
func Filename(batch string, version int) string {
	return fmt.Sprintf("%s_%d.pdf", batch, version)
}

type groupKey struct {
	batch   string
	docType DocType
}

type recordKey struct {
	batch   string
	docType DocType
	version int
}

// Catalog is a normalized, immutable collection of document records
// derived from one load of the review table.
type Catalog struct {
	records  []Record
	index    map[recordKey]int
	versions map[groupKey][]int
	batches  []string
}

type tableRow struct {
	batch        string
	version      int
	portalStatus string
	reason       string
}

func newCatalog(rows []tableRow) (*Catalog, error) {
	type rowKey struct {
		batch   string
		version int
	}
	seen := make(map[rowKey]bool, len(rows))

	c := &Catalog{
		records:  make([]Record, 0, len(rows)*2),
		index:    make(map[recordKey]int),
		versions: make(map[groupKey][]int),
	}

	for _, row := range rows {
		rk := rowKey{batch: row.batch, version: row.version}
		if seen[rk] {
			return nil, fmt.Errorf(
				"%w: duplicate row for batch %s version %d",
				ErrSource, row.batch, row.version,
			)
		}
		seen[rk] = true

		for _, t := range DocTypes() {
			c.records = append(c.records, Record{
				Batch:        row.batch,
				Type:         t,
				Version:      row.version,
				StorageKey:   StorageKey(t, row.batch, row.version),
				Filename:     Filename(row.batch, row.version),
				PortalStatus: row.portalStatus,
				Reason:       row.reason,
			})
		}
	}

	slices.SortFunc(c.records, func(a, b Record) int {
		if n := strings.Compare(a.Batch, b.Batch); n != 0 {
			return n
		}
		if n := strings.Compare(string(a.Type), string(b.Type)); n != 0 {
			return n
		}
		return a.Version - b.Version
	})

	for i, rec := range c.records {
		c.index[recordKey{rec.Batch, rec.Type, rec.Version}] = i

		gk := groupKey{rec.Batch, rec.Type}
		c.versions[gk] = append(c.versions[gk], rec.Version)

		if !slices.Contains(c.batches, rec.Batch) {
			c.batches = append(c.batches, rec.Batch)
		}
	}

	slices.Sort(c.batches)

	return c, nil
}

// Len returns the number of document records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Batches returns the sorted distinct batch identifiers.
func (c *Catalog) Batches() []string {
	return slices.Clone(c.batches)
}

// Versions returns the sorted distinct versions available for a batch and
// document type. Returns an empty slice for unknown keys.
func (c *Catalog) Versions(batch string, t DocType) []int {
	return slices.Clone(c.versions[groupKey{batch, t}])
}

// Find returns the record for the given batch, document type, and version.
// Returns ErrNotFound when no such record exists.
func (c *Catalog) Find(batch string, t DocType, version int) (*Record, error) {
	i, ok := c.index[recordKey{batch, t, version}]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s %s version %d",
			ErrNotFound, batch, t, version,
		)
	}

	rec := c.records[i]
	return &rec, nil
}

// Records returns the records matching the given filters, ordered by
// batch, type, and version.
func (c *Catalog) Records(f Filters) []Record {
	out := make([]Record, 0, len(c.records))
	for _, rec := range c.records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Keys returns every storage key in the catalog in record order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.records))
	for i, rec := range c.records {
		keys[i] = rec.StorageKey
	}
	return keys
}

// Filters narrows catalog record listings.
type Filters struct {
	Batch  string `json:"batch,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

// FiltersFromQuery extracts filter criteria from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		Batch:  values.Get("batch"),
		Type:   values.Get("type"),
		Status: values.Get("status"),
	}
}

// Match reports whether a record satisfies every non-empty filter.
func (f Filters) Match(r Record) bool {
	if f.Batch != "" && r.Batch != f.Batch {
		return false
	}
	if f.Type != "" && !strings.EqualFold(f.Type, string(r.Type)) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(f.Status, r.PortalStatus) {
		return false
	}
	return true
}
