package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/collate/internal/audit"
	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/pkg/pagination"
)

// System manages review sessions and their audit exports.
type System interface {
	// Handler returns the HTTP handler for review endpoints.
	Handler() *Handler

	// Create starts a session over a freshly loaded catalog.
	Create(ctx context.Context) (*Snapshot, error)

	// List returns one page of session summaries.
	List(page pagination.PageRequest) pagination.PageResult[Summary]

	// Get returns the snapshot for a session.
	Get(id string) (*Snapshot, error)

	// Delete discards a session.
	Delete(id string) error

	// SelectBatch activates a batch within a session.
	SelectBatch(id, batch string) (*Snapshot, error)

	// SelectDocType activates a document type within a session.
	SelectDocType(id string, docType catalog.DocType) (*Snapshot, error)

	// SelectComparison sets a session's active version pair.
	SelectComparison(id string, a, b int) (*Snapshot, error)

	// RecordDecision appends an audit entry for a session's active
	// comparison.
	RecordDecision(id, decision, notes string) (*audit.Entry, error)

	// Status returns a session's review status for a (batch, type)
	// combination.
	Status(id, batch string, docType catalog.DocType) (Status, error)

	// Audit returns a session's audit entries in append order.
	Audit(id string) ([]audit.Entry, error)

	// ExportCSV serializes a session's audit trail without persisting.
	ExportCSV(id string) (string, error)

	// Export serializes a session's audit trail and persists it to the
	// object store.
	Export(ctx context.Context, id string) (*audit.ExportResult, error)

	// Pairs returns the candidate comparison pairs for a (batch, type)
	// selection without touching session state.
	Pairs(ctx context.Context, batch string, docType catalog.DocType) ([]Pair, error)
}

type system struct {
	catalog    catalog.System
	exporter   *audit.Exporter
	registry   *Registry
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a review system over the given catalog and exporter.
func New(
	cat catalog.System,
	exporter *audit.Exporter,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &system{
		catalog:    cat,
		exporter:   exporter,
		registry:   NewRegistry(),
		logger:     logger.With("system", "review"),
		pagination: pagination,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *system) Create(ctx context.Context) (*Snapshot, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	session := NewSession(uuid.NewString(), cat)
	s.registry.Add(session)

	s.logger.Info("session created",
		"session", session.ID(),
		"batches", len(cat.Batches()),
		"active", s.registry.Len(),
	)

	return session.Snapshot(), nil
}

func (s *system) List(page pagination.PageRequest) pagination.PageResult[Summary] {
	ids := s.registry.IDs()
	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		s.registry.Do(id, func(sess *Session) error {
			summaries = append(summaries, sess.Summary())
			return nil
		})
	}
	return pagination.Paginate(summaries, page)
}

func (s *system) Get(id string) (*Snapshot, error) {
	return s.snapshotOp(id, func(*Session) error { return nil })
}

func (s *system) Delete(id string) error {
	if err := s.registry.Remove(id); err != nil {
		return err
	}
	s.logger.Info("session discarded", "session", id, "active", s.registry.Len())
	return nil
}

func (s *system) SelectBatch(id, batch string) (*Snapshot, error) {
	return s.snapshotOp(id, func(sess *Session) error {
		return sess.SelectBatch(batch)
	})
}

func (s *system) SelectDocType(id string, docType catalog.DocType) (*Snapshot, error) {
	return s.snapshotOp(id, func(sess *Session) error {
		sess.SelectDocType(docType)
		return nil
	})
}

func (s *system) SelectComparison(id string, a, b int) (*Snapshot, error) {
	return s.snapshotOp(id, func(sess *Session) error {
		return sess.SelectComparison(a, b)
	})
}

func (s *system) RecordDecision(id, decision, notes string) (*audit.Entry, error) {
	var entry *audit.Entry
	err := s.registry.Do(id, func(sess *Session) error {
		recorded, err := sess.RecordDecision(decision, notes)
		if err != nil {
			return err
		}
		entry = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("decision recorded",
		"session", id,
		"batch", entry.Batch,
		"type", entry.DocType,
		"versions", entry.Versions,
		"decision", entry.Decision,
	)

	return entry, nil
}

func (s *system) Status(id, batch string, docType catalog.DocType) (Status, error) {
	var status Status
	err := s.registry.Do(id, func(sess *Session) error {
		status = sess.Status(batch, docType)
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *system) Audit(id string) ([]audit.Entry, error) {
	var entries []audit.Entry
	err := s.registry.Do(id, func(sess *Session) error {
		entries = sess.Audit()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *system) ExportCSV(id string) (string, error) {
	records, err := s.auditFields(id)
	if err != nil {
		return "", err
	}
	return audit.ExportCSV(records)
}

func (s *system) Export(ctx context.Context, id string) (*audit.ExportResult, error) {
	// Snapshot the records under the session lock; persistence runs
	// outside it.
	records, err := s.auditFields(id)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, records)
}

func (s *system) Pairs(ctx context.Context, batch string, docType catalog.DocType) ([]Pair, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	return GeneratePairs(cat.Versions(batch, docType)), nil
}

func (s *system) snapshotOp(id string, op func(*Session) error) (*Snapshot, error) {
	var snap *Snapshot
	err := s.registry.Do(id, func(sess *Session) error {
		if err := op(sess); err != nil {
			return err
		}
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *system) auditFields(id string) ([]audit.Fields, error) {
	var records []audit.Fields
	err := s.registry.Do(id, func(sess *Session) error {
		records = audit.FieldsOf(sess.Audit())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
