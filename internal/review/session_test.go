package review_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"testing"

	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/internal/review"
	"github.com/JaimeStill/collate/pkg/pagination"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPagination() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	sys := catalog.New(catalog.NewSampleSource(), nil, discardLogger(), testPagination())
	cat, err := sys.Load(context.Background())
	if err != nil {
		t.Fatalf("load sample catalog: %v", err)
	}
	return cat
}

func newSession(t *testing.T) *review.Session {
	t.Helper()
	return review.NewSession("test-session", sampleCatalog(t))
}

func TestNewSessionDefaults(t *testing.T) {
	snap := newSession(t).Snapshot()

	if snap.Batch != "B001" {
		t.Errorf("batch: got %s, want B001", snap.Batch)
	}
	if snap.DocType != catalog.DocTypeCI {
		t.Errorf("doc type: got %s, want CI", snap.DocType)
	}
	if !snap.Comparable {
		t.Fatal("comparable: got false, want true")
	}
	if snap.Comparison.A != 1 || snap.Comparison.B != 2 {
		t.Errorf("comparison: got %v, want (1,2)", snap.Comparison)
	}
	if want := []string{"B001", "B002", "B003"}; !slices.Equal(snap.Batches, want) {
		t.Errorf("batches: got %v, want %v", snap.Batches, want)
	}
	if len(snap.Pairs) != 1 {
		t.Errorf("pairs: got %d, want 1", len(snap.Pairs))
	}
	if snap.AuditCount != 0 {
		t.Errorf("audit count: got %d, want 0", snap.AuditCount)
	}
}

func TestSelectBatch(t *testing.T) {
	t.Run("keeps valid comparison across batches", func(t *testing.T) {
		sess := newSession(t)
		if err := sess.SelectBatch("B002"); err != nil {
			t.Fatalf("SelectBatch() error = %v", err)
		}

		snap := sess.Snapshot()
		if snap.Batch != "B002" {
			t.Errorf("batch: got %s, want B002", snap.Batch)
		}
		if snap.Comparison.A != 1 || snap.Comparison.B != 2 {
			t.Errorf("comparison: got %v, want (1,2)", snap.Comparison)
		}
	})

	t.Run("single-version batch is not comparable", func(t *testing.T) {
		sess := newSession(t)
		if err := sess.SelectBatch("B003"); err != nil {
			t.Fatalf("SelectBatch() error = %v", err)
		}

		snap := sess.Snapshot()
		if snap.Comparable {
			t.Error("comparable: got true, want false")
		}
		if snap.Comparison != nil {
			t.Errorf("comparison: got %v, want nil", snap.Comparison)
		}
		if len(snap.Pairs) != 0 {
			t.Errorf("pairs: got %d, want 0", len(snap.Pairs))
		}
	})

	t.Run("restores default pair on return to multi-version batch", func(t *testing.T) {
		sess := newSession(t)
		if err := sess.SelectBatch("B003"); err != nil {
			t.Fatalf("SelectBatch(B003) error = %v", err)
		}
		if err := sess.SelectBatch("B001"); err != nil {
			t.Fatalf("SelectBatch(B001) error = %v", err)
		}

		snap := sess.Snapshot()
		if !snap.Comparable {
			t.Fatal("comparable: got false, want true")
		}
		if snap.Comparison.A != 1 || snap.Comparison.B != 2 {
			t.Errorf("comparison: got %v, want default (1,2)", snap.Comparison)
		}
	})

	t.Run("rejects unknown batch without mutation", func(t *testing.T) {
		sess := newSession(t)
		before := sess.Snapshot()

		err := sess.SelectBatch("B999")
		if !errors.Is(err, review.ErrValidation) {
			t.Fatalf("SelectBatch() error = %v, want ErrValidation", err)
		}

		if !reflect.DeepEqual(sess.Snapshot(), before) {
			t.Error("state mutated by rejected selection")
		}
	})
}

func TestSelectDocType(t *testing.T) {
	sess := newSession(t)
	sess.SelectDocType(catalog.DocTypePL)

	snap := sess.Snapshot()
	if snap.DocType != catalog.DocTypePL {
		t.Errorf("doc type: got %s, want PL", snap.DocType)
	}
	if !snap.Comparable {
		t.Error("comparable: got false, want true")
	}
	if snap.Versions[0].StorageKey != "PL/B001/B001_1.pdf" {
		t.Errorf("storage key: got %s, want PL/B001/B001_1.pdf", snap.Versions[0].StorageKey)
	}
}

func TestSelectComparison(t *testing.T) {
	t.Run("selects available pair", func(t *testing.T) {
		sess := newSession(t)
		if err := sess.SelectComparison(2, 1); err != nil {
			t.Fatalf("SelectComparison() error = %v", err)
		}

		snap := sess.Snapshot()
		if snap.Comparison.A != 2 || snap.Comparison.B != 1 {
			t.Errorf("comparison: got %v, want (2,1)", snap.Comparison)
		}
	})

	t.Run("idempotent reselection", func(t *testing.T) {
		sess := newSession(t)
		if err := sess.SelectComparison(1, 2); err != nil {
			t.Fatalf("first SelectComparison() error = %v", err)
		}
		once := sess.Snapshot()

		if err := sess.SelectComparison(1, 2); err != nil {
			t.Fatalf("second SelectComparison() error = %v", err)
		}

		if !reflect.DeepEqual(sess.Snapshot(), once) {
			t.Error("reselecting the same pair changed state")
		}
	})

	t.Run("rejects equal versions", func(t *testing.T) {
		sess := newSession(t)
		before := sess.Snapshot()

		err := sess.SelectComparison(1, 1)
		if !errors.Is(err, review.ErrValidation) {
			t.Fatalf("SelectComparison() error = %v, want ErrValidation", err)
		}
		if !reflect.DeepEqual(sess.Snapshot(), before) {
			t.Error("state mutated by rejected selection")
		}
	})

	t.Run("rejects absent version", func(t *testing.T) {
		sess := newSession(t)
		before := sess.Snapshot()

		err := sess.SelectComparison(1, 9)
		if !errors.Is(err, review.ErrValidation) {
			t.Fatalf("SelectComparison() error = %v, want ErrValidation", err)
		}
		if !reflect.DeepEqual(sess.Snapshot(), before) {
			t.Error("state mutated by rejected selection")
		}
	})
}

func TestRecordDecision(t *testing.T) {
	t.Run("appends entry and marks reviewed", func(t *testing.T) {
		sess := newSession(t)

		entry, err := sess.RecordDecision(review.DecisionReject, "missing appendix")
		if err != nil {
			t.Fatalf("RecordDecision() error = %v", err)
		}

		if entry.Batch != "B001" {
			t.Errorf("batch: got %s, want B001", entry.Batch)
		}
		if entry.DocType != "CI" {
			t.Errorf("doc type: got %s, want CI", entry.DocType)
		}
		if entry.Versions != "1-2" {
			t.Errorf("versions: got %s, want 1-2", entry.Versions)
		}
		if entry.Status != "reviewed" {
			t.Errorf("status: got %s, want reviewed", entry.Status)
		}
		if entry.Decision != review.DecisionReject {
			t.Errorf("decision: got %s, want %s", entry.Decision, review.DecisionReject)
		}
		if entry.Notes != "missing appendix" {
			t.Errorf("notes: got %q, want missing appendix", entry.Notes)
		}
		if entry.Timestamp == "" {
			t.Error("timestamp: got empty")
		}

		if got := sess.Status("B001", catalog.DocTypeCI); got != review.StatusReviewed {
			t.Errorf("status: got %s, want %s", got, review.StatusReviewed)
		}
	})

	t.Run("defaults to accept", func(t *testing.T) {
		sess := newSession(t)

		entry, err := sess.RecordDecision("", "")
		if err != nil {
			t.Fatalf("RecordDecision() error = %v", err)
		}
		if entry.Decision != review.DecisionAccept {
			t.Errorf("decision: got %s, want %s", entry.Decision, review.DecisionAccept)
		}
	})

	t.Run("rejects unknown decision", func(t *testing.T) {
		sess := newSession(t)

		_, err := sess.RecordDecision("Escalate", "")
		if !errors.Is(err, review.ErrValidation) {
			t.Fatalf("RecordDecision() error = %v, want ErrValidation", err)
		}
		if len(sess.Audit()) != 0 {
			t.Error("rejected decision appended an entry")
		}
	})

	t.Run("requires comparable selection", func(t *testing.T) {
		sess := newSession(t)
		if err := sess.SelectBatch("B003"); err != nil {
			t.Fatalf("SelectBatch() error = %v", err)
		}

		_, err := sess.RecordDecision(review.DecisionAccept, "")
		if !errors.Is(err, review.ErrValidation) {
			t.Fatalf("RecordDecision() error = %v, want ErrValidation", err)
		}
	})

	t.Run("audit trail is append-only", func(t *testing.T) {
		sess := newSession(t)

		notes := []string{"first", "second", "third"}
		for _, n := range notes {
			if _, err := sess.RecordDecision("", n); err != nil {
				t.Fatalf("RecordDecision(%q) error = %v", n, err)
			}
		}

		entries := sess.Audit()
		if len(entries) != len(notes) {
			t.Fatalf("entries: got %d, want %d", len(entries), len(notes))
		}
		for i, entry := range entries {
			if entry.Notes != notes[i] {
				t.Errorf("entries[%d].Notes = %q, want %q", i, entry.Notes, notes[i])
			}
		}
	})
}

func TestStatus(t *testing.T) {
	sess := newSession(t)

	if got := sess.Status("B002", catalog.DocTypePL); got != review.StatusNotReviewed {
		t.Errorf("unseen key: got %s, want %s", got, review.StatusNotReviewed)
	}

	if _, err := sess.RecordDecision("", ""); err != nil {
		t.Fatalf("RecordDecision() error = %v", err)
	}

	// Reviewed status survives selection changes.
	if err := sess.SelectBatch("B002"); err != nil {
		t.Fatalf("SelectBatch() error = %v", err)
	}
	if got := sess.Status("B001", catalog.DocTypeCI); got != review.StatusReviewed {
		t.Errorf("reviewed key: got %s, want %s", got, review.StatusReviewed)
	}
	if got := sess.Status("B001", catalog.DocTypePL); got != review.StatusNotReviewed {
		t.Errorf("sibling type: got %s, want %s", got, review.StatusNotReviewed)
	}
}

func TestSnapshotVersions(t *testing.T) {
	snap := newSession(t).Snapshot()

	if len(snap.Versions) != 2 {
		t.Fatalf("versions: got %d, want 2", len(snap.Versions))
	}

	first := snap.Versions[0]
	if first.Version != 1 || first.PortalStatus != "Pending" {
		t.Errorf("version 1: got %+v, want Pending", first)
	}

	second := snap.Versions[1]
	if second.Version != 2 || second.PortalStatus != "Accepted" {
		t.Errorf("version 2: got %+v, want Accepted", second)
	}
	if second.Reason != "Approved by agent" {
		t.Errorf("version 2 reason: got %q, want Approved by agent", second.Reason)
	}
	if second.StorageKey != "CI/B001/B001_2.pdf" {
		t.Errorf("version 2 storage key: got %s, want CI/B001/B001_2.pdf", second.StorageKey)
	}
	if second.Filename != "B001_2.pdf" {
		t.Errorf("version 2 filename: got %s, want B001_2.pdf", second.Filename)
	}
}
