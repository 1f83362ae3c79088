package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/collate/pkg/storage"
)

// Fixed column names of the upstream review table.
const (
	columnBatch  = "Batch"
	columnCount  = "batch_count"
	columnStatus = "portal_status"
	columnReason = "reason"
)

const defaultPortalStatus = "Unknown"

// sampleTable is the built-in seed fixture used when the configured
// source is absent. It is not a production data source.
const sampleTable = `Batch,batch_count,portal_status,reason
B001,1,Pending,
B001,2,Accepted,Approved by agent
B002,1,Rejected,Missing information
B002,2,Pending,
B003,1,Accepted,Complete documentation
`

// Source supplies the raw review table for catalog loads.
type Source interface {
	// Open returns a reader over the CSV table. Returns ErrSourceMissing
	// when the configured source does not exist.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Describe identifies the source origin for logs.
	Describe() string
}

type fileSource struct {
	path string
}

// NewFileSource creates a Source reading the review table from local disk.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, s.path)
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	return f, nil
}

func (s *fileSource) Describe() string {
	return "file:" + s.path
}

type blobSource struct {
	store storage.System
	key   string
}

// NewBlobSource creates a Source reading the review table from object storage.
func NewBlobSource(store storage.System, key string) Source {
	return &blobSource{store: store, key: key}
}

func (s *blobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.store.Download(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, s.key)
		}
		return nil, fmt.Errorf("download %s: %w", s.key, err)
	}
	return obj.Body, nil
}

func (s *blobSource) Describe() string {
	return "blob:" + s.key
}

type sampleSource struct{}

// NewSampleSource creates a Source serving the built-in sample fixture.
func NewSampleSource() Source {
	return sampleSource{}
}

func (sampleSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(sampleTable)), nil
}

func (sampleSource) Describe() string {
	return "sample"
}

// parseTable reads the review table into one row per batch version.
// Batch and batch_count columns are required; portal_status and reason
// default per row when absent or blank.
func parseTable(r io.Reader) ([]tableRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", ErrSource)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrSource, err)
	}

	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	batchIdx, ok := cols[columnBatch]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %s", ErrSource, columnBatch)
	}
	countIdx, ok := cols[columnCount]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %s", ErrSource, columnCount)
	}

	statusIdx, hasStatus := cols[columnStatus]
	reasonIdx, hasReason := cols[columnReason]

	var rows []tableRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSource, line, err)
		}

		batch := strings.TrimSpace(record[batchIdx])
		if batch == "" {
			return nil, fmt.Errorf("%w: line %d: empty batch", ErrSource, line)
		}

		version, err := strconv.Atoi(strings.TrimSpace(record[countIdx]))
		if err != nil || version < 1 {
			return nil, fmt.Errorf(
				"%w: line %d: invalid batch_count %q",
				ErrSource, line, record[countIdx],
			)
		}

		row := tableRow{
			batch:        batch,
			version:      version,
			portalStatus: defaultPortalStatus,
		}
		if hasStatus {
			if v := strings.TrimSpace(record[statusIdx]); v != "" {
				row.portalStatus = v
			}
		}
		if hasReason {
			row.reason = strings.TrimSpace(record[reasonIdx])
		}

		rows = append(rows, row)
	}

	return rows, nil
}
