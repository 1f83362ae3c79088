package storage

import (
	"io"
	"time"
)

// Metadata describes a stored object without its content.
type Metadata struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
}

// Object couples an object's content stream with the headers needed to
// serve it. The caller must close Body.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ListResult holds one page of object metadata. NextMarker resumes
// listing when Truncated is true.
type ListResult struct {
	Objects    []Metadata `json:"objects"`
	NextMarker string     `json:"next_marker,omitempty"`
	Truncated  bool       `json:"truncated"`
}
