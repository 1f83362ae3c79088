package viewer

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/JaimeStill/collate/pkg/formatting"
	"github.com/JaimeStill/collate/pkg/storage"
)

// inlineStrategy embeds the blob directly as a base64 data URI inside
// an embed element. Oversized blobs fall through to the next strategy.
type inlineStrategy struct {
	store   storage.System
	maxSize int64
}

func (s *inlineStrategy) Name() string { return StrategyInline }

func (s *inlineStrategy) Render(ctx context.Context, key string) (*View, error) {
	encoded, contentType, err := inlineData(ctx, s.store, key, s.maxSize)
	if err != nil {
		return nil, err
	}

	return &View{
		Key:      key,
		Strategy: s.Name(),
		HTML: fmt.Sprintf(
			`<embed src="data:%s;base64,%s" type="%s" width="100%%" height="100%%">`,
			contentType, encoded, contentType,
		),
	}, nil
}

// frameStrategy embeds the blob as a base64 data URI inside an iframe,
// for hosts that block embed elements.
type frameStrategy struct {
	store   storage.System
	maxSize int64
}

func (s *frameStrategy) Name() string { return StrategyFrame }

func (s *frameStrategy) Render(ctx context.Context, key string) (*View, error) {
	encoded, contentType, err := inlineData(ctx, s.store, key, s.maxSize)
	if err != nil {
		return nil, err
	}

	return &View{
		Key:      key,
		Strategy: s.Name(),
		HTML: fmt.Sprintf(
			`<iframe src="data:%s;base64,%s" width="100%%" height="100%%" style="border:none"></iframe>`,
			contentType, encoded,
		),
	}, nil
}

// signedStrategy frames a short-lived signed URL from the object store.
type signedStrategy struct {
	store storage.System
	ttl   time.Duration
}

func (s *signedStrategy) Name() string { return StrategySigned }

func (s *signedStrategy) Render(ctx context.Context, key string) (*View, error) {
	signed, err := s.store.SignedURL(ctx, key, s.ttl)
	if err != nil {
		return nil, err
	}

	return &View{
		Key:      key,
		Strategy: s.Name(),
		URL:      signed,
		HTML:     frameURL(signed),
	}, nil
}

// pdfjsStrategy frames a hosted pdf.js viewer pointed at a signed URL,
// for browsers without a native PDF plugin.
type pdfjsStrategy struct {
	store  storage.System
	ttl    time.Duration
	viewer string
}

func (s *pdfjsStrategy) Name() string { return StrategyPDFJS }

func (s *pdfjsStrategy) Render(ctx context.Context, key string) (*View, error) {
	signed, err := s.store.SignedURL(ctx, key, s.ttl)
	if err != nil {
		return nil, err
	}

	viewerURL := fmt.Sprintf("%s?file=%s", s.viewer, url.QueryEscape(signed))

	return &View{
		Key:      key,
		Strategy: s.Name(),
		URL:      viewerURL,
		HTML:     frameURL(viewerURL),
	}, nil
}

// proxyStrategy frames the service's own blob download endpoint so the
// browser never needs direct store access.
type proxyStrategy struct {
	store    storage.System
	basePath string
}

func (s *proxyStrategy) Name() string { return StrategyProxy }

func (s *proxyStrategy) Render(ctx context.Context, key string) (*View, error) {
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}

	proxied := s.basePath + "/" + key

	return &View{
		Key:      key,
		Strategy: s.Name(),
		URL:      proxied,
		HTML:     frameURL(proxied),
	}, nil
}

// inlineData fetches a blob for data-URI embedding, enforcing the
// inline size cap before downloading.
func inlineData(ctx context.Context, store storage.System, key string, maxSize int64) (string, string, error) {
	meta, err := store.Find(ctx, key)
	if err != nil {
		return "", "", err
	}
	if meta.Size > maxSize {
		return "", "", fmt.Errorf("%w: %s is %s, limit %s",
			ErrOversized, key,
			formatting.FormatBytes(meta.Size, 1),
			formatting.FormatBytes(maxSize, 1),
		)
	}

	obj, err := store.Download(ctx, key)
	if err != nil {
		return "", "", err
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", "", fmt.Errorf("read blob %s: %w", key, err)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	return base64.StdEncoding.EncodeToString(data), contentType, nil
}

func frameURL(u string) string {
	return fmt.Sprintf(
		`<iframe src="%s" width="100%%" height="100%%" style="border:none"></iframe>`,
		u,
	)
}
