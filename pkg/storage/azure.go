package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"

	"github.com/JaimeStill/collate/pkg/lifecycle"
)

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

func newAzure(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage", "provider", ProviderAzure),
	}, nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup("storage", func() error {
		_, err := a.client.CreateContainer(lc.Context(), a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return fmt.Errorf("initialize container %s: %w", a.container, err)
		}

		a.logger.Info("storage container ready", "container", a.container)
		return nil
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, a.container, key, reader, opts)
	if err != nil {
		return a.wrapError("upload", key, err)
	}

	return nil
}

func (a *azure) Download(ctx context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		return nil, a.wrapError("download", key, err)
	}

	return &Object{
		Body:          resp.Body,
		ContentType:   strVal(resp.ContentType),
		ContentLength: intVal(resp.ContentLength),
	}, nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	if err != nil {
		return a.wrapError("delete", key, err)
	}

	return nil
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, a.wrapError("check", key, err)
	}

	return true, nil
}

func (a *azure) Find(ctx context.Context, key string) (*Metadata, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	props, err := a.blobClient(key).GetProperties(ctx, nil)
	if err != nil {
		return nil, a.wrapError("find", key, err)
	}

	meta := &Metadata{
		Key:         key,
		Size:        intVal(props.ContentLength),
		ContentType: strVal(props.ContentType),
	}
	if props.LastModified != nil {
		meta.LastModified = *props.LastModified
	}
	if props.ETag != nil {
		meta.ETag = string(*props.ETag)
	}

	return meta, nil
}

func (a *azure) List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error) {
	opts := &azblob.ListBlobsFlatOptions{
		MaxResults: &maxResults,
	}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	if marker != "" {
		opts.Marker = &marker
	}

	pager := a.client.NewListBlobsFlatPager(a.container, opts)

	result := &ListResult{Objects: []Metadata{}}
	if !pager.More() {
		return result, nil
	}

	page, err := pager.NextPage(ctx)
	if err != nil {
		return nil, a.wrapError("list", prefix, err)
	}

	for _, item := range page.Segment.BlobItems {
		meta := Metadata{Key: strVal(item.Name)}
		if p := item.Properties; p != nil {
			meta.Size = intVal(p.ContentLength)
			meta.ContentType = strVal(p.ContentType)
			if p.LastModified != nil {
				meta.LastModified = *p.LastModified
			}
			if p.ETag != nil {
				meta.ETag = string(*p.ETag)
			}
		}
		result.Objects = append(result.Objects, meta)
	}

	if next := strVal(page.NextMarker); next != "" {
		result.NextMarker = next
		result.Truncated = true
	}

	return result, nil
}

func (a *azure) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	exists, err := a.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}

	url, err := a.blobClient(key).GetSASURL(
		sas.BlobPermissions{Read: true},
		time.Now().UTC().Add(ttl),
		nil,
	)
	if err != nil {
		return "", a.wrapError("sign", key, err)
	}

	return url, nil
}

func (a *azure) blobClient(key string) *blob.Client {
	return a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)
}

func (a *azure) wrapError(op, key string, err error) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return ErrNotFound
	case bloberror.HasCode(err, bloberror.AuthorizationFailure, bloberror.AuthenticationFailed):
		return fmt.Errorf("%w: %s %s", ErrAccessDenied, op, key)
	default:
		return fmt.Errorf("%s blob %s: %w", op, key, err)
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
