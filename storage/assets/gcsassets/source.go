// Package gcsassets serves assets from a Google Cloud Storage bucket.
package gcsassets

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/trezcool/eduverse/core"
)

type Source struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

var _ core.AssetSource = (*Source)(nil)

// NewClient creates a storage client. If credsFile is empty, application default credentials are used.
func NewClient(ctx context.Context, credsFile string) (*storage.Client, error) {
	if credsFile == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsFile))
}

func New(client *storage.Client, bucket string) *Source {
	return &Source{client: client, bucket: client.Bucket(bucket)}
}

func (s *Source) Stat(ctx context.Context, name string) (core.AssetInfo, error) {
	attrs, err := s.bucket.Object(name).Attrs(ctx)
	if err != nil {
		return core.AssetInfo{}, wrapErr(name, err)
	}
	return core.AssetInfo{Name: name, Size: attrs.Size, ContentType: attrs.ContentType}, nil
}

func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(name).NewReader(ctx)
	if err != nil {
		return nil, wrapErr(name, err)
	}
	return r, nil
}

func (s *Source) Close() error {
	return s.client.Close()
}

func wrapErr(name string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return errors.Wrap(core.ErrAssetNotFound, name)
	}
	return errors.Wrap(err, "gcs: "+name)
}
