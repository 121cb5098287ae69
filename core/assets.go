package core

import (
	"context"
	"errors"
	"io"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// AssetSource serves the static 3D models and videos. Names are slash separated, without a leading slash.
type AssetSource interface {
	// Stat returns ErrAssetNotFound when name does not exist.
	Stat(ctx context.Context, name string) (AssetInfo, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
