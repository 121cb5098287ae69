// Package fsassets serves assets from a local directory.
package fsassets

import (
	"context"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"

	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
)

type Source struct {
	fsys fs.FS
}

var _ core.AssetSource = (*Source)(nil)

func New(dir string) *Source {
	return &Source{fsys: os.DirFS(dir)}
}

// NewFS is used by tests with an in-memory file system.
func NewFS(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

func (s *Source) Stat(_ context.Context, name string) (core.AssetInfo, error) {
	fi, err := fs.Stat(s.fsys, path.Clean(name))
	if err != nil {
		return core.AssetInfo{}, wrapErr(name, err)
	}
	if fi.IsDir() {
		return core.AssetInfo{}, errors.Wrap(core.ErrAssetNotFound, name)
	}
	return core.AssetInfo{Name: name, Size: fi.Size(), ContentType: mime.TypeByExtension(path.Ext(name))}, nil
}

func (s *Source) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := s.fsys.Open(path.Clean(name))
	if err != nil {
		return nil, wrapErr(name, err)
	}
	return f, nil
}

func wrapErr(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return errors.Wrap(core.ErrAssetNotFound, name)
	}
	return errors.Wrap(err, name)
}
