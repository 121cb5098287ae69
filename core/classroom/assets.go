package classroom

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
)

var ErrAssetUnavailable = errors.New("asset unavailable")

// AssetResult is the outcome of loading one asset. Err is set, wrapping ErrAssetUnavailable, when Loaded is false.
type AssetResult struct {
	Ref    string `json:"ref"`
	Loaded bool   `json:"loaded"`
	Size   int64  `json:"size,omitempty"`
	Err    error  `json:"-"`
}

// AssetLoader checks assets against a source and remembers the outcome.
// Failures caused by a cancelled context are not remembered.
type AssetLoader struct {
	src    core.AssetSource
	logger core.Logger

	mu    sync.RWMutex
	cache map[string]AssetResult
}

func NewAssetLoader(src core.AssetSource, logger core.Logger) *AssetLoader {
	return &AssetLoader{src: src, logger: logger, cache: make(map[string]AssetResult)}
}

// AssetName turns a public reference ("/classroom/scene.gltf") into a source name.
func AssetName(ref string) string {
	return strings.TrimPrefix(ref, "/")
}

func (l *AssetLoader) Load(ctx context.Context, ref string) AssetResult {
	l.mu.RLock()
	res, ok := l.cache[ref]
	l.mu.RUnlock()
	if ok {
		return res
	}

	res = AssetResult{Ref: ref}
	info, err := l.src.Stat(ctx, AssetName(ref))
	switch {
	case err != nil:
		res.Err = errors.Wrapf(ErrAssetUnavailable, "%s: %v", ref, err)
	case info.Size == 0:
		res.Err = errors.Wrapf(ErrAssetUnavailable, "%s: empty file", ref)
	default:
		res.Loaded = true
		res.Size = info.Size
	}
	if ctx.Err() != nil {
		return res
	}

	l.mu.Lock()
	l.cache[ref] = res
	l.mu.Unlock()
	return res
}

// LoadAll loads refs concurrently; results keep the order of refs.
func (l *AssetLoader) LoadAll(ctx context.Context, refs []string) []AssetResult {
	results := make([]AssetResult, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref string) {
			defer wg.Done()
			results[i] = l.Load(ctx, ref)
		}(i, ref)
	}
	wg.Wait()
	return results
}

// Available keeps the refs that load, e.g. the home page hero videos.
func (l *AssetLoader) Available(ctx context.Context, refs []string) []string {
	var ok []string
	for _, res := range l.LoadAll(ctx, refs) {
		if res.Loaded {
			ok = append(ok, res.Ref)
		} else {
			l.logger.Warn(fmt.Sprintf("classroom.AssetLoader: dropping %s", res.Ref), res.Err)
		}
	}
	return ok
}

// Resolve returns a copy of s where every model asset that fails to load is replaced by primitives:
// the room by a floor with walls, desks and chairs, and figures by boxes and spheres in their colors.
func (l *AssetLoader) Resolve(ctx context.Context, s Scene) (Scene, []AssetResult) {
	resolved := s.Copy()
	results := l.LoadAll(ctx, s.ModelRefs())

	failed := make(map[string]bool)
	for _, res := range results {
		if !res.Loaded {
			failed[res.Ref] = true
			l.logger.Warn(
				fmt.Sprintf("classroom.Resolve(%s): falling back to primitives for %s", s.Name, res.Ref),
				res.Err,
				map[string]interface{}{"scene": s.Name, "asset": res.Ref},
			)
		}
	}
	if len(failed) == 0 {
		return resolved, results
	}

	if failed[resolved.Room.Model] {
		resolved.Room.Model = ""
		resolved.Layout.Furniture = true
	}
	for name, f := range resolved.Figures {
		if failed[f.Model] {
			f.Model = ""
			resolved.Figures[name] = f
		}
	}
	return resolved, results
}
