package corpus

import (
	"context"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/hupe1980/relterm/blobstore"
)

// Discover lists the blobs under prefix whose names match any include
// pattern and no exclude pattern. Patterns use glob syntax with '/' as the
// separator, so "*" does not cross directories and "**" does. An empty
// include list matches everything. Names are returned sorted.
func Discover(ctx context.Context, store blobstore.Store, prefix string, include, exclude []string) ([]string, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}

	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("corpus: list %q: %w", prefix, err)
	}

	matched := names[:0]
	for _, name := range names {
		if len(inc) > 0 && !matchAny(inc, name) {
			continue
		}
		if matchAny(exc, name) {
			continue
		}
		matched = append(matched, name)
	}
	return matched, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("corpus: invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
