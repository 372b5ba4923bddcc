// Package walk enumerates candidate files under a source tree.
//
// Traversal is depth-first and lazy: Candidates returns an iterator that
// touches the filesystem only as it is consumed. Ignored directories are
// matched by name and pruned before their contents are read, so large
// dependency or build trees cost a single directory entry each.
package walk

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flatcopy/internal/errors"
	"flatcopy/pkg/types"
)

// Options describes one traversal.
type Options struct {
	// Root is the source directory. Relative paths in Targets and every
	// Candidate.RelPath are relative to it.
	Root string
	// Targets restricts traversal to these subdirectories. Empty means the
	// whole tree under Root.
	Targets []string
	// IgnoredDirs are directory names (or glob patterns over names) whose
	// subtrees are never entered.
	IgnoredDirs []string
	// PruneDirs are absolute directories never entered, whatever their name.
	PruneDirs []string
}

// Walker produces candidates for one Options value. A Walker holds no
// traversal state; each call to Candidates starts over.
type Walker struct {
	root    string
	targets []string
	ignore  *Matcher
	prune   map[string]struct{}
}

// New validates opts and compiles the ignore patterns.
func New(opts Options) (*Walker, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.NewConfigError("cannot resolve source directory", opts.Root, errors.InvalidConfig, err)
	}
	root = resolveLinks(root)
	ignore, err := NewMatcher(opts.IgnoredDirs)
	if err != nil {
		return nil, err
	}
	prune := make(map[string]struct{}, len(opts.PruneDirs))
	for _, p := range opts.PruneDirs {
		if abs, err := filepath.Abs(p); err == nil {
			prune[abs] = struct{}{}
			prune[resolveLinks(abs)] = struct{}{}
		}
	}
	return &Walker{
		root:    root,
		targets: append([]string(nil), opts.Targets...),
		ignore:  ignore,
		prune:   prune,
	}, nil
}

// Candidates returns a fresh lazy sequence of files. A non-nil error in the
// sequence is a *errors.TraversalError warning: the entry it names was
// skipped and iteration continues.
func (w *Walker) Candidates() iter.Seq2[types.Candidate, error] {
	return func(yield func(types.Candidate, error) bool) {
		roots, warnings := w.traversalRoots()
		for _, warn := range warnings {
			if !yield(types.Candidate{}, warn) {
				return
			}
		}
		for _, start := range roots {
			if !w.walkTree(start, yield) {
				return
			}
		}
	}
}

// walkTree walks one traversal root. It returns false when the consumer
// stopped the iteration.
func (w *Walker) walkTree(start string, yield func(types.Candidate, error) bool) bool {
	stopped := false
	emit := func(c types.Candidate, err error) error {
		if !yield(c, err) {
			stopped = true
			return filepath.SkipAll
		}
		return nil
	}

	_ = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if stop := emit(types.Candidate{}, errors.NewTraversalError("cannot read", path, err)); stop != nil {
				return stop
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if w.pruned(path) {
				return filepath.SkipDir
			}
			if path != start && w.ignore.Match(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			info, statErr := os.Stat(path)
			if statErr != nil {
				return emit(types.Candidate{}, errors.NewTraversalError("broken symlink", path, statErr))
			}
			if !info.Mode().IsRegular() {
				// Symlinked directories are not followed.
				return nil
			}
		default:
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return emit(types.Candidate{}, errors.NewTraversalError("cannot compute relative path", path, relErr))
		}
		return emit(types.Candidate{AbsPath: path, RelPath: rel}, nil)
	})
	return !stopped
}

// traversalRoots resolves Targets against Root, dropping targets that escape
// the root, do not exist, or sit inside another target.
func (w *Walker) traversalRoots() ([]string, []error) {
	if len(w.targets) == 0 {
		return []string{w.root}, nil
	}

	var warnings []error
	resolved := make([]string, 0, len(w.targets))
	for _, t := range w.targets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		abs := t
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(w.root, t)
		}
		abs = resolveLinks(filepath.Clean(abs))
		if !isUnder(abs, w.root) {
			warnings = append(warnings, errors.NewTraversalError("target directory is outside the source directory", t, nil))
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			warnings = append(warnings, errors.NewTraversalError("target directory not found", t, err))
			continue
		}
		if !info.IsDir() {
			warnings = append(warnings, errors.NewTraversalError("target is not a directory", t, nil))
			continue
		}
		resolved = append(resolved, abs)
	}

	sort.Strings(resolved)
	roots := make([]string, 0, len(resolved))
	for _, r := range resolved {
		nested := false
		for _, kept := range roots {
			if isUnder(r, kept) {
				nested = true
				break
			}
		}
		if !nested {
			roots = append(roots, r)
		}
	}
	return roots, warnings
}

func (w *Walker) pruned(path string) bool {
	_, ok := w.prune[path]
	return ok
}

// resolveLinks follows symlinks in path when it exists, so a symlinked
// source or target directory is walked at its real location.
func resolveLinks(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

// isUnder reports whether path is base or lies below it.
func isUnder(path, base string) bool {
	if path == base {
		return true
	}
	sep := string(filepath.Separator)
	if strings.HasSuffix(base, sep) {
		return strings.HasPrefix(path, base)
	}
	return strings.HasPrefix(path, base+sep)
}
