// Package naming turns nested relative paths into flat, collision-free file
// names for a single destination directory.
package naming

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Joiner replaces every path separator when flattening.
const Joiner = "_"

// Flatten returns the base candidate for rel: every separator, forward slash
// or the OS separator, becomes Joiner. "src/utils/helpers.rs" becomes
// "src_utils_helpers.rs"; a bare file name is returned unchanged.
func Flatten(rel string) string {
	rel = filepath.Clean(rel)
	rel = strings.ReplaceAll(rel, string(filepath.Separator), Joiner)
	return strings.ReplaceAll(rel, "/", Joiner)
}

// SplitExt splits name at its last dot. Names with no dot, or whose only dot
// is the leading one (".env"), are all stem. This differs from
// filter.Extension, which reports "env" for ".env"; collision suffixes go
// after the whole name there.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// Namer hands out destination names for one run. Every name it returns is
// reserved, so no two calls on the same Namer return names that would land
// on the same file. It is not safe for concurrent use.
type Namer struct {
	used     map[string]struct{}
	next     map[string]int
	foldCase bool
}

// Option configures a Namer.
type Option func(*Namer)

// WithCaseFolding makes reservations case-insensitive, for destinations on
// filesystems where "A.rs" and "a.rs" are the same file.
func WithCaseFolding(fold bool) Option {
	return func(n *Namer) {
		n.foldCase = fold
	}
}

// NewNamer returns an empty reservation table. Case folding defaults on for
// darwin and windows.
func NewNamer(opts ...Option) *Namer {
	n := &Namer{
		used:     make(map[string]struct{}),
		next:     make(map[string]int),
		foldCase: runtime.GOOS == "darwin" || runtime.GOOS == "windows",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Reserve flattens rel and reserves the result. On collision it appends the
// smallest unused positive integer before the extension:
// "x.rs", "x_1.rs", "x_2.rs".
func (n *Namer) Reserve(rel string) string {
	base := Flatten(rel)
	if n.tryReserve(base) {
		return base
	}

	key := n.key(base)
	stem, ext := SplitExt(base)
	i := n.next[key]
	if i < 1 {
		i = 1
	}
	for {
		candidate := fmt.Sprintf("%s%s%d%s", stem, Joiner, i, ext)
		i++
		if n.tryReserve(candidate) {
			n.next[key] = i
			return candidate
		}
	}
}

// Len is the number of reserved names.
func (n *Namer) Len() int {
	return len(n.used)
}

func (n *Namer) tryReserve(name string) bool {
	k := n.key(name)
	if _, taken := n.used[k]; taken {
		return false
	}
	n.used[k] = struct{}{}
	return true
}

func (n *Namer) key(name string) string {
	if n.foldCase {
		return strings.ToLower(name)
	}
	return name
}
