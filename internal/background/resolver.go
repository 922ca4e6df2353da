package background

import (
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/ivlev/vacdoc/internal/frame"
	"github.com/ivlev/vacdoc/internal/logging"
)

// Resolver maps frames to image files under a document root. The directory
// listing behind a wildcard pattern is scanned once and cached until
// Invalidate is called or the pattern changes.
type Resolver struct {
	fsys    fs.FS
	pattern string

	scanned   bool
	wildcard  bool
	literal   string // prefix+suffix, or the whole pattern without wildcard
	literalOK bool
	frames    map[frame.Frame]string
	keys      []frame.Frame // sorted ascending
}

// NewResolver creates a resolver reading from fsys. A nil fsys resolves
// nothing.
func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// SetPattern changes the pattern, discarding the cache when it differs.
func (r *Resolver) SetPattern(pattern string) {
	if pattern == r.pattern {
		return
	}
	r.pattern = pattern
	r.Invalidate()
}

// SetRoot switches the document root and discards the cache.
func (r *Resolver) SetRoot(fsys fs.FS) {
	r.fsys = fsys
	r.Invalidate()
}

// Invalidate forces the next resolution to re-read disk state.
func (r *Resolver) Invalidate() {
	r.scanned = false
	r.wildcard = false
	r.frames = nil
	r.keys = nil
	r.literal = ""
	r.literalOK = false
}

// Resolve returns the path to display at frame f. With a wildcard
// pattern the exact frame wins; with hold the nearest earlier frame is
// used; otherwise the literal prefix+suffix file. ok is false when no
// file applies.
func (r *Resolver) Resolve(f frame.Frame, hold bool) (p string, ok bool) {
	r.scan()
	if !r.wildcard {
		return r.literal, r.literalOK
	}
	if p, ok := r.frames[f]; ok {
		return p, true
	}
	if hold {
		i := sort.Search(len(r.keys), func(i int) bool { return r.keys[i] >= f })
		if i > 0 {
			return r.frames[r.keys[i-1]], true
		}
	}
	return r.literal, r.literalOK
}

// Frames returns the frames that have their own file, ascending.
func (r *Resolver) Frames() []frame.Frame {
	r.scan()
	out := make([]frame.Frame, len(r.keys))
	copy(out, r.keys)
	return out
}

// Path substitutes f into the pattern without touching disk.
func (r *Resolver) Path(f frame.Frame) string {
	prefix, suffix, ok := SplitPattern(r.pattern)
	if !ok {
		return toFSPath(prefix)
	}
	return toFSPath(prefix + f.String() + suffix)
}

func (r *Resolver) scan() {
	if r.scanned {
		return
	}
	r.scanned = true
	if r.fsys == nil || r.pattern == "" {
		return
	}

	prefix, suffix, wildcard := SplitPattern(r.pattern)
	r.wildcard = wildcard
	r.literal = toFSPath(prefix + suffix)
	r.literalOK = r.isFile(r.literal)
	if !wildcard {
		return
	}

	fsPrefix := toFSPath(prefix + "x")
	dir, base := path.Split(fsPrefix)
	base = strings.TrimSuffix(base, "x")
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		dir = "."
	}

	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		logging.Logger().Warn("background: cannot list frame directory", "dir", dir, "err", err)
		return
	}

	r.frames = make(map[frame.Frame]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) < len(base)+len(suffix) || !strings.HasPrefix(name, base) || !strings.HasSuffix(name, suffix) {
			continue
		}
		middle := name[len(base) : len(name)-len(suffix)]
		if !isInteger(middle) {
			continue
		}
		n, err := strconv.Atoi(middle)
		if err != nil {
			continue
		}
		f := frame.Frame(n)
		// Prefer the unpadded spelling when "img01" and "img1" coexist.
		if _, dup := r.frames[f]; dup && middle != f.String() {
			continue
		}
		r.frames[f] = path.Join(dir, name)
	}

	r.keys = make([]frame.Frame, 0, len(r.frames))
	for f := range r.frames {
		r.keys = append(r.keys, f)
	}
	sort.Slice(r.keys, func(i, j int) bool { return r.keys[i] < r.keys[j] })

	logging.Logger().Debug("background: scanned frames", "dir", dir, "pattern", r.pattern, "frames", len(r.keys), "fallback", r.literalOK)
}

func (r *Resolver) isFile(name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(r.fsys, name)
	return err == nil && !info.IsDir()
}

// toFSPath turns a document-relative path into io/fs form.
func toFSPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}
