package source

import (
	"bytes"
	"container/list"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/vacdoc/internal/background"
	"github.com/ivlev/vacdoc/internal/frame"
	"github.com/ivlev/vacdoc/internal/logging"
	"github.com/ivlev/vacdoc/internal/system"
)

// ErrNoImage is returned when a frame resolves to no file.
var ErrNoImage = errors.New("source: no image for frame")

type entry struct {
	path string
	img  *image.RGBA
	size int64
}

// Library decodes background images from a document root and caches them,
// least recently used first out, within a byte budget. It is safe for
// concurrent use.
type Library struct {
	fsys    fs.FS
	images  Decoder
	pdf     Decoder
	workers int
	budget  int64

	mu    sync.Mutex
	used  int64
	lru   *list.List // front = most recent
	items map[string]*list.Element
}

// Option configures a Library.
type Option func(*Library)

// WithWorkers bounds concurrent decoding in Preload.
func WithWorkers(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithBudget sets the cache budget in bytes. Zero disables caching.
func WithBudget(bytes int64) Option {
	return func(l *Library) { l.budget = bytes }
}

// WithPDFDPI sets the rasterization resolution of PDF backgrounds.
func WithPDFDPI(dpi int) Option {
	return func(l *Library) { l.pdf = &PDFDecoder{DPI: dpi} }
}

func NewLibrary(fsys fs.FS, opts ...Option) *Library {
	l := &Library{
		fsys:    fsys,
		images:  ImageDecoder{},
		pdf:     &PDFDecoder{},
		workers: 4,
		budget:  256 << 20,
		lru:     list.New(),
		items:   make(map[string]*list.Element),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Image returns the decoded file at path, relative to the library root.
func (l *Library) Image(path string) (image.Image, error) {
	if img, ok := l.cached(path); ok {
		return img, nil
	}

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	dec := l.images
	if isPDF(data) {
		dec = l.pdf
	}
	img, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	rgba := system.ToRGBA(img)
	l.store(path, rgba)
	return rgba, nil
}

// Frame returns the image bg shows at f together with its path.
func (l *Library) Frame(bg *background.Background, f frame.Frame) (image.Image, string, error) {
	path, ok := bg.ImagePath(f)
	if !ok {
		return nil, "", fmt.Errorf("%w %d", ErrNoImage, f)
	}
	img, err := l.Image(path)
	return img, path, err
}

// Preload decodes the images bg shows over [from, to] concurrently and
// returns how many distinct files were loaded. Resolution happens on the
// calling goroutine; only decoding runs on workers.
func (l *Library) Preload(ctx context.Context, bg *background.Background, from, to frame.Frame) (int, error) {
	if from > to {
		return 0, nil
	}
	seen := make(map[string]bool)
	var paths []string
	add := func(f frame.Frame) {
		if p, ok := bg.ImagePath(f); ok && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	// Every frame of the range shows either its own file or what the
	// first frame without one shows (the held file or the fallback).
	gap, hasGap := from, true
	for _, f := range bg.ImageFrames() {
		if f < from || f > to {
			continue
		}
		add(f)
		if hasGap && f == gap {
			if f == to {
				hasGap = false
			} else {
				gap++
			}
		}
	}
	if hasGap {
		add(gap)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := l.Image(p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	logging.Logger().Debug("source: preloaded", "from", from, "to", to, "files", len(paths))
	return len(paths), nil
}

// Len returns the number of cached images.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lru.Len()
}

// Used returns the bytes held by cached images.
func (l *Library) Used() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Purge empties the cache and recycles its buffers. Images obtained
// before Purge must not be used afterwards.
func (l *Library) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for e := l.lru.Front(); e != nil; e = e.Next() {
		system.PutImage(e.Value.(*entry).img)
	}
	l.lru.Init()
	l.items = make(map[string]*list.Element)
	l.used = 0
}

func (l *Library) cached(path string) (*image.RGBA, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.items[path]
	if !ok {
		return nil, false
	}
	l.lru.MoveToFront(e)
	return e.Value.(*entry).img, true
}

func (l *Library) store(path string, img *image.RGBA) {
	size := int64(len(img.Pix))
	if size > l.budget {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.items[path]; ok {
		// Decoded concurrently by another caller.
		l.lru.MoveToFront(e)
		return
	}
	l.items[path] = l.lru.PushFront(&entry{path: path, img: img, size: size})
	l.used += size

	for l.used > l.budget {
		back := l.lru.Back()
		old := back.Value.(*entry)
		l.lru.Remove(back)
		delete(l.items, old.path)
		l.used -= old.size
		logging.Logger().Debug("source: evicted", "path", old.path, "bytes", old.size)
	}
}
