package system

import (
	"image"
	"image/draw"
	"sync"
)

// ImagePool повторно использует буферы *image.RGBA одного размера.
// Кадры одной последовательности фона обычно одинаковы по размеру, поэтому
// вытесненные из кэша кадры идут на следующие преобразования.
type ImagePool struct {
	pools map[image.Point]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = NewImagePool()

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Point]*sync.Pool)}
}

// GetImage возвращает буфер RGBA размером rect из общего пула.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutImage возвращает img в общий пул.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

// ToRGBA копирует img в буфер RGBA из пула.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := GetImage(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.Size()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(image.Rectangle{Max: key})
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	img := pool.Get().(*image.RGBA)
	img.Rect = rect
	return img
}

func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.Size()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
