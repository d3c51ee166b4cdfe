// Package imgcache implements shaq's loaded-image texture cache: a
// fixed-capacity, least-recently-used cache keyed by filepath, ported from
// original_source/src/image.c's image_load_from_file. The original scans a
// flat array for the lowest sequence-number entry to evict; this port uses
// container/list for an O(1) touch/evict instead of a linear scan, since Go
// has no SIMD-friendly reason to prefer the array-scan approach and the
// corpus has no off-the-shelf LRU library to reach for instead.
package imgcache

import (
	"container/list"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Image is decoded pixel data ready for a GL texture upload. Go's
// image.Image interface replaces the original's raw stb_image byte buffer;
// decode below always normalises to image.NRGBA so callers get one
// consistent four-channel layout regardless of source format.
type Image struct {
	Filepath string
	Pix      *image.NRGBA
}

func (img *Image) Width() int  { return img.Pix.Rect.Dx() }
func (img *Image) Height() int { return img.Pix.Rect.Dy() }

type entry struct {
	filepath string
	img      *Image
	elem     *list.Element
}

// Cache is a fixed-capacity LRU cache of decoded images, one entry per
// distinct filepath seen by a load_image(...) SEL call.
type Cache struct {
	capacity int
	entries  map[string]*entry
	order    *list.List // front = most recently used
}

// New creates a cache that holds at most capacity images, matching the
// original's N_ENTRIES = 2*SHAQ_MAX_N_LOADED_TEXTURES fixed bound.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*entry),
		order:    list.New(),
	}
}

// Load returns the cached image for filepath, decoding and inserting it on
// a cache miss. On decode failure it returns a non-nil error and caches
// nothing, so a subsequent fix to the file is picked up on the next call.
func (c *Cache) Load(filepath string) (*Image, error) {
	if e, ok := c.entries[filepath]; ok {
		c.order.MoveToFront(e.elem)
		return e.img, nil
	}

	img, err := decode(filepath)
	if err != nil {
		return nil, err
	}

	if len(c.entries) >= c.capacity {
		c.evictLRU()
	}

	e := &entry{filepath: filepath, img: img}
	e.elem = c.order.PushFront(e)
	c.entries[filepath] = e
	return img, nil
}

func (c *Cache) evictLRU() {
	back := c.order.Back()
	if back == nil {
		return
	}
	e := back.Value.(*entry)
	c.order.Remove(back)
	delete(c.entries, e.filepath)
}

// Clear drops every cached image, mirroring image_free_all_cached_images
// (called on project reload since a source image file may have changed).
func (c *Cache) Clear() {
	c.entries = make(map[string]*entry)
	c.order.Init()
}

// Len reports how many images are currently cached.
func (c *Cache) Len() int { return len(c.entries) }

func decode(filepath string) (*Image, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return &Image{Filepath: filepath, Pix: dst}, nil
}
