// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

// TextureID names a GUI texture. Zero is never allocated.
type TextureID uint64

// ImageDelta is a full texture image: premultiplied RGBA8, tightly packed
// rows, top row first.
type ImageDelta struct {
	ID     TextureID
	Width  int
	Height int
	Pixels []byte
}

// TexturesDelta lists the texture changes of one frame. Set must be
// applied before painting the frame's shapes; Free after.
type TexturesDelta struct {
	Set  []ImageDelta
	Free []TextureID
}

// IsEmpty reports whether there is nothing to apply.
func (d TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}

// Append adds the changes of a later frame after d. Texture ids are never
// reused, so the sets stay valid when frees are delayed to the end.
func (d *TexturesDelta) Append(later TexturesDelta) {
	d.Set = append(d.Set, later.Set...)
	d.Free = append(d.Free, later.Free...)
}

type cachedTexture struct {
	key  string
	id   TextureID
	used bool
}

// textureCache maps window panels to the texture holding their current
// rasterization.
type textureCache struct {
	next    TextureID
	entries map[string]*cachedTexture
}

func newTextureCache() *textureCache {
	return &textureCache{entries: make(map[string]*cachedTexture)}
}

// lookup returns the texture for name if it was rasterized with key,
// and marks it used this frame.
func (tc *textureCache) lookup(name, key string) (TextureID, bool) {
	e, ok := tc.entries[name]
	if !ok || e.key != key {
		return 0, false
	}
	e.used = true
	return e.id, true
}

// store records img as the new rasterization of name. The previous texture
// of name, if any, is scheduled for freeing.
func (tc *textureCache) store(name, key string, img ImageDelta, delta *TexturesDelta) TextureID {
	tc.next++
	img.ID = tc.next
	delta.Set = append(delta.Set, img)
	if old, ok := tc.entries[name]; ok {
		delta.Free = append(delta.Free, old.id)
	}
	tc.entries[name] = &cachedTexture{key: key, id: img.ID, used: true}
	return img.ID
}

// sweep frees textures that were not used since the last sweep.
func (tc *textureCache) sweep(delta *TexturesDelta) {
	for name, e := range tc.entries {
		if !e.used {
			delta.Free = append(delta.Free, e.id)
			delete(tc.entries, name)
			continue
		}
		e.used = false
	}
}

// freeAll schedules every live texture for freeing.
func (tc *textureCache) freeAll(delta *TexturesDelta) {
	for name, e := range tc.entries {
		delta.Free = append(delta.Free, e.id)
		delete(tc.entries, name)
	}
}
