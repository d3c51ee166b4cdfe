package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/henrikglass/shaq/v4.6-core/glgl"

	"github.com/henrikglass/shaq/internal/imgcache"
	"github.com/henrikglass/shaq/sel"
)

// TextureSet resolves a sel.TextureDescriptor -- produced by evaluating a
// texture-typed uniform expression -- to an actual GL texture and binds it
// to a texture unit. Grounded on original_source/src/renderer.c's draw loop,
// which switches on a uniform's TEXTURE_KIND to decide whether to bind a
// shader's ping-ponged render target or a loaded-image texture.
type TextureSet struct {
	cache    *imgcache.Cache
	uploaded map[string]glgl.Texture // filepath -> GPU texture, parallel to Host.imagePaths
}

// NewTextureSet creates a texture set backed by an image cache of the given
// capacity (original_source used 2*SHAQ_MAX_N_LOADED_TEXTURES).
func NewTextureSet(cacheCapacity int) *TextureSet {
	return &TextureSet{
		cache:    imgcache.New(cacheCapacity),
		uploaded: make(map[string]glgl.Texture),
	}
}

// Bind resolves d against shaders (for the two output-texture kinds) or the
// loaded-image cache (uploading on first use), then binds the resulting
// texture to unit, matching glgl.Texture.Bind's "slot 0..32" binding model.
// The caller is responsible for also setting the sampler2D uniform to unit
// via gl.Uniform1i.
func (ts *TextureSet) Bind(d sel.TextureDescriptor, shaders []*Shader, path func(int32) (string, bool), unit int) error {
	if d.Err {
		return fmt.Errorf("texture descriptor carries an evaluation error")
	}
	switch d.Kind {
	case sel.TextureCurrentOutput:
		if int(d.Index) < 0 || int(d.Index) >= len(shaders) {
			return fmt.Errorf("texture descriptor: shader index %d out of range", d.Index)
		}
		shaders[d.Index].Current().Bind(unit)
		return nil
	case sel.TextureLastOutput:
		if int(d.Index) < 0 || int(d.Index) >= len(shaders) {
			return fmt.Errorf("texture descriptor: shader index %d out of range", d.Index)
		}
		shaders[d.Index].Last().Bind(unit)
		return nil
	case sel.TextureLoadedImage:
		filepath, ok := path(d.Index)
		if !ok {
			return fmt.Errorf("texture descriptor: no loaded-image path for slot %d", d.Index)
		}
		tex, err := ts.uploadOrGet(filepath)
		if err != nil {
			return err
		}
		tex.Bind(unit)
		return nil
	default:
		return fmt.Errorf("texture descriptor: unknown kind %d", d.Kind)
	}
}

func (ts *TextureSet) uploadOrGet(filepath string) (glgl.Texture, error) {
	if tex, ok := ts.uploaded[filepath]; ok {
		return tex, nil
	}

	img, err := ts.cache.Load(filepath)
	if err != nil {
		return glgl.Texture{}, fmt.Errorf("loading image %q: %w", filepath, err)
	}

	tex, err := glgl.NewTextureFromImage[byte](glgl.TextureImgConfig{
		Type:      glgl.Texture2D,
		Width:     img.Width(),
		Height:    img.Height(),
		Format:    gl.RGBA,
		Xtype:     gl.UNSIGNED_BYTE,
		MagFilter: gl.LINEAR,
		MinFilter: gl.LINEAR,
		Wrap:      gl.CLAMP_TO_EDGE,
	}, img.Pix.Pix)
	if err != nil {
		return glgl.Texture{}, fmt.Errorf("uploading image %q: %w", filepath, err)
	}
	ts.uploaded[filepath] = tex
	return tex, nil
}

// Clear drops every uploaded GPU texture and cached CPU image, called on
// project reload so edited image files are picked back up.
func (ts *TextureSet) Clear() {
	for _, tex := range ts.uploaded {
		tex.Delete()
	}
	ts.uploaded = make(map[string]glgl.Texture)
	ts.cache.Clear()
}
