package render

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/internal/gui"
	"github.com/henrikglass/shaq/math/ms4"
	"github.com/henrikglass/shaq/sel"
)

// Host is shaq's concrete sel.HostContext: it owns per-session clock state,
// input polling, the widget registry, the render-graph's shader-name
// lookup, and the stable index namespace for load_image(...) targets.
// Grounded on original_source/src/shaq_core.c's ShaqState (clock/iresolution
// fields) and user_input.c (mouse/keyboard polling state).
type Host struct {
	log *slog.Logger

	startTime     time.Time
	lastFrameTime time.Time
	deltaTime     float32
	elapsed       float32
	frameCount    int32
	iotaCounter   int32

	rng *rand.Rand

	windowWidth, windowHeight int32

	mouseX, mouseY         float32
	dragX, dragY           float32
	leftDown, rightDown    bool
	leftClicked            bool
	rightClicked           bool
	keysDown, keysPressed  map[string]bool

	widgets *gui.Registry

	shaderIndex map[string]int
	shaders     []*Shader

	imagePaths map[string]int32 // stable load_image(...) slot index, never reassigned
	imageBySlot []string        // inverse of imagePaths, indexed by slot
}

// NewHost creates a Host seeded from seed (spec.md §5: PRNG seeded at
// startup from a CLI option or wall clock).
func NewHost(log *slog.Logger, seed int64) *Host {
	now := time.Now()
	return &Host{
		log:           log,
		startTime:     now,
		lastFrameTime: now,
		rng:           rand.New(rand.NewSource(seed)),
		keysDown:      make(map[string]bool),
		keysPressed:   make(map[string]bool),
		widgets:       gui.NewRegistry(),
		shaderIndex:   make(map[string]int),
		imagePaths:    make(map[string]int32),
	}
}

// BindShaders registers the session's shader list so OutputOf/LastOutputOf
// can resolve names to indices, and resets the per-reload iota counter (see
// DESIGN.md's resolution of Open Question 3: iota resets on reload).
func (h *Host) BindShaders(shaders []*Shader) {
	h.shaders = shaders
	h.shaderIndex = make(map[string]int, len(shaders))
	for i, s := range shaders {
		h.shaderIndex[s.Name] = i
	}
	h.iotaCounter = 0
	h.widgets.Clear()
}

// Widgets returns the session's widget registry, for the (out-of-scope) GUI
// layer to draw against.
func (h *Host) Widgets() *gui.Registry { return h.widgets }

// NewFrame latches clock state for the frame about to be evaluated,
// mirroring shaq_new_frame's timekeeping (the original's debug-stub body --
// a one-second sleep and a printf dump of every uniform -- is not
// reproduced; see DESIGN.md correction 3).
func (h *Host) NewFrame() {
	now := time.Now()
	h.deltaTime = float32(now.Sub(h.lastFrameTime).Seconds())
	h.elapsed = float32(now.Sub(h.startTime).Seconds())
	h.lastFrameTime = now
	h.frameCount++
	h.widgets.BeginFrame()
}

// EndFrame clears single-frame edge-triggered input state (was_clicked,
// was_pressed) and sweeps untouched widgets, called once after every
// shader has drawn.
func (h *Host) EndFrame() {
	h.leftClicked = false
	h.rightClicked = false
	for k := range h.keysPressed {
		delete(h.keysPressed, k)
	}
	h.widgets.EndFrame()
}

// SetWindowSize updates the viewport size used by aspect_ratio/iresolution.
func (h *Host) SetWindowSize(w, hh int32) { h.windowWidth, h.windowHeight = w, hh }

// SetMouse updates polled mouse state; dragging is only accumulated by the
// caller while a button is held, matching user_input.c's drag-distance
// tracking.
func (h *Host) SetMouse(x, y, dragX, dragY float32, left, right bool) {
	h.mouseX, h.mouseY = x, y
	h.dragX, h.dragY = dragX, dragY
	if left && !h.leftDown {
		h.leftClicked = true
	}
	if right && !h.rightDown {
		h.rightClicked = true
	}
	h.leftDown, h.rightDown = left, right
}

// SetKeyDown updates polled keyboard state for one key; down transitions
// record a one-frame "was pressed" edge.
func (h *Host) SetKeyDown(key string, down bool) {
	if down && !h.keysDown[key] {
		h.keysPressed[key] = true
	}
	h.keysDown[key] = down
}

func (h *Host) Iota() int32 {
	v := h.iotaCounter
	h.iotaCounter++
	return v
}

func (h *Host) Time() float32      { return h.elapsed }
func (h *Host) DeltaTime() float32 { return h.deltaTime }
func (h *Host) FrameCount() int32  { return h.frameCount }

func (h *Host) Rand(min, max float32) float32 {
	return min + h.rng.Float32()*(max-min)
}

func (h *Host) RandI(min, max int32) int32 {
	if max <= min {
		return min
	}
	return min + h.rng.Int31n(max-min)
}

func (h *Host) AspectRatio() float32 {
	if h.windowHeight == 0 {
		return 1
	}
	return float32(h.windowWidth) / float32(h.windowHeight)
}

func (h *Host) IResolution() (int32, int32) { return h.windowWidth, h.windowHeight }

func (h *Host) MousePosition() (float32, float32)     { return h.mouseX, h.mouseY }
func (h *Host) MouseDragPosition() (float32, float32) { return h.dragX, h.dragY }
func (h *Host) LeftMouseButtonIsDown() bool           { return h.leftDown }
func (h *Host) RightMouseButtonIsDown() bool          { return h.rightDown }
func (h *Host) LeftMouseButtonWasClicked() bool       { return h.leftClicked }
func (h *Host) RightMouseButtonWasClicked() bool      { return h.rightClicked }
func (h *Host) KeyIsDown(key string) bool             { return h.keysDown[key] }
func (h *Host) KeyWasPressed(key string) bool         { return h.keysPressed[key] }

// ImagePath returns the filepath registered at loaded-image slot idx, for
// TextureSet.Bind to resolve a TextureLoadedImage descriptor back to a file.
func (h *Host) ImagePath(idx int32) (string, bool) {
	if idx < 0 || int(idx) >= len(h.imageBySlot) {
		return "", false
	}
	return h.imageBySlot[idx], true
}

// LoadImage resolves path to a stable loaded-image slot index. The actual
// decode and GPU upload happen in the renderer, which consults the same
// path->index map when binding texture uniforms; SEL evaluation only needs
// the descriptor, never the pixels.
func (h *Host) LoadImage(path string) sel.TextureDescriptor {
	idx, ok := h.imagePaths[path]
	if !ok {
		idx = int32(len(h.imageBySlot))
		h.imagePaths[path] = idx
		h.imageBySlot = append(h.imageBySlot, path)
	}
	return sel.TextureDescriptor{Kind: sel.TextureLoadedImage, Index: idx}
}

// OutputOf resolves shaderName to its current-frame render target,
// establishing a render-graph dependency edge (see Shader.DetermineDependencies).
func (h *Host) OutputOf(shaderName string) sel.TextureDescriptor {
	idx, ok := h.shaderIndex[shaderName]
	if !ok {
		h.log.Error("output_of: no such shader", "name", shaderName)
		return sel.TextureDescriptor{Err: true}
	}
	return sel.TextureDescriptor{Kind: sel.TextureCurrentOutput, Index: int32(idx)}
}

// LastOutputOf resolves shaderName to its previous-frame render target.
// Unlike OutputOf, this never creates a scheduling dependency: it is the
// mechanism project files use to deliberately break a cycle (spec.md §3).
func (h *Host) LastOutputOf(shaderName string) sel.TextureDescriptor {
	idx, ok := h.shaderIndex[shaderName]
	if !ok {
		h.log.Error("last_output_of: no such shader", "name", shaderName)
		return sel.TextureDescriptor{Err: true}
	}
	return sel.TextureDescriptor{Kind: sel.TextureLastOutput, Index: int32(idx)}
}

func (h *Host) InputFloat(label string, def float32) float32 { return h.widgets.Float(label, def) }
func (h *Host) InputInt(label string, def int32) int32       { return h.widgets.Int(label, def) }
func (h *Host) InputVec2(label string, def ms2.Vec) ms2.Vec   { return h.widgets.Vec2(label, def) }
func (h *Host) InputVec3(label string, def ms3.Vec) ms3.Vec   { return h.widgets.Vec3(label, def) }
func (h *Host) InputVec4(label string, def ms4.Vec) ms4.Vec   { return h.widgets.Vec4(label, def) }
func (h *Host) Checkbox(label string, def bool) bool          { return h.widgets.Bool(label, def) }

func (h *Host) DragInt(label string, min, max, def int32) int32 {
	return h.widgets.DragInt(label, min, max, def)
}

func (h *Host) SliderFloat(label string, min, max, def float32) float32 {
	return h.widgets.SliderFloat(label, min, max, def)
}

func (h *Host) SliderFloatLog(label string, min, max, def float32) float32 {
	return h.widgets.SliderFloatLog(label, min, max, def)
}

func (h *Host) ColorPicker(label string, def ms4.Vec) ms4.Vec {
	return h.widgets.Color(label, def)
}

var _ sel.HostContext = (*Host)(nil)
