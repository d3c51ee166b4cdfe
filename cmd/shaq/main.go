// Command shaq is a live GLSL shader sandbox: it loads a *.ini project file
// describing one or more shader passes wired together by SEL (Shader
// Expression Language) uniform expressions, schedules and renders them
// every frame, and hot-reloads both the project file and every shader's
// source as they're edited on disk. Grounded on original_source/src/main.c's
// flag set and shaq_begin/shaq_should_close/shaq_new_frame/shaq_end loop.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"

	"github.com/henrikglass/shaq/internal/reload"
	"github.com/henrikglass/shaq/internal/shaqlog"
	"github.com/henrikglass/shaq/project"
	"github.com/henrikglass/shaq/render"
	"github.com/henrikglass/shaq/sel"
	"github.com/henrikglass/shaq/sel/builtins"
	"github.com/henrikglass/shaq/v4.6-core/glgl"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

var (
	optInput        = pflag.StringP("input", "i", "", "The input project (.ini) file to run")
	optSeed         = pflag.Uint64P("seed", "s", 0, "RNG seed (defaults to the wall clock)")
	optListBuiltins = pflag.BoolP("list-builtins", "l", false, "List the built-in functions and constants in the Shader Expression Language (SEL)")
	optQuiet        = pflag.BoolP("quiet", "q", false, "Less verbose log messages on stdout/stderr")
	optHelp         = pflag.BoolP("help", "h", false, "Display this message")
)

func main() {
	pflag.Parse()

	if *optHelp {
		printUsage()
		return
	}

	if *optListBuiltins {
		listBuiltins(os.Stdout)
		return
	}

	if *optInput == "" {
		fmt.Fprintln(os.Stderr, "No input file (*.ini) provided.")
		printUsage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *optQuiet {
		level = slog.LevelWarn
	}
	ring := shaqlog.NewRingHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}), 512)
	log := slog.New(ring)

	seed := int64(*optSeed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := run(log, *optInput, seed); err != nil {
		log.Error("shaq: fatal", "err", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [Options]\n", os.Args[0])
	pflag.PrintDefaults()
}

// listBuiltins prints the registry's constants and functions, matching
// selc.c's sel_list_builtins two-section layout.
func listBuiltins(w *os.File) {
	reg := builtins.Global()

	fmt.Fprintln(w, "Constants:")
	for _, c := range reg.AllConsts() {
		fmt.Fprintf(w, "  %-40s TYPE: %s\n", c.Name, c.Value.Typ)
	}

	fmt.Fprintln(w, "Functions:")
	for _, fn := range reg.All() {
		doc := fn.Doc
		if doc == "" {
			doc = "-"
		}
		fmt.Fprintf(w, "  %-60s %s\n", fn.Synopsis, doc)
	}
}

// run owns the window, the render session, and the reload-and-draw loop.
// Corresponds to shaq_begin / the shaq_should_close loop / shaq_end, but
// with shaq_new_frame's debug-stub body (a one-second sleep plus a printf
// dump of every uniform) replaced by real per-frame rendering, per
// DESIGN.md correction 3.
func run(log *slog.Logger, projectPath string, seed int64) error {
	window, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "shaq",
		Width:   1280,
		Height:  720,
		Version: [2]int{4, 6},
	})
	if err != nil {
		return fmt.Errorf("initializing window: %w", err)
	}
	defer terminate()
	glfw.SwapInterval(1)

	reg := builtins.Global()
	sess, err := render.NewSession(log, reg, seed, 64)
	if err != nil {
		return fmt.Errorf("creating render session: %w", err)
	}
	defer sess.Close()

	fbw, fbh := window.GetFramebufferSize()
	sess.SetWindowSize(int32(fbw), int32(fbh))
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		sess.SetWindowSize(int32(w), int32(h))
	})

	projectWatcher := reload.NewMtimeWatcher(projectPath)
	shaderPaths, err := loadProject(sess, reg, projectPath, log)
	if err != nil {
		return err
	}
	shaderWatchers := watchShaderSources(shaderPaths)

	for !window.ShouldClose() {
		pollInput(window, sess.Host)

		if projectWatcher.Changed() {
			if ring, ok := log.Handler().(*shaqlog.RingHandler); ok {
				ring.Clear()
			}
			log.Info("shaq: project file changed, reloading", "path", projectPath)
			if paths, err := loadProject(sess, reg, projectPath, log); err != nil {
				log.Error("shaq: reloading project failed, keeping previous shaders", "err", err)
			} else {
				shaderPaths = paths
				shaderWatchers = watchShaderSources(shaderPaths)
			}
		}
		if anyChanged(shaderWatchers) {
			reloadShaderSources(sess, log)
		}

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		sess.DrawFrame()

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// loadProject parses projectPath, installs the resulting shaders into sess
// (resolving render-graph order and the displayed shader), and returns
// every shader's source path so the caller can watch them for hot-reload.
// Matches shaq_begin's parse-and-install step.
func loadProject(sess *render.Session, reg sel.Registry, projectPath string, log *slog.Logger) ([]string, error) {
	shaders, err := project.Load(projectPath, reg, sess.VM, sess.Host)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	displayName := shaders[len(shaders)-1].Name
	for _, sh := range shaders {
		if sh.Display {
			displayName = sh.Name
			break
		}
	}

	if err := sess.SetShaders(shaders, displayName); err != nil {
		return nil, fmt.Errorf("installing shaders: %w", err)
	}

	paths := make([]string, len(shaders))
	for i, sh := range shaders {
		paths[i] = sh.SourcePath
	}
	return paths, nil
}

func watchShaderSources(paths []string) []*reload.MtimeWatcher {
	ws := make([]*reload.MtimeWatcher, len(paths))
	for i, p := range paths {
		ws[i] = reload.NewMtimeWatcher(p)
	}
	return ws
}

func anyChanged(ws []*reload.MtimeWatcher) bool {
	changed := false
	for _, w := range ws {
		if w.Changed() {
			changed = true
		}
	}
	return changed
}

func reloadShaderSources(sess *render.Session, log *slog.Logger) {
	for _, sh := range sess.Shaders {
		if !sh.WasModified() {
			continue
		}
		if err := sh.Reload(); err != nil {
			log.Error("shaq: shader failed to reload", "shader", sh.Name, "err", err)
		}
	}
	idx := shaderIndexOf(sess)
	for _, sh := range sess.Shaders {
		sh.DetermineDependencies(sess.VM, sess.Host, sess.Registry, idx, log)
	}
	sess.RenderOrder = render.Schedule(sess.Shaders, log)
}

func shaderIndexOf(sess *render.Session) map[string]int {
	idx := make(map[string]int, len(sess.Shaders))
	for i, sh := range sess.Shaders {
		idx[sh.Name] = i
	}
	return idx
}

// pollInput reads GLFW's polled mouse/keyboard state into host, matching
// user_input.c's per-frame polling model (as opposed to callback-driven
// input): SEL's key_is_down/key_was_pressed builtins name single uppercase
// letters ("A".."Z"), per selvm.c's fn_key_is_down_ synopsis.
func pollInput(window *glgl.Window, host *render.Host) {
	x, y := window.GetCursorPos()
	left := window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	right := window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
	dragX, dragY := float32(x), float32(y)
	if !left {
		dragX, dragY = 0, 0
	}
	host.SetMouse(float32(x), float32(y), dragX, dragY, left, right)

	for key := glfw.KeyA; key <= glfw.KeyZ; key++ {
		name := string(rune('A' + int(key-glfw.KeyA)))
		host.SetKeyDown(name, window.GetKey(key) == glfw.Press)
	}
	host.SetKeyDown("ESCAPE", window.GetKey(glfw.KeyEscape) == glfw.Press)
	host.SetKeyDown("ENTER", window.GetKey(glfw.KeyEnter) == glfw.Press)
	host.SetKeyDown("SPACE", window.GetKey(glfw.KeySpace) == glfw.Press)
}
