package main

import (
	"context"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosnap/internal/config"
	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/loader"
	"github.com/philipparndt/gosnap/pkg/snap"
	"github.com/philipparndt/gosnap/pkg/snapshot"
	"github.com/philipparndt/gosnap/pkg/viewer"
	"github.com/philipparndt/gosnap/pkg/watcher"
	"github.com/spf13/cobra"
)

const (
	screenWidth  = 1400
	screenHeight = 900
	markerRadius = 5
	fontSize     = 18
	// clickSlop is how far the mouse may move between press and release for a click
	clickSlop = 3
)

// viewKeys maps the number row to preset views
var viewKeys = map[int32]camera.View{
	rl.KeyOne:   camera.ViewFront,
	rl.KeyTwo:   camera.ViewBack,
	rl.KeyThree: camera.ViewLeft,
	rl.KeyFour:  camera.ViewRight,
	rl.KeyFive:  camera.ViewTop,
	rl.KeySix:   camera.ViewBottom,
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gosnap-raylib [file]",
	Short: "OpenGL snapping and measurement viewer",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type App struct {
	session   *viewer.Session
	gpu       *gpuMesh
	source    string
	status    string
	reloads   chan *loader.Model
	mouseDown rl.Vector2
	dragging  bool
}

func run(cmd *cobra.Command, args []string) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	model, err := loader.Load(context.Background(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "GoSnap - "+model.Source)
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyNull) // Escape drops the first point instead of closing

	resolver := snap.NewResolver(cfg.Snap, nil)
	style := snapshot.DefaultOptions()
	app := &App{
		session: viewer.NewSession(model.Scene, resolver, style),
		gpu:     uploadScene(model.Scene),
		source:  model.Source,
		status:  "Click the model to snap",
		reloads: make(chan *loader.Model, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.watch(ctx, cfg, resolver)

	background := rl.NewColor(15, 18, 25, 255)
	if bg, err := snapshot.ParseHexColor(cfg.Snapshot.Background); err == nil {
		background = bg
	}

	for !rl.WindowShouldClose() {
		app.applyReload()
		app.handleInput()

		width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
		pose := app.session.Pose(width, height)

		rl.BeginDrawing()
		rl.ClearBackground(background)

		rl.BeginMode3D(rl.Camera3D{
			Position:   toRaylib(pose.Position),
			Target:     toRaylib(pose.Target),
			Up:         toRaylib(pose.ViewUp()),
			Fovy:       float32(pose.FOV),
			Projection: rl.CameraPerspective,
		})
		app.gpu.draw()
		for _, m := range app.session.Measurements() {
			rl.DrawLine3D(toRaylib(m.Start), toRaylib(m.End), style.LineColor)
		}
		rl.EndMode3D()

		app.drawOverlay(pose, width, height)
		rl.EndDrawing()
	}

	app.gpu.unload()
	rl.CloseWindow()
}

// watch reloads the model in the background. Models are handed to the main
// thread because GPU uploads must happen there.
func (app *App) watch(ctx context.Context, cfg config.Config, resolver *snap.Resolver) {
	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce())
	if err != nil {
		app.status = fmt.Sprintf("File watching disabled: %v", err)
		return
	}

	reloader := watcher.NewReloader(resolver.Cache(), nil)
	first := true
	reloader.OnReload = func(model *loader.Model) {
		if first {
			first = false
			return
		}
		select {
		case app.reloads <- model:
		default:
			// A newer reload replaces one the main loop has not picked up yet
			select {
			case <-app.reloads:
			default:
			}
			app.reloads <- model
		}
	}
	reloader.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
	}

	go func() {
		defer fw.Close()
		_ = reloader.Watch(ctx, app.source, fw)
	}()
}

func (app *App) applyReload() {
	select {
	case model := <-app.reloads:
		app.gpu.unload()
		app.gpu = uploadScene(model.Scene)
		app.session.SetScene(model.Scene)
		app.status = fmt.Sprintf("Reloaded %s (%d triangles)", model.Source, model.Scene.TriangleCount())
	default:
	}
}

func (app *App) handleInput() {
	for key, view := range viewKeys {
		if rl.IsKeyPressed(key) {
			app.session.SetView(view)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		app.session.CancelPending()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		app.session.Clear()
		app.status = "Measurements cleared"
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.mouseDown = rl.GetMousePosition()
		app.dragging = false
	}

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		if abs32(pos.X-app.mouseDown.X) > clickSlop || abs32(pos.Y-app.mouseDown.Y) > clickSlop {
			app.dragging = true
		}
		if app.dragging {
			delta := rl.GetMouseDelta()
			if shiftPressed {
				app.session.Pan(float64(delta.X), float64(delta.Y))
			} else {
				app.session.Rotate(float64(delta.Y)*0.01, -float64(delta.X)*0.01)
			}
		}
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		app.session.Pan(float64(delta.X), float64(delta.Y))
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !app.dragging {
		app.selectAt(rl.GetMousePosition())
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.session.Zoom(-float64(wheel) * 0.03)
	}
}

func (app *App) selectAt(pos rl.Vector2) {
	result, m, ok := app.session.Select(float64(pos.X), float64(pos.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	if !ok {
		app.status = "No hit"
		return
	}
	if m != nil {
		app.status = fmt.Sprintf("Measured %s (%s)", m.DisplayText(), m.Kind)
		return
	}
	app.status = fmt.Sprintf("Snapped to %s, pick a second point", result.Kind)
}

// drawOverlay draws markers, measurement labels and the status line in screen space
func (app *App) drawOverlay(pose camera.Pose, width, height int) {
	proj, err := camera.NewProjector(pose)
	if err != nil {
		return
	}
	screen := func(p geometry.Vector3) (int32, int32, bool) {
		if proj.Depth(p) < camera.Near {
			return 0, 0, false
		}
		uv, err := proj.Project(p)
		if err != nil {
			return 0, 0, false
		}
		px, py := uv.Pixel(width, height)
		return int32(px), int32(py), true
	}

	for _, marker := range app.session.Markers() {
		if x, y, ok := screen(marker.Point); ok {
			rl.DrawCircle(x, y, markerRadius+1, rl.NewColor(0, 0, 0, 255))
			rl.DrawCircle(x, y, markerRadius, snapshot.MarkerColor(marker.Kind))
		}
	}

	for _, m := range app.session.Measurements() {
		if x, y, ok := screen(m.Midpoint()); ok {
			text := m.DisplayText()
			w := rl.MeasureText(text, fontSize)
			rl.DrawRectangle(x-4, y-fontSize-4, w+8, fontSize+4, rl.NewColor(0, 0, 0, 180))
			rl.DrawText(text, x, y-fontSize-2, fontSize, rl.NewColor(255, 255, 255, 255))
		}
	}

	rl.DrawText(app.source, 10, 10, fontSize, rl.NewColor(220, 220, 220, 255))
	rl.DrawText(app.status, 10, int32(height)-fontSize-10, fontSize, rl.NewColor(220, 220, 220, 255))
	rl.DrawText("1-6 views, drag rotate, shift-drag pan, C clear, Esc cancel",
		10, 10+fontSize+6, fontSize-4, rl.NewColor(150, 150, 160, 255))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
