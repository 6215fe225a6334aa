package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosnap/internal/config"
	"github.com/philipparndt/gosnap/pkg/analysis"
	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/loader"
	"github.com/philipparndt/gosnap/pkg/measurement"
	"github.com/philipparndt/gosnap/pkg/snap"
	"github.com/philipparndt/gosnap/pkg/snapshot"
	"github.com/philipparndt/gosnap/pkg/viewer"
	"github.com/philipparndt/gosnap/pkg/watcher"
	"github.com/spf13/cobra"
)

type App struct {
	window   fyne.Window
	cfg      config.Config
	model    *loader.Model
	resolver *snap.Resolver
	renderer *viewer.ModelRenderer
	info     *MeasurementInfo
	cancel   context.CancelFunc
}

type MeasurementInfo struct {
	snapLabel         *widget.Label
	pendingLabel      *widget.Label
	distanceXLabel    *widget.Label
	distanceYLabel    *widget.Label
	distanceZLabel    *widget.Label
	totalDistLabel    *widget.Label
	measurementsLabel *widget.Label
	modelInfoLabel    *widget.Label
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gosnap-gui [file]",
	Short: "Interactive snapping and measurement viewer",
	Args:  cobra.MaximumNArgs(1),
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

	a := app.New()
	w := a.NewWindow("GoSnap - 3D Snapping and Measurement")

	appInstance := &App{
		window:   w,
		cfg:      cfg,
		resolver: snap.NewResolver(cfg.Snap, nil),
	}

	if len(args) > 0 {
		appInstance.loadFile(args[0])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoSnap")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an STL, glTF or OpenSCAD file to start measuring")

	openButton := widget.NewButton("Open Model", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	if a.cancel != nil {
		a.cancel()
	}

	model, err := loader.Load(context.Background(), filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load model: %w", err), a.window)
		return
	}

	a.model = model
	a.resolver.Cache().Clear()
	a.setupMainUI()
	a.watch(model.Source)
}

// watch reloads the model in the background when its files change
func (a *App) watch(source string) {
	fw, err := watcher.NewFileWatcher(a.cfg.Watch.Debounce())
	if err != nil {
		dialog.ShowError(fmt.Errorf("file watching disabled: %w", err), a.window)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	reloader := watcher.NewReloader(a.resolver.Cache(), nil)
	first := true
	reloader.OnReload = func(model *loader.Model) {
		if first {
			first = false
			return
		}
		fyne.Do(func() {
			a.model = model
			a.renderer.Session().SetScene(model.Scene)
			a.updateModelInfo()
			a.updateMeasurements()
			a.renderer.Render()
		})
	}
	reloader.OnError = func(err error) {
		fyne.Do(func() {
			dialog.ShowError(err, a.window)
		})
	}

	go func() {
		defer fw.Close()
		_ = reloader.Watch(ctx, source, fw)
	}()
}

func (a *App) setupMainUI() {
	a.info = &MeasurementInfo{
		snapLabel:         widget.NewLabel("Last snap: -"),
		pendingLabel:      widget.NewLabel("First point: Not selected"),
		distanceXLabel:    widget.NewLabel("Distance X: -"),
		distanceYLabel:    widget.NewLabel("Distance Y: -"),
		distanceZLabel:    widget.NewLabel("Distance Z: -"),
		totalDistLabel:    widget.NewLabel("Total Distance: -"),
		measurementsLabel: widget.NewLabel(""),
		modelInfoLabel:    widget.NewLabel(""),
	}
	a.info.totalDistLabel.TextStyle = fyne.TextStyle{Bold: true}

	style := snapshot.DefaultOptions()
	if bg, err := snapshot.ParseHexColor(a.cfg.Snapshot.Background); err == nil {
		style.Background = bg
	}

	session := viewer.NewSession(a.model.Scene, a.resolver, style)
	a.renderer = viewer.NewModelRenderer(session)
	a.renderer.SetOnSnap(func(result snap.Result) {
		a.info.snapLabel.SetText(fmt.Sprintf("Last snap: %s at %s", result.Kind,
			measurement.FormatVector(result.Point.X, result.Point.Y, result.Point.Z)))
		a.updateMeasurements()
	})
	a.renderer.SetOnError(func(err error) {
		a.info.snapLabel.SetText(fmt.Sprintf("Render error: %v", err))
	})

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	clearButton := widget.NewButton("Clear Measurements", func() {
		a.renderer.ClearSelection()
		a.updateMeasurements()
	})

	viewSelect := widget.NewSelect(camera.ViewNames(), func(name string) {
		if view, err := camera.ParseView(name); err == nil {
			a.renderer.Session().SetView(view)
			a.renderer.Render()
		}
	})
	viewSelect.PlaceHolder = "Select view"

	a.updateModelInfo()

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click to snap to vertices, edges, faces,\n" +
			"  circle centers and quadrants\n" +
			"• Click twice to measure between points\n" +
			"• Center + quadrant measures a radius,\n" +
			"  two quadrants a diameter\n" +
			"• Drag to rotate, scroll to zoom\n" +
			"• Arrow keys pan, Escape drops the first point",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.info.modelInfoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Snapping:"),
		widget.NewSeparator(),
		a.info.snapLabel,
		a.info.pendingLabel,
		widget.NewSeparator(),
		a.info.distanceXLabel,
		a.info.distanceYLabel,
		a.info.distanceZLabel,
		a.info.totalDistLabel,
		widget.NewSeparator(),
		widget.NewLabel("Measurements:"),
		a.info.measurementsLabel,
		widget.NewSeparator(),
		widget.NewLabel("View:"),
		viewSelect,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		clearButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)
}

func (a *App) updateModelInfo() {
	result := analysis.AnalyzeScene(a.model.Scene)
	a.info.modelInfoLabel.SetText(fmt.Sprintf(
		"Model: %s\nMeshes: %d\nTriangles: %d\nEdges: %d\nSurface Area: %.2f\n\nDimensions:\n  X: %s\n  Y: %s\n  Z: %s",
		a.model.Source,
		len(result.Meshes),
		result.TriangleCount,
		result.EdgeCount,
		result.SurfaceArea,
		measurement.FormatDistance(result.Dimensions.X),
		measurement.FormatDistance(result.Dimensions.Y),
		measurement.FormatDistance(result.Dimensions.Z),
	))
}

func (a *App) updateMeasurements() {
	session := a.renderer.Session()

	if pending, ok := session.Pending(); ok {
		a.info.pendingLabel.SetText(fmt.Sprintf("First point: %s %s", pending.Kind,
			measurement.FormatVector(pending.Point.X, pending.Point.Y, pending.Point.Z)))
	} else {
		a.info.pendingLabel.SetText("First point: Not selected")
	}

	measurements := session.Measurements()
	if len(measurements) == 0 {
		a.info.distanceXLabel.SetText("Distance X: -")
		a.info.distanceYLabel.SetText("Distance Y: -")
		a.info.distanceZLabel.SetText("Distance Z: -")
		a.info.totalDistLabel.SetText("Total Distance: -")
		a.info.measurementsLabel.SetText("")
		return
	}

	last := measurements[len(measurements)-1]
	delta := last.End.Sub(last.Start)
	a.info.distanceXLabel.SetText("Distance X: " + measurement.FormatDistance(math.Abs(delta.X)))
	a.info.distanceYLabel.SetText("Distance Y: " + measurement.FormatDistance(math.Abs(delta.Y)))
	a.info.distanceZLabel.SetText("Distance Z: " + measurement.FormatDistance(math.Abs(delta.Z)))
	a.info.totalDistLabel.SetText("Total Distance: " + last.DisplayText())

	lines := make([]string, len(measurements))
	for i, m := range measurements {
		lines[i] = fmt.Sprintf("%d. %s (%s)", i+1, m.DisplayText(), m.Kind)
	}
	a.info.measurementsLabel.SetText(strings.Join(lines, "\n"))
}
