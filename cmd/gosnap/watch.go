package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/gosnap/pkg/loader"
	"github.com/philipparndt/gosnap/pkg/snap"
	"github.com/philipparndt/gosnap/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchProbe []float64

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload a model whenever it or its dependencies change",
	Long: `Watch a model file, and for OpenSCAD sources every included file, and reload
on change. The circle feature cache is cleared on each reload. With --probe the
given ray is snapped again after every reload.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Float64SliceVar(&watchProbe, "probe", nil, "Ray to snap after each load as ox,oy,oz,dx,dy,dz")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	probes, err := rayFlags("probe", watchProbe)
	if err != nil {
		fatal("Error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce())
	if err != nil {
		fatal("Error creating file watcher", err)
	}
	defer fw.Close()

	resolver := snap.NewResolver(cfg.Snap, nil)
	reloader := watcher.NewReloader(resolver.Cache(), nil)
	reloader.OnReload = func(model *loader.Model) {
		fmt.Printf("Loaded %s: %d meshes, %d triangles, watching %d files\n",
			model.Source, len(model.Scene), model.Scene.TriangleCount(), len(model.Files))
		for i, ray := range probes {
			result, ok := snapRay(model.Scene, resolver, ray, 0)
			if !ok {
				fmt.Printf("Probe %d: no hit\n", i+1)
				continue
			}
			fmt.Printf("Probe %d:\n", i+1)
			printResult(result)
		}
	}
	reloader.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "Error reloading model: %v\n", err)
	}

	if err := reloader.Watch(ctx, args[0], fw); err != nil && ctx.Err() == nil {
		fatal("Error watching model", err)
	}
}
