package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gosnap/internal/config"
	"github.com/philipparndt/gosnap/pkg/loader"
	"github.com/philipparndt/gosnap/version"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gosnap",
	Short: "Snap, measure and project on 3D models",
	Long: `gosnap loads STL, glTF and OpenSCAD models and resolves picked points to
vertices, edges, faces and fitted circle centers and quadrants. It measures
between snapped points and maps points between world and screen space.`,
	Version: version.GetVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
}

func main() {
	registerCompletions()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the configuration from --config, or the defaults
func loadConfig() config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("Error loading config", err)
	}
	return cfg
}

// loadModel reads a model file or exits
func loadModel(ctx context.Context, filename string) *loader.Model {
	model, err := loader.Load(ctx, filename)
	if err != nil {
		fatal("Error loading model", err)
	}
	return model
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
