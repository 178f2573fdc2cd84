package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/lightlab"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging and profiler output")
	headless := flag.Bool("headless", false, "Render to PNG files instead of a window")
	frames := flag.Int("frames", 0, "Frames to render in headless mode")
	out := flag.String("out", "", "Output directory for headless frames")
	cycle := flag.Bool("cycle", false, "In headless mode, show one selection per frame")
	selection := flag.String("select", "", "Initial light selection (All, Ambient, Directional, Point, Spot, Hemisphere)")
	flag.Parse()

	cfg := lightlab.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = lightlab.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// flags override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debug
		case "headless":
			cfg.Headless.Enabled = *headless
		case "frames":
			cfg.Headless.Frames = *frames
		case "out":
			cfg.Headless.OutDir = *out
		case "select":
			cfg.Selection = *selection
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := lightlab.NewDefaultLogger("lightlab", cfg.Debug)
	if err := run(cfg, *cycle); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg lightlab.Config, cycle bool) (err error) {
	defer func() {
		// module installs panic on unrecoverable setup errors
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	app := lightlab.NewApp()
	app.UseModules(
		lightlab.LoggingModule{Prefix: "lightlab", Debug: cfg.Debug},
		lightlab.TimeModule{},
		lightlab.ProfilerModule{Every: cfg.ProfileEvery},
	)

	if cfg.Headless.Enabled {
		app.UseModules(lightlab.HeadlessModule{
			Width:  cfg.Headless.Width,
			Height: cfg.Headless.Height,
			Frames: cfg.Headless.Frames,
			OutDir: cfg.Headless.OutDir,
			Cycle:  cycle,
		})
	} else {
		app.UseModules(
			lightlab.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			lightlab.InputModule{},
		)
	}

	scene := lightlab.DefaultSceneDef()
	scene.Camera = cfg.CameraDef()

	app.UseModules(
		lightlab.AssetServerModule{},
		lightlab.SceneModule{Def: scene, Orbit: cfg.OrbitControls()},
		lightlab.UiModule{Title: "lightlab", Scale: cfg.PanelScale},
		lightlab.LightSelectorModule{Initial: lightlab.Selection(cfg.Selection)},
		lightlab.OrbitCameraModule{},
		lightlab.RenderModule{
			Headless: cfg.Headless.Enabled,
			Width:    cfg.Headless.Width,
			Height:   cfg.Headless.Height,
			FontPath: cfg.FontPath,
			FontSize: cfg.FontSize,
		},
	)

	defer func() {
		if r, ok := lightlab.Resource[lightlab.Renderer](app); ok {
			r.Release()
		}
		if ws, ok := lightlab.Resource[lightlab.WindowState](app); ok {
			ws.Destroy()
		}
	}()

	app.Run()
	return nil
}
