// Command guidemo opens a window with a vertex-colored triangle and a GUI
// panel. Space picks a new background color.
//
// Usage:
//
//	guidemo [-config file.toml] [-seed n] [-backend name] [-screenshot out.png]
//
// With -screenshot one frame is rendered offscreen and written as PNG;
// no window is opened.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/frame"
	"github.com/gogpu/guidemo/window"
)

type options struct {
	config     guidemo.Config
	screenshot string
}

func parseArgs(args []string) (options, error) {
	fs := flag.NewFlagSet("guidemo", flag.ContinueOnError)
	var (
		path       = fs.String("config", "", "TOML config file")
		title      = fs.String("title", guidemo.DefaultTitle, "window title")
		width      = fs.Int("width", guidemo.DefaultWidth, "window width")
		height     = fs.Int("height", guidemo.DefaultHeight, "window height")
		seed       = fs.Uint64("seed", guidemo.DefaultSeed, "background color seed")
		backend    = fs.String("backend", "auto", "GPU backend: auto, vulkan, metal, dx12, gles, software")
		logLevel   = fs.String("log-level", "info", "log level: debug, info, warn, error")
		screenshot = fs.String("screenshot", "", "render one frame offscreen to this PNG file and exit")
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// Only flags given on the command line override the file.
	var opts []guidemo.Option
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			opts = append(opts, guidemo.WithTitle(*title))
		case "width", "height":
			opts = append(opts, guidemo.WithSize(*width, *height))
		case "seed":
			opts = append(opts, guidemo.WithSeed(*seed))
		case "backend":
			opts = append(opts, guidemo.WithBackend(*backend))
		case "log-level":
			opts = append(opts, guidemo.WithLogLevel(*logLevel))
		}
	})

	var cfg guidemo.Config
	if *path != "" {
		var err error
		if cfg, err = guidemo.LoadConfig(*path, opts...); err != nil {
			return options{}, err
		}
	} else {
		cfg = guidemo.NewConfig(opts...)
		if err := cfg.Validate(); err != nil {
			return options{}, err
		}
	}
	return options{config: cfg, screenshot: *screenshot}, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "guidemo:", err)
		os.Exit(2)
	}

	level, _ := opts.config.Level()
	guidemo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if opts.screenshot != "" {
		err = screenshot(opts.config, opts.screenshot)
	} else {
		err = run(opts.config)
	}
	if err != nil {
		guidemo.Logger().Error("guidemo: exiting", "err", err)
		os.Exit(1)
	}
}

func run(cfg guidemo.Config) error {
	win, err := window.New(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	state, err := frame.Initialize(win, cfg)
	if err != nil {
		return err
	}
	defer state.Release()

	return win.Run(state)
}

func screenshot(cfg guidemo.Config, path string) error {
	state, off, err := frame.InitializeHeadless(cfg.Width, cfg.Height, cfg)
	if err != nil {
		return err
	}
	defer state.Release()

	if err := state.Redraw(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pixels, err := off.ReadPixels(ctx)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	copy(img.Pix, pixels)
	if err := gg.FromImage(img).SavePNG(path); err != nil {
		return fmt.Errorf("guidemo: save %s: %w", path, err)
	}
	guidemo.Logger().Info("guidemo: screenshot saved", "path", path, "width", cfg.Width, "height", cfg.Height)
	return nil
}
