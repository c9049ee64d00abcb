package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/automoto/tilequest/assets"
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/driver"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/fonts"
	"github.com/automoto/tilequest/input"
	"github.com/automoto/tilequest/render"
	"github.com/automoto/tilequest/scenes"
	"github.com/automoto/tilequest/tilemap"
	"github.com/automoto/tilequest/transition"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding config.json, maps and sprites")
	configPath := flag.String("config", "config.json", "configuration document, relative to -data")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 600, "frames to run in headless mode")
	flag.Parse()

	fsys := os.DirFS(*dataDir)
	doc, err := config.Load(fsys, *configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var source input.Source
	if *headless {
		source = &input.Scripted{CloseAfter: *frames}
	} else {
		source = driver.NewKeySource()
	}

	in := input.New(source)
	window := render.NewWindow()
	textures := assets.New(fsys)
	renderer := render.New()
	ctx := &engine.Context{Textures: textures, Renderer: renderer, Window: window}

	opts := []engine.Option{engine.WithQuitSource(in)}
	if store := openStore(doc.App); store != nil {
		opts = append(opts, engine.WithSaveStore(store))
	}
	if !*headless {
		// ebiten paces Update itself
		opts = append(opts, engine.WithSleep(nil))
	}
	app := engine.NewApp(ctx, opts...)

	// Update order: input first, renderer last so every draw call is queued
	app.MustRegister(
		in,
		window,
		textures,
		scenes.NewLogo(),
		scenes.NewTitle(),
		scenes.NewScene(),
		tilemap.New(fsys),
		collision.New(),
		transition.New(),
		renderer,
	)

	if *headless {
		if err := app.Run(doc); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	if err := run(app, doc, renderer, window, textures); err != nil {
		log.Fatal(err)
	}
}

func run(app *engine.App, doc *config.Document, renderer *render.Render, window *render.Window, textures *assets.Textures) error {
	runErr := app.Awake(doc)
	if runErr == nil {
		runErr = app.Start()
	}
	if runErr == nil {
		game := driver.NewGame(app, renderer, window, textures)
		game.Configure()
		runErr = ebiten.RunGame(game)
	}
	if runErr != nil {
		log.Printf("App failure: %v", runErr)
	}
	return errors.Join(runErr, app.CleanUp())
}

func openStore(app config.AppConfig) engine.SaveStore {
	m, err := gdata.Open(gdata.Config{
		AppName: app.SaveName(),
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return nil
	}
	return m
}
