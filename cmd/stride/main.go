package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oliverbestmann/stride/config"
	"github.com/oliverbestmann/stride/gfx/opengl"
	"github.com/oliverbestmann/stride/glimpse/desktop"
	"github.com/oliverbestmann/stride/orion"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		orion.Fatal(err, false)
	}
}

func newApp() *cli.App {
	// -v enables verbose logging, so the version flag must not claim it
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "stride"
	app.Usage = "run a scene in a fixed rate frame loop"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: config.Default().Scene,
			Usage: fmt.Sprintf("scene to run (%s)", strings.Join(sceneNames(), "|")),
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: config.DefaultPath,
			Usage: "yaml file with launcher preferences",
		},
		cli.BoolFlag{
			Name:  "cpuprofile",
			Usage: "write a cpu profile to the working directory",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	app.Action = run

	return app
}

func run(ctx *cli.Context) error {
	conf, err := resolveConfig(ctx)
	if err != nil {
		return err
	}

	if err := setupLogging(ctx, conf); err != nil {
		return err
	}

	newScene, err := sceneFactory(conf.Scene)
	if err != nil {
		return err
	}

	slog.Info("Starting", slog.String("scene", conf.Scene))

	app := orion.NewApplication(orion.Options{
		WindowTitle: conf.WindowTitle,
		CPUProfile:  conf.CPUProfile,
		NewWindow:   desktop.NewWindow,
		NewRenderer: opengl.NewRenderer,
		NewScene:    newScene,
	})

	if err := app.Init(); err != nil {
		orion.Fatal(err, conf.PauseOnError)
	}

	if err := app.Run(); err != nil {
		// close the window before the process goes away
		_ = app.Exit()
		orion.Fatal(err, conf.PauseOnError)
	}

	return app.Exit()
}

// resolveConfig loads the config file and applies the command line flags on top.
func resolveConfig(ctx *cli.Context) (config.Config, error) {
	conf, err := config.Load(ctx.String("config"))
	if err != nil {
		return conf, err
	}

	if ctx.IsSet("scene") {
		conf.Scene = ctx.String("scene")
	}

	if ctx.Bool("cpuprofile") {
		conf.CPUProfile = true
	}

	return conf, nil
}

func setupLogging(ctx *cli.Context, conf config.Config) error {
	level, err := conf.Level()
	if err != nil {
		return err
	}

	if ctx.Bool("v") || ctx.Bool("vv") {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		// source locations are only interesting when debugging
		AddSource: ctx.Bool("vv"),
		Level:     level,
	})

	slog.SetDefault(slog.New(handler))

	return nil
}
