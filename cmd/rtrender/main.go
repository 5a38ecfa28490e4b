// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command rtrender renders scenes with the raytrace backends.
//
// Usage:
//
//	rtrender render -demo spheres -width 640 -height 480 -out spheres.png
//	rtrender render -backend cpu -workers 8 scene.json
//	rtrender compare -demo mirrors
//	rtrender backends
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/gogpu/raytrace"
	_ "github.com/gogpu/raytrace/backend/cpu"
	_ "github.com/gogpu/raytrace/backend/wgpu"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "rtrender:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "rtrender"
	app.Usage = "ray trace sphere and box scenes on the CPU or GPU"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "verbose, v", Usage: "log debug output to stderr"},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		renderCommand(),
		compareCommand(),
		backendsCommand(),
	}
	return app
}

func setupLogging(ctx *cli.Context) error {
	level := slog.LevelWarn
	if ctx.GlobalBool("verbose") {
		level = slog.LevelDebug
	}
	raytrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
