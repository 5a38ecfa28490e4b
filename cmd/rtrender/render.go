// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/backend"
	"github.com/gogpu/raytrace/backend/cpu"
	"github.com/gogpu/raytrace/camera"
	"github.com/gogpu/raytrace/imageio"
	"github.com/gogpu/raytrace/internal/publish"
)

// autoBackend selects the best available backend.
const autoBackend = "auto"

var sceneFlags = []cli.Flag{
	cli.StringFlag{Name: "demo", Usage: "built-in scene (ambient, mirrors, spheres)"},
	cli.IntFlag{Name: "width", Value: 640, Usage: "image width in pixels"},
	cli.IntFlag{Name: "height", Value: 480, Usage: "image height in pixels"},
	cli.Float64Flag{Name: "fov", Value: camera.DefaultFOV, Usage: "vertical field of view in degrees"},
	cli.IntFlag{Name: "bounces", Value: raytrace.DefaultMaxBounces, Usage: "maximum reflection/transmission depth"},
	cli.IntFlag{Name: "workers", Value: 1, Usage: "CPU worker goroutines"},
	cli.StringFlag{Name: "shade", Value: raytrace.ShadePhong.String(), Usage: "shading: phong, hittest, normals or ambient"},
}

func renderCommand() cli.Command {
	return cli.Command{
		Name:      "render",
		Usage:     "render a scene to an image file",
		ArgsUsage: "[scene.json]",
		Flags: append([]cli.Flag{
			cli.StringFlag{Name: "backend, b", Value: autoBackend, Usage: "backend name or auto"},
			cli.StringFlag{Name: "out, o", Value: "render.png", Usage: "output file (.png, .ppm, .bmp, .tiff)"},
			cli.UintFlag{Name: "thumb", Usage: "also write a thumbnail no larger than this many pixels"},
			cli.BoolFlag{Name: "label", Usage: "caption the image with backend and timing"},
			cli.StringFlag{Name: "upload-bucket", Usage: "publish the image to this S3 bucket", EnvVar: "RTRENDER_BUCKET"},
			cli.StringFlag{Name: "upload-endpoint", Usage: "S3 endpoint URL", EnvVar: "RTRENDER_S3_ENDPOINT"},
			cli.StringFlag{Name: "upload-region", Value: "us-east-1", Usage: "S3 region", EnvVar: "RTRENDER_S3_REGION"},
			cli.StringFlag{Name: "upload-prefix", Usage: "object key prefix"},
		}, sceneFlags...),
		Action: render,
	}
}

// job is a scene with the rays and settings shared by render and compare.
type job struct {
	scene   raytrace.Scene
	cam     camera.Pinhole
	rays    []raytrace.Ray
	opts    []raytrace.Option
	workers int
}

func newJob(ctx *cli.Context) (*job, error) {
	scene, err := loadScene(ctx.String("demo"), ctx.Args().First())
	if err != nil {
		return nil, err
	}
	cam := camera.Pinhole{Width: ctx.Int("width"), Height: ctx.Int("height"), FOV: ctx.Float64("fov")}
	rays, err := cam.Rays()
	if err != nil {
		return nil, err
	}
	mode, err := raytrace.ParseShadeMode(ctx.String("shade"))
	if err != nil {
		return nil, err
	}
	return &job{
		scene: scene,
		cam:   cam,
		rays:  rays,
		opts: []raytrace.Option{
			raytrace.WithMaxBounces(ctx.Int("bounces")),
			raytrace.WithShadeMode(mode),
		},
		workers: ctx.Int("workers"),
	}, nil
}

// open creates the named backend. The CPU backend is built directly so the
// worker count can be applied.
func (j *job) open(name string) (raytrace.Backend, error) {
	switch name {
	case autoBackend, "":
		return backend.OpenDefault(j.scene, j.opts...)
	case backend.NameCPU:
		return cpu.New(j.scene, cpu.WithTrace(j.opts...), cpu.WithWorkers(j.workers))
	}
	return backend.Open(name, j.scene, j.opts...)
}

// result is one finished render.
type result struct {
	backend string
	colors  []raytrace.Color
	elapsed time.Duration
}

func (j *job) run(name string) (*result, error) {
	b, err := j.open(name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	start := time.Now()
	colors, err := b.Trace(j.rays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	res := &result{backend: b.Name(), colors: colors, elapsed: time.Since(start)}
	raytrace.Logger().Info("rtrender: traced",
		"backend", res.backend, "rays", len(j.rays), "elapsed", res.elapsed)
	return res, nil
}

func render(ctx *cli.Context) error {
	j, err := newJob(ctx)
	if err != nil {
		return err
	}
	res, err := j.run(ctx.String("backend"))
	if err != nil {
		return err
	}

	var img image.Image
	img, err = imageio.ToRGBA(res.colors, j.cam.Width, j.cam.Height)
	if err != nil {
		return err
	}
	if ctx.Bool("label") {
		img = imageio.Annotate(img, fmt.Sprintf("%s %dx%d %v",
			res.backend, j.cam.Width, j.cam.Height, res.elapsed.Round(time.Millisecond)))
	}

	out := ctx.String("out")
	if err := imageio.Save(out, img); err != nil {
		return err
	}
	fmt.Printf("%s: %s %dx%d in %v\n", out, res.backend, j.cam.Width, j.cam.Height, res.elapsed)

	if side := ctx.Uint("thumb"); side > 0 {
		thumb := thumbnailPath(out)
		if err := imageio.Save(thumb, imageio.Thumbnail(img, side)); err != nil {
			return err
		}
		fmt.Println(thumb)
	}

	if bucket := ctx.String("upload-bucket"); bucket != "" {
		return upload(ctx, out, img)
	}
	return nil
}

// thumbnailPath turns "dir/name.ext" into "dir/name_thumb.ext".
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

func upload(ctx *cli.Context, out string, img image.Image) error {
	format, err := imageio.FormatFromPath(out)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, format); err != nil {
		return err
	}

	pub, err := publish.NewS3(publish.Config{
		Endpoint:  ctx.String("upload-endpoint"),
		Region:    ctx.String("upload-region"),
		Bucket:    ctx.String("upload-bucket"),
		Prefix:    ctx.String("upload-prefix"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	})
	if err != nil {
		return err
	}
	key, err := pub.Publish(context.Background(), filepath.Base(out), format.ContentType(), buf.Bytes())
	if err != nil {
		return err
	}
	fmt.Println("uploaded", key)
	return nil
}
