// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/raytrace"
)

func TestDemoScenesBuild(t *testing.T) {
	for _, name := range demoNames() {
		t.Run(name, func(t *testing.T) {
			scene, err := loadScene(name, "")
			if err != nil {
				t.Fatalf("loadScene(%q) error = %v", name, err)
			}
			if len(scene.Primitives) == 0 || len(scene.Lights) == 0 {
				t.Errorf("demo %q is empty", name)
			}
		})
	}
}

func TestLoadSceneArguments(t *testing.T) {
	tests := []struct {
		name       string
		demo, path string
	}{
		{"neither", "", ""},
		{"both", "spheres", "scene.json"},
		{"unknown demo", "teapot", ""},
		{"missing file", "", filepath.Join(t.TempDir(), "none.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadScene(tt.demo, tt.path); err == nil {
				t.Error("loadScene() succeeded, want error")
			}
		})
	}
}

func TestThumbnailPath(t *testing.T) {
	tests := map[string]string{
		"render.png":        "render_thumb.png",
		"out/frame.001.ppm": "out/frame.001_thumb.ppm",
		"noext":             "noext_thumb",
	}
	for in, want := range tests {
		if got := thumbnailPath(in); got != want {
			t.Errorf("thumbnailPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDiffColors(t *testing.T) {
	a := []raytrace.Color{raytrace.Gray(0.5), raytrace.Gray(0.5), raytrace.RGB(0, 0, 1)}
	b := []raytrace.Color{raytrace.Gray(0.5), raytrace.Gray(0.5005), raytrace.RGB(0, 0, 0.9)}

	s := diffColors(a, b, 1e-3)
	if s.outliers != 1 {
		t.Errorf("outliers = %d, want 1", s.outliers)
	}
	if s.maxDiff < 0.0999 || s.maxDiff > 0.1001 {
		t.Errorf("maxDiff = %v, want 0.1", s.maxDiff)
	}
}

func TestRenderCommandCPU(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "ambient.ppm")

	args := []string{"rtrender", "render",
		"-backend", "cpu", "-workers", "2", "-demo", "ambient",
		"-width", "16", "-height", "12", "-thumb", "8", "-label",
		"-out", out}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render error = %v", err)
	}

	for _, path := range []string{out, thumbnailPath(out)} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("missing output: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestRenderCommandShadeModes(t *testing.T) {
	for _, mode := range []string{"phong", "hittest", "normals", "ambient"} {
		t.Run(mode, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), mode+".ppm")
			args := []string{"rtrender", "render", "-backend", "cpu", "-demo", "spheres",
				"-width", "16", "-height", "12", "-shade", mode, "-out", out}
			if err := newApp().Run(args); err != nil {
				t.Fatalf("render -shade %s error = %v", mode, err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			fields := strings.Fields(string(data))
			if len(fields) != 4+16*12*3 {
				t.Fatalf("ppm has %d fields, want %d", len(fields), 4+16*12*3)
			}
			if mode != "hittest" {
				return
			}
			// Hit-test output is pure white on a black background.
			white := 0
			for _, v := range fields[4:] {
				switch v {
				case "255":
					white++
				case "0":
				default:
					t.Fatalf("hittest channel value %s, want 0 or 255", v)
				}
			}
			if white == 0 {
				t.Error("hittest render has no hits")
			}
		})
	}
}

func TestRenderCommandUnknownShadeMode(t *testing.T) {
	args := []string{"rtrender", "render", "-backend", "cpu", "-demo", "ambient",
		"-width", "4", "-height", "4", "-shade", "toon", "-out", filepath.Join(t.TempDir(), "x.png")}
	if err := newApp().Run(args); !errors.Is(err, raytrace.ErrUnknownShadeMode) {
		t.Errorf("render -shade toon error = %v, want ErrUnknownShadeMode", err)
	}
}

func TestRenderCommandUnknownBackend(t *testing.T) {
	args := []string{"rtrender", "render", "-backend", "optix", "-demo", "ambient",
		"-width", "4", "-height", "4", "-out", filepath.Join(t.TempDir(), "x.png")}
	if err := newApp().Run(args); err == nil {
		t.Error("render with an unknown backend succeeded")
	}
}

func TestBackendsCommand(t *testing.T) {
	if err := newApp().Run([]string{"rtrender", "backends"}); err != nil {
		t.Fatalf("backends error = %v", err)
	}
}
