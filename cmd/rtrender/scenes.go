// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/sceneio"
)

var demoScenes = map[string]func() (raytrace.Scene, error){
	"ambient": ambientDemo,
	"spheres": spheresDemo,
	"mirrors": mirrorsDemo,
}

func demoNames() []string {
	names := make([]string, 0, len(demoScenes))
	for name := range demoScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadScene returns the named demo scene, or the scene file at path.
func loadScene(demo, path string) (raytrace.Scene, error) {
	switch {
	case demo != "" && path != "":
		return raytrace.Scene{}, fmt.Errorf("give either -demo or a scene file, not both")
	case demo != "":
		build, ok := demoScenes[demo]
		if !ok {
			return raytrace.Scene{}, fmt.Errorf("unknown demo %q (have %v)", demo, demoNames())
		}
		return build()
	case path != "":
		return sceneio.LoadFile(path)
	}
	return raytrace.Scene{}, fmt.Errorf("no scene: give -demo or a scene file")
}

// sceneBuilder collects primitives and stops at the first error.
type sceneBuilder struct {
	scene raytrace.Scene
	err   error
}

func (b *sceneBuilder) add(p raytrace.Primitive, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.scene.Primitives = append(b.scene.Primitives, p)
}

func (b *sceneBuilder) light(l raytrace.Light) {
	b.scene.Lights = append(b.scene.Lights, l)
}

func (b *sceneBuilder) build() (raytrace.Scene, error) {
	return b.scene, b.err
}

func material(ambient, diffuse, specular raytrace.Color, shininess float64) raytrace.Material {
	m := raytrace.DefaultMaterial()
	m.Ambient = ambient
	m.Diffuse = diffuse
	m.Specular = specular
	m.Shininess = shininess
	return m
}

// ambientDemo is a single sphere lit only by ambient light.
func ambientDemo() (raytrace.Scene, error) {
	var b sceneBuilder
	b.add(raytrace.NewSphere(mgl64.Vec3{0, 0, -5}, 1, material(raytrace.Gray(0.2), raytrace.Black, raytrace.Black, 1)))
	b.light(raytrace.NewAmbientLight(raytrace.White))
	return b.build()
}

func spheresDemo() (raytrace.Scene, error) {
	var b sceneBuilder
	floor := material(raytrace.Gray(0.05), raytrace.Gray(0.6), raytrace.Black, 1)
	b.add(raytrace.NewBox(mgl64.Vec3{0, -1.5, -8}, mgl64.Vec3{6, 0.25, 6}, floor))

	red := material(raytrace.RGB(0.1, 0, 0), raytrace.RGB(0.8, 0.1, 0.1), raytrace.Gray(0.5), 32)
	green := material(raytrace.RGB(0, 0.1, 0), raytrace.RGB(0.1, 0.7, 0.2), raytrace.Gray(0.3), 8)
	blue := material(raytrace.RGB(0, 0, 0.1), raytrace.RGB(0.1, 0.2, 0.8), raytrace.Gray(0.8), 64)
	b.add(raytrace.NewSphere(mgl64.Vec3{-2, -0.25, -8}, 1, red))
	b.add(raytrace.NewSphere(mgl64.Vec3{0, -0.25, -9}, 1, green))
	b.add(raytrace.NewSphere(mgl64.Vec3{2, -0.25, -8}, 1, blue))
	b.add(raytrace.NewPrimitive(raytrace.Box, red,
		mgl64.Translate3D(0, -0.75, -6).Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(30))).Mul4(mgl64.Scale3D(0.5, 0.5, 0.5))))

	b.light(raytrace.NewPointLight(mgl64.Vec3{3, 5, -3}, raytrace.Gray(0.8)))
	b.light(raytrace.NewDirectionalLight(mgl64.Vec3{-1, -1, -1}, raytrace.Gray(0.2)))
	b.light(raytrace.NewAmbientLight(raytrace.Gray(0.4)))
	return b.build()
}

func mirrorsDemo() (raytrace.Scene, error) {
	var b sceneBuilder
	mirror := material(raytrace.Black, raytrace.Gray(0.1), raytrace.White, 128)
	mirror.Absorption = 0.2
	mirror.Reflection = 0.8

	glass := material(raytrace.Black, raytrace.RGB(0.2, 0.4, 0.6), raytrace.White, 64)
	glass.Absorption = 0.3
	glass.Transparency = 0.7

	floor := material(raytrace.Gray(0.1), raytrace.RGB(0.6, 0.5, 0.4), raytrace.Black, 1)
	floor.Absorption = 0.7
	floor.Reflection = 0.3

	b.add(raytrace.NewBox(mgl64.Vec3{0, -2, -10}, mgl64.Vec3{8, 0.5, 8}, floor))
	b.add(raytrace.NewSphere(mgl64.Vec3{-1.5, 0, -9}, 1.4, mirror))
	b.add(raytrace.NewSphere(mgl64.Vec3{1.6, -0.4, -7.5}, 1, glass))
	b.add(raytrace.NewSphere(mgl64.Vec3{0.5, -1, -12}, 0.5,
		material(raytrace.RGB(0.2, 0.05, 0), raytrace.RGB(0.9, 0.4, 0.1), raytrace.Gray(0.5), 16)))

	b.light(raytrace.NewPointLight(mgl64.Vec3{-4, 6, -4}, raytrace.Gray(0.9)))
	b.light(raytrace.NewAmbientLight(raytrace.Gray(0.3)))
	return b.build()
}
