package sceneio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/raytrace"
)

// ErrInvalidScene is returned for structurally valid JSON that does not
// describe a scene.
var ErrInvalidScene = errors.New("sceneio: invalid scene")

// JSON loads scenes from the JSON format described in the package doc.
type JSON struct {
	// Strict rejects unknown fields.
	Strict bool
}

var _ raytrace.SceneLoader = JSON{}

type vec3 [3]float64

func (v vec3) vec() mgl64.Vec3       { return mgl64.Vec3(v) }
func (v vec3) color() raytrace.Color { return raytrace.RGB(v[0], v[1], v[2]) }

type fileScene struct {
	Objects []fileObject `json:"objects"`
	Lights  []fileLight  `json:"lights"`
}

type fileObject struct {
	Kind        string        `json:"kind"`
	Center      vec3          `json:"center"`
	Radius      *float64      `json:"radius"`
	HalfExtents *vec3         `json:"halfExtents"`
	Transform   *[16]float64  `json:"transform"`
	Material    *fileMaterial `json:"material"`
}

type fileMaterial struct {
	Ambient      *vec3    `json:"ambient"`
	Diffuse      *vec3    `json:"diffuse"`
	Specular     *vec3    `json:"specular"`
	Absorption   *float64 `json:"absorption"`
	Reflection   *float64 `json:"reflection"`
	Transparency *float64 `json:"transparency"`
	Shininess    *float64 `json:"shininess"`
}

type fileLight struct {
	Kind      string `json:"kind"`
	Position  vec3   `json:"position"`
	Direction vec3   `json:"direction"`
	Ambient   vec3   `json:"ambient"`
	Diffuse   vec3   `json:"diffuse"`
	Specular  vec3   `json:"specular"`
}

// Load decodes a scene from r.
func (l JSON) Load(r io.Reader) (raytrace.Scene, error) {
	dec := json.NewDecoder(r)
	if l.Strict {
		dec.DisallowUnknownFields()
	}
	var f fileScene
	if err := dec.Decode(&f); err != nil {
		return raytrace.Scene{}, fmt.Errorf("sceneio: decode: %w", err)
	}

	scene := raytrace.Scene{
		Primitives: make([]raytrace.Primitive, 0, len(f.Objects)),
		Lights:     make([]raytrace.Light, 0, len(f.Lights)),
	}
	for i, o := range f.Objects {
		p, err := o.primitive()
		if err != nil {
			return raytrace.Scene{}, fmt.Errorf("object %d: %w", i, err)
		}
		scene.Primitives = append(scene.Primitives, p)
	}
	for i, fl := range f.Lights {
		light, err := fl.light()
		if err != nil {
			return raytrace.Scene{}, fmt.Errorf("light %d: %w", i, err)
		}
		scene.Lights = append(scene.Lights, light)
	}
	if err := scene.Validate(); err != nil {
		return raytrace.Scene{}, err
	}

	raytrace.Logger().Debug("sceneio: scene loaded",
		"primitives", len(scene.Primitives), "lights", len(scene.Lights))
	return scene, nil
}

// LoadFile opens path and loads it with a default JSON loader.
func LoadFile(path string) (raytrace.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return raytrace.Scene{}, err
	}
	defer f.Close()

	scene, err := JSON{}.Load(f)
	if err != nil {
		return raytrace.Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

func (o fileObject) primitive() (raytrace.Primitive, error) {
	mat := o.Material.material()

	var kind raytrace.PrimitiveKind
	switch o.Kind {
	case "sphere":
		kind = raytrace.Sphere
	case "box":
		kind = raytrace.Box
	default:
		return raytrace.Primitive{}, fmt.Errorf("%w: unknown object kind %q", ErrInvalidScene, o.Kind)
	}

	if o.Transform != nil {
		return raytrace.NewPrimitive(kind, mat, mgl64.Mat4(*o.Transform))
	}

	switch kind {
	case raytrace.Sphere:
		if o.Radius == nil {
			return raytrace.Primitive{}, fmt.Errorf("%w: sphere needs radius or transform", ErrInvalidScene)
		}
		return raytrace.NewSphere(o.Center.vec(), *o.Radius, mat)
	default:
		if o.HalfExtents == nil {
			return raytrace.Primitive{}, fmt.Errorf("%w: box needs halfExtents or transform", ErrInvalidScene)
		}
		return raytrace.NewBox(o.Center.vec(), o.HalfExtents.vec(), mat)
	}
}

func (m *fileMaterial) material() raytrace.Material {
	mat := raytrace.DefaultMaterial()
	if m == nil {
		return mat
	}
	setColor := func(dst *raytrace.Color, v *vec3) {
		if v != nil {
			*dst = v.color()
		}
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setColor(&mat.Ambient, m.Ambient)
	setColor(&mat.Diffuse, m.Diffuse)
	setColor(&mat.Specular, m.Specular)
	setFloat(&mat.Absorption, m.Absorption)
	setFloat(&mat.Reflection, m.Reflection)
	setFloat(&mat.Transparency, m.Transparency)
	setFloat(&mat.Shininess, m.Shininess)
	return mat
}

func (fl fileLight) light() (raytrace.Light, error) {
	var light raytrace.Light
	switch fl.Kind {
	case "point":
		light.Position = fl.Position.vec().Vec4(1)
	case "directional":
		dir := fl.Direction.vec()
		if dir.Len() == 0 {
			return light, fmt.Errorf("%w: directional light needs a non-zero direction", ErrInvalidScene)
		}
		light.Position = dir.Vec4(0)
	case "ambient":
		light = raytrace.NewAmbientLight(fl.Ambient.color())
		return light, nil
	default:
		return light, fmt.Errorf("%w: unknown light kind %q", ErrInvalidScene, fl.Kind)
	}
	light.Ambient = fl.Ambient.color()
	light.Diffuse = fl.Diffuse.color()
	light.Specular = fl.Specular.color()
	return light, nil
}
