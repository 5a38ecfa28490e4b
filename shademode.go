package raytrace

import (
	"fmt"
	"strings"
)

// ShadeMode selects how a primary hit is turned into a color.
//
// ShadePhong is the full renderer. The other modes are debug views: they
// color the first hit only and trace no secondary rays.
type ShadeMode uint32

const (
	// ShadePhong runs Shade and follows reflection and transparency rays.
	ShadePhong ShadeMode = iota
	// ShadeHitTest colors every hit white.
	ShadeHitTest
	// ShadeNormals maps the unit surface normal n to (n+1)/2.
	ShadeNormals
	// ShadeAmbient returns the material's ambient color unlit.
	ShadeAmbient
)

var shadeModeNames = [...]string{
	ShadePhong:   "phong",
	ShadeHitTest: "hittest",
	ShadeNormals: "normals",
	ShadeAmbient: "ambient",
}

// String returns the lower-case mode name.
func (m ShadeMode) String() string {
	if int(m) < len(shadeModeNames) {
		return shadeModeNames[m]
	}
	return fmt.Sprintf("ShadeMode(%d)", uint32(m))
}

// ParseShadeMode is the inverse of String. Matching ignores case.
func ParseShadeMode(s string) (ShadeMode, error) {
	for i, name := range shadeModeNames {
		if strings.EqualFold(s, name) {
			return ShadeMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownShadeMode, s)
}

// shadeDebug colors hit for the non-Phong modes.
func shadeDebug(mode ShadeMode, hit HitRecord) Color {
	switch mode {
	case ShadeHitTest:
		return White
	case ShadeNormals:
		n := hit.Normal
		return Color{R: (n[0] + 1) * 0.5, G: (n[1] + 1) * 0.5, B: (n[2] + 1) * 0.5}
	case ShadeAmbient:
		return hit.Material.Ambient
	}
	return Black
}
