// Package sceneio loads scenes from JSON.
//
// A scene file lists objects and lights:
//
//	{
//	  "objects": [
//	    {"kind": "sphere", "center": [0, 0, -5], "radius": 1,
//	     "material": {"ambient": [0.2, 0.2, 0.2], "diffuse": [0.8, 0.1, 0.1]}},
//	    {"kind": "box", "center": [0, -2, -6], "halfExtents": [4, 0.2, 4]},
//	    {"kind": "sphere", "transform": [2,0,0,0, 0,1,0,0, 0,0,1,0, 1,0,-8,1]}
//	  ],
//	  "lights": [
//	    {"kind": "point", "position": [2, 4, 0], "diffuse": [1, 1, 1], "specular": [1, 1, 1]},
//	    {"kind": "directional", "direction": [0, -1, 0], "diffuse": [0.3, 0.3, 0.3]},
//	    {"kind": "ambient", "ambient": [0.1, 0.1, 0.1]}
//	  ]
//	}
//
// A transform is a column-major 4x4 matrix and takes precedence over
// center/radius/halfExtents. Omitted material fields keep the values of
// raytrace.DefaultMaterial.
package sceneio
