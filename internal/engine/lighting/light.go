// Package lighting describes the fixed-function light rig.
package lighting

import (
	"github.com/Faultbox/cylinders/internal/config"
)

// Space selects the frame a light position is expressed in.
type Space int

const (
	// CameraSpace lights move with the viewer (set before the view transform).
	CameraSpace Space = iota
	// WorldSpace lights stay fixed in the scene (set after the view transform).
	WorldSpace
)

func (s Space) String() string {
	if s == CameraSpace {
		return "camera"
	}
	return "world"
}

// Light is a single fixed-function light.
type Light struct {
	Position [4]float32 // Homogeneous; w=1 is positional, w=0 directional
	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32
	Space    Space
}

// Material holds the shared specular material; ambient and diffuse come from
// the per-draw colour.
type Material struct {
	Specular  [4]float32
	Shininess float32
}

// Rig is the complete light setup for a frame.
type Rig struct {
	Lights   []Light
	Material Material
}

// DefaultRig returns the two-light setup: a head light in camera space and a
// fixed light in world space, both white with a faint blue ambient.
func DefaultRig(cfg config.LightingConfig) Rig {
	ambient := [4]float32{0, 0, 0.2, 1}
	white := [4]float32{1, 1, 1, 1}

	return Rig{
		Lights: []Light{
			{Position: cfg.WorldLight, Ambient: ambient, Diffuse: white, Specular: white, Space: WorldSpace},
			{Position: cfg.HeadLight, Ambient: ambient, Diffuse: white, Specular: white, Space: CameraSpace},
		},
		Material: Material{
			Specular:  white,
			Shininess: cfg.Shininess,
		},
	}
}

// InSpace returns the slots (indices into Lights) of the lights expressed
// in the given space, in ascending order.
func (r Rig) InSpace(s Space) []int {
	var slots []int
	for i, l := range r.Lights {
		if l.Space == s {
			slots = append(slots, i)
		}
	}
	return slots
}
