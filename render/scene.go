package render

import (
	"math"

	"door-import/panel"
)

// DefaultSegments is the number of facets around a hole cylinder.
const DefaultSegments = 32

// Box is an axis-aligned cuboid.
type Box struct {
	Center panel.Vec3
	Size   panel.Vec3
}

// Cylinder is a hole drilled along the z axis.
type Cylinder struct {
	Center panel.Vec3
	Radius float64
	Length float64
}

// Scene is the 3D preview of a panel: a box centred on the origin plus one
// cylinder per valid hole.
type Scene struct {
	Name  string
	Board Box
	Holes []Cylinder
}

// Triangle is one facet with its outward normal.
type Triangle struct {
	Normal   panel.Vec3
	Vertices [3]panel.Vec3
}

// BuildScene lays out the 3D preview of a panel.
func BuildScene(p *panel.Panel) Scene {
	return BuildSceneWithDepth(p, panel.DefaultHoleDepth)
}

// BuildSceneWithDepth is BuildScene with a custom length for holes that have
// no depth.
func BuildSceneWithDepth(p *panel.Panel, defaultDepth float64) Scene {
	width, height := panel.SafeSize(p)
	s := Scene{
		Name: p.DisplayName(),
		Board: Box{
			Size: panel.Vec3{X: width, Y: height, Z: panel.Thickness},
		},
	}
	for _, h := range p.ValidHoles() {
		s.Holes = append(s.Holes, Cylinder{
			Center: panel.ScenePosition(p, h),
			Radius: h.Diameter / 2,
			Length: panel.SceneDepth(h, defaultDepth),
		})
	}
	return s
}

// Triangles tessellates the whole scene.
func (s Scene) Triangles(segments int) []Triangle {
	tris := s.Board.Triangles()
	for _, c := range s.Holes {
		tris = append(tris, c.Triangles(segments)...)
	}
	return tris
}

// Triangles returns the 12 facets of the box.
func (b Box) Triangles() []Triangle {
	hx, hy, hz := b.Size.X/2, b.Size.Y/2, b.Size.Z/2
	c := b.Center
	v := func(sx, sy, sz float64) panel.Vec3 {
		return panel.Vec3{X: c.X + sx*hx, Y: c.Y + sy*hy, Z: c.Z + sz*hz}
	}

	// Each face as four corners in counter-clockwise order seen from outside.
	faces := []struct {
		n       panel.Vec3
		corners [4]panel.Vec3
	}{
		{panel.Vec3{Z: 1}, [4]panel.Vec3{v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)}},
		{panel.Vec3{Z: -1}, [4]panel.Vec3{v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1), v(1, -1, -1)}},
		{panel.Vec3{X: 1}, [4]panel.Vec3{v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), v(1, -1, 1)}},
		{panel.Vec3{X: -1}, [4]panel.Vec3{v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1)}},
		{panel.Vec3{Y: 1}, [4]panel.Vec3{v(-1, 1, -1), v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1)}},
		{panel.Vec3{Y: -1}, [4]panel.Vec3{v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)}},
	}

	tris := make([]Triangle, 0, 12)
	for _, f := range faces {
		q := f.corners
		tris = append(tris,
			Triangle{Normal: f.n, Vertices: [3]panel.Vec3{q[0], q[1], q[2]}},
			Triangle{Normal: f.n, Vertices: [3]panel.Vec3{q[0], q[2], q[3]}},
		)
	}
	return tris
}

// Triangles tessellates the cylinder into side quads and two caps.
func (c Cylinder) Triangles(segments int) []Triangle {
	if segments < 3 {
		segments = 3
	}
	top := c.Center.Z + c.Length/2
	bottom := c.Center.Z - c.Length/2
	ring := func(i int, z float64) panel.Vec3 {
		a := 2 * math.Pi * float64(i%segments) / float64(segments)
		return panel.Vec3{X: c.Center.X + c.Radius*math.Cos(a), Y: c.Center.Y + c.Radius*math.Sin(a), Z: z}
	}
	topCenter := panel.Vec3{X: c.Center.X, Y: c.Center.Y, Z: top}
	bottomCenter := panel.Vec3{X: c.Center.X, Y: c.Center.Y, Z: bottom}

	tris := make([]Triangle, 0, segments*4)
	for i := 0; i < segments; i++ {
		b0, b1 := ring(i, bottom), ring(i+1, bottom)
		t0, t1 := ring(i, top), ring(i+1, top)

		mid := 2 * math.Pi * (float64(i) + 0.5) / float64(segments)
		side := panel.Vec3{X: math.Cos(mid), Y: math.Sin(mid)}

		tris = append(tris,
			Triangle{Normal: side, Vertices: [3]panel.Vec3{b0, b1, t1}},
			Triangle{Normal: side, Vertices: [3]panel.Vec3{b0, t1, t0}},
			Triangle{Normal: panel.Vec3{Z: 1}, Vertices: [3]panel.Vec3{topCenter, t0, t1}},
			Triangle{Normal: panel.Vec3{Z: -1}, Vertices: [3]panel.Vec3{bottomCenter, b1, b0}},
		)
	}
	return tris
}
