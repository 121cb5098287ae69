package classroom

import "math"

// Vec3 is an x, y, z triple in scene units (or radians for rotations).
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) Dot(o Vec3) float64   { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v[1]*o[2] - v[2]*o[1], v[2]*o[0] - v[0]*o[2], v[0]*o[1] - v[1]*o[0]}
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Mat3 is a row-major rotation matrix.
type Mat3 [9]float64

var identity = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// EulerXYZ builds the rotation for Euler angles applied in X, Y, Z order.
func EulerXYZ(r Vec3) Mat3 {
	cx, sx := math.Cos(r[0]), math.Sin(r[0])
	cy, sy := math.Cos(r[1]), math.Sin(r[1])
	cz, sz := math.Cos(r[2]), math.Sin(r[2])
	rx := Mat3{1, 0, 0, 0, cx, -sx, 0, sx, cx}
	ry := Mat3{cy, 0, sy, 0, 1, 0, -sy, 0, cy}
	rz := Mat3{cz, -sz, 0, sz, cz, 0, 0, 0, 1}
	return rx.Mul(ry).Mul(rz)
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3]*o[j] + m[i*3+1]*o[3+j] + m[i*3+2]*o[6+j]
		}
	}
	return r
}

func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transform places a node relative to its parent. Scale is uniform.
type Transform struct {
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"`
	Scale    float64 `json:"scale"`
}

func At(x, y, z float64) Transform {
	return Transform{Position: Vec3{x, y, z}, Scale: 1}
}

func (t Transform) RotatedY(a float64) Transform {
	t.Rotation[1] += a
	return t
}

func (t Transform) Scaled(s float64) Transform {
	t.Scale = s
	return t
}

func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// World is a resolved transform in scene space.
type World struct {
	Position Vec3    `json:"position"`
	Rotation Mat3    `json:"rotation"`
	Scale    float64 `json:"scale"`
}

var rootWorld = World{Rotation: identity, Scale: 1}

// Compose resolves a child's local transform against its parent's world transform.
func (w World) Compose(local Transform) World {
	return World{
		Position: w.Position.Add(w.Rotation.Apply(local.Position.Scale(w.Scale))),
		Rotation: w.Rotation.Mul(EulerXYZ(local.Rotation)),
		Scale:    w.Scale * local.scale(),
	}
}
